package waitlist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/akeren/commit-waitlist/config"
	"github.com/akeren/commit-waitlist/internal/log"
	"github.com/akeren/commit-waitlist/pkg/constants"
	apperrors "github.com/akeren/commit-waitlist/pkg/errors"
	"github.com/akeren/commit-waitlist/pkg/lazy"
)

type RESTStoreConfig struct {
	// BaseURL is the project URL, e.g. https://<ref>.supabase.co.
	BaseURL string
	// Key is sent both as apikey and as the bearer token.
	Key string
}

type restTarget struct {
	endpoint string
	key      string
}

// postgrestError is the error document PostgREST returns for failed writes.
type postgrestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

type restPersister struct {
	target *lazy.Handle[*restTarget]
	client *http.Client
	logger *log.Logger
}

// NewRESTPersister inserts rows through the hosted store's PostgREST API.
// Credentials are checked on first use, so a misconfigured deployment still
// serves the page and reports the problem per submission.
func NewRESTPersister(cfg RESTStoreConfig, client *http.Client, logger *log.Logger) Persister {
	return &restPersister{
		target: lazy.New(func(context.Context) (*restTarget, error) {
			return newRESTTarget(cfg)
		}),
		client: client,
		logger: logger,
	}
}

func newRESTTarget(cfg RESTStoreConfig) (*restTarget, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("Missing environment variable: SUPABASE_URL")
	}
	if cfg.Key == "" {
		return nil, fmt.Errorf("Missing environment variable: SUPABASE_ANON_KEY")
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("invalid SUPABASE_URL %q", cfg.BaseURL)
	}

	return &restTarget{
		endpoint: base.String() + "/rest/v1/" + constants.WaitlistTable,
		key:      cfg.Key,
	}, nil
}

func (p *restPersister) Persist(ctx context.Context, email string) (Receipt, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, p.logger)

	target, err := p.target.Get(ctx)
	if err != nil {
		logger.Error("Waitlist REST store unavailable", "error", err)
		return Receipt{}, apperrors.NewInternalServerError(msgUnexpectedError, err).WithDetails(err.Error())
	}

	payload, err := json.Marshal(SubmitWaitlistRequest{Email: email})
	if err != nil {
		return Receipt{}, apperrors.NewInternalServerError(msgUnexpectedError, err).WithDetails(err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Receipt{}, apperrors.NewInternalServerError(msgUnexpectedError, err).WithDetails(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", target.key)
	req.Header.Set("Authorization", "Bearer "+target.key)
	req.Header.Set("Prefer", "return=minimal")

	resp, err := p.client.Do(req)
	if err != nil {
		logger.Error("Waitlist REST insert failed", "error", err)
		return Receipt{}, apperrors.NewDatabaseError(msgFailedToSave, err).WithDetails(err.Error())
	}
	defer resp.Body.Close()

	if isSuccessStatus(resp.StatusCode) {
		logger.Info("Waitlist email stored", "status", resp.StatusCode)
		return Receipt{Stored: true}, nil
	}

	raw := readUpstreamBody(resp)
	var pgErr postgrestError
	if jsonErr := json.Unmarshal([]byte(raw), &pgErr); jsonErr != nil || pgErr.Message == "" {
		pgErr.Message = raw
	}

	if pgErr.Code == uniqueViolation {
		logger.Info("Waitlist email already stored")
		return Receipt{Stored: true, Duplicate: true}, nil
	}

	logger.Error("Waitlist REST store rejected insert", "status", resp.StatusCode, "code", pgErr.Code, "message", pgErr.Message)
	return Receipt{}, apperrors.NewDatabaseError(msgFailedToSave, fmt.Errorf("postgrest status %d", resp.StatusCode)).
		WithDetails(pgErr.Message).
		WithCode(pgErr.Code)
}

func (p *restPersister) Backend() string { return string(config.BackendREST) }

func (p *restPersister) Healthy(context.Context) bool {
	return p.target.Ready()
}
