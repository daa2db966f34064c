package waitlist

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/akeren/commit-waitlist/config"
	"github.com/akeren/commit-waitlist/internal/log"
	apperrors "github.com/akeren/commit-waitlist/pkg/errors"
)

type webhookPersister struct {
	url    string
	secret string
	client *http.Client
	logger *log.Logger
}

// NewWebhookPersister forwards each address as {"email": ...} to url.
// A non-empty secret is sent as a bearer token.
func NewWebhookPersister(url, secret string, client *http.Client, logger *log.Logger) Persister {
	return &webhookPersister{url: url, secret: secret, client: client, logger: logger}
}

func (p *webhookPersister) Persist(ctx context.Context, email string) (Receipt, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, p.logger)

	payload, err := json.Marshal(SubmitWaitlistRequest{Email: email})
	if err != nil {
		return Receipt{}, apperrors.NewInternalServerError(msgUnexpectedError, err).WithDetails(err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return Receipt{}, apperrors.NewInternalServerError(msgUnexpectedError, err).WithDetails(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	if p.secret != "" {
		req.Header.Set("Authorization", "Bearer "+p.secret)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		logger.Error("Waitlist webhook request failed", "error", err)
		return Receipt{}, apperrors.NewInternalServerError(msgUnexpectedError, err).WithDetails(err.Error())
	}
	defer resp.Body.Close()

	if !isSuccessStatus(resp.StatusCode) {
		upstream := readUpstreamBody(resp)
		logger.Error("Waitlist webhook rejected submission", "status", resp.StatusCode, "body", upstream)
		return Receipt{}, apperrors.NewBadGatewayError(msgFailedToSave, nil).WithDetails(upstream)
	}

	logger.Info("Waitlist email forwarded to webhook", "status", resp.StatusCode)
	return Receipt{}, nil
}

func (p *webhookPersister) Backend() string { return string(config.BackendWebhook) }

func (p *webhookPersister) Healthy(context.Context) bool { return false }
