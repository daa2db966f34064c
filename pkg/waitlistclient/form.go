// Package waitlistclient drives a waitlist signup the way the landing page
// form does: validate locally, submit once, then settle on success or error.
package waitlistclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/akeren/commit-waitlist/pkg/emailaddr"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

const (
	MsgInvalidEmail = "Please enter a valid email."
	MsgFallback     = "Something went wrong."
)

const maxResponseBytes = 64 << 10

type State struct {
	Email  string
	Status Status
	Error  string
}

// Form is safe for concurrent use. Only one submission is in flight at a time.
type Form struct {
	endpoint string
	client   *http.Client

	mu    sync.Mutex
	state State
}

func NewForm(endpoint string, client *http.Client) *Form {
	if client == nil {
		client = http.DefaultClient
	}
	return &Form{
		endpoint: endpoint,
		client:   client,
		state:    State{Status: StatusIdle},
	}
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Disabled reports whether input and submit are locked.
func (f *Form) Disabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.locked()
}

// CanSubmit mirrors the submit button: enabled only for a plausible address.
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.locked() && emailaddr.Matches(f.state.Email)
}

func (f *Form) locked() bool {
	return f.state.Status == StatusSubmitting || f.state.Status == StatusSuccess
}

// SetEmail updates the input. It is ignored while the form is locked.
func (f *Form) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locked() {
		return
	}
	f.state.Email = email
}

// Submit posts the current email once and returns the settled state.
// Nothing is sent when the input does not look like an address.
func (f *Form) Submit(ctx context.Context) State {
	f.mu.Lock()
	if f.locked() {
		state := f.state
		f.mu.Unlock()
		return state
	}

	f.state.Error = ""
	if !emailaddr.Matches(f.state.Email) {
		f.state.Status = StatusError
		f.state.Error = MsgInvalidEmail
		state := f.state
		f.mu.Unlock()
		return state
	}

	f.state.Status = StatusSubmitting
	email := f.state.Email
	f.mu.Unlock()

	errMsg := f.post(ctx, email)

	f.mu.Lock()
	defer f.mu.Unlock()
	if errMsg == "" {
		f.state.Status = StatusSuccess
	} else {
		f.state.Status = StatusError
		f.state.Error = errMsg
	}
	return f.state
}

type responseBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// post returns "" on success, otherwise the message to show.
func (f *Form) post(ctx context.Context, email string) string {
	payload, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return MsgFallback
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(payload))
	if err != nil {
		return MsgFallback
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return MsgFallback
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return MsgFallback
	}

	var body responseBody
	parsed := json.Unmarshal(raw, &body) == nil && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if parsed && body.Error != "" {
			return body.Error
		}
		return MsgFallback
	}
	if !parsed {
		return MsgFallback
	}
	return ""
}
