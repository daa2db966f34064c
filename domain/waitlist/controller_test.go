package waitlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/akeren/commit-waitlist/config/router"
	apperrors "github.com/akeren/commit-waitlist/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type controllerFixture struct {
	rs        *router.RouterService
	persister *MockPersister
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	persister := NewMockPersister(ctrl)
	persister.EXPECT().Backend().Return("sql").AnyTimes()

	rs := router.CreateRouterService(quietLogger(), &router.RouterConfig{RequestTimeout: 5 * time.Second})
	rs.MountController(NewWaitlistController(NewWaitlistService(quietLogger(), persister), quietLogger()))

	return &controllerFixture{rs: rs, persister: persister}
}

func (f *controllerFixture) post(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/waitlist", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.rs.GetEngine().ServeHTTP(w, req)
	return w
}

func TestSubmitWaitlist_ValidationResponses(t *testing.T) {
	f := newControllerFixture(t)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantBody string
	}{
		{"empty object", `{}`, http.StatusBadRequest, `{"error":"Missing email."}`},
		{"null email", `{"email":null}`, http.StatusBadRequest, `{"error":"Missing email."}`},
		{"blank email", `{"email":"   "}`, http.StatusBadRequest, `{"error":"Missing email."}`},
		{"not an email", `{"email":"not-an-email"}`, http.StatusBadRequest, `{"error":"Invalid email."}`},
		{"no dot after at", `{"email":"abc@def"}`, http.StatusBadRequest, `{"error":"Invalid email."}`},
		{"number", `{"email":7}`, http.StatusBadRequest, `{"error":"Invalid email."}`},
		{"embedded no-break space", `{"email":"us\u00a0er@example.com"}`, http.StatusBadRequest, `{"error":"Invalid email."}`},
		{"embedded vertical tab", `{"email":"us\u000ber@example.com"}`, http.StatusBadRequest, `{"error":"Invalid email."}`},
		{"embedded line separator", `{"email":"us\u2028er@example.com"}`, http.StatusBadRequest, `{"error":"Invalid email."}`},
		{"embedded ideographic space", `{"email":"user@exa\u3000mple.com"}`, http.StatusBadRequest, `{"error":"Invalid email."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.post(tt.body)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestSubmitWaitlist_MalformedJSON(t *testing.T) {
	f := newControllerFixture(t)

	w := f.post(`{"email":`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"Unexpected server error."`)
	assert.Contains(t, w.Body.String(), `"details":`)
}

func TestSubmitWaitlist_StoreOutcomes(t *testing.T) {
	f := newControllerFixture(t)

	f.persister.EXPECT().Persist(gomock.Any(), "user@example.com").Return(Receipt{Stored: true}, nil)
	w := f.post(`{"email":"  USER@Example.COM "}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"Success"}`, w.Body.String())

	f.persister.EXPECT().Persist(gomock.Any(), "user@example.com").Return(Receipt{Stored: true, Duplicate: true}, nil)
	w = f.post(`{"email":"user@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"duplicate":true,"message":"You're already on the waitlist."}`, w.Body.String())

	f.persister.EXPECT().Persist(gomock.Any(), gomock.Any()).Return(Receipt{},
		apperrors.NewDatabaseError("Failed to save email.", nil).WithDetails("permission denied").WithCode("42501"))
	w = f.post(`{"email":"user@example.com"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to save email.","details":"permission denied","code":"42501"}`, w.Body.String())
}

func TestSubmitWaitlist_WebhookOutcomes(t *testing.T) {
	f := newControllerFixture(t)

	f.persister.EXPECT().Persist(gomock.Any(), "user@example.com").Return(Receipt{}, nil)
	w := f.post(`{"email":"user@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Success"}`, w.Body.String())

	f.persister.EXPECT().Persist(gomock.Any(), gomock.Any()).Return(Receipt{},
		apperrors.NewBadGatewayError("Failed to save email.", nil).WithDetails("quota exceeded"))
	w = f.post(`{"email":"user@example.com"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"Failed to save email.","details":"quota exceeded"}`, w.Body.String())
}

func TestSubmitWaitlist_OutboundContextSurvivesClientCancel(t *testing.T) {
	f := newControllerFixture(t)

	var called, hasDeadline bool
	var persistErr error
	f.persister.EXPECT().Persist(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ string) (Receipt, error) {
		called = true
		persistErr = ctx.Err()
		_, hasDeadline = ctx.Deadline()
		return Receipt{Stored: true}, nil
	})

	reqCtx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodPost, "/api/waitlist", strings.NewReader(`{"email":"a@b.co"}`)).WithContext(reqCtx)
	cancel()

	w := httptest.NewRecorder()
	f.rs.GetEngine().ServeHTTP(w, req)

	require.True(t, called)
	assert.NoError(t, persistErr)
	assert.True(t, hasDeadline)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitWaitlist_PanicIsRecovered(t *testing.T) {
	f := newControllerFixture(t)

	f.persister.EXPECT().Persist(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, string) (Receipt, error) {
		panic("store exploded")
	})

	w := f.post(`{"email":"user@example.com"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Unexpected server error.","details":"store exploded"}`, w.Body.String())
}

func TestSubmitWaitlist_MethodNotAllowed(t *testing.T) {
	f := newControllerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/waitlist", nil)
	w := httptest.NewRecorder()
	f.rs.GetEngine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestSubmissionMetrics_CountsOutcomes(t *testing.T) {
	f := newControllerFixture(t)
	metrics := newSubmissionMetrics(f.rs.MetricsRegisterer())

	f.persister.EXPECT().Persist(gomock.Any(), gomock.Any()).Return(Receipt{Stored: true, Duplicate: true}, nil)
	f.post(`{"email":"user@example.com"}`)
	f.post(`{}`)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.submissions.WithLabelValues("sql", outcomeDuplicate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.submissions.WithLabelValues("sql", outcomeInvalid)))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.submissions.WithLabelValues("sql", outcomeFailed)))
}
