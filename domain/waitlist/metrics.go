package waitlist

import (
	"errors"

	apperrors "github.com/akeren/commit-waitlist/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeAccepted  = "accepted"
	outcomeDuplicate = "duplicate"
	outcomeInvalid   = "invalid"
	outcomeFailed    = "failed"
)

type submissionMetrics struct {
	submissions *prometheus.CounterVec
}

func newSubmissionMetrics(reg prometheus.Registerer) *submissionMetrics {
	submissions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waitlist_submissions_total",
			Help: "Waitlist submissions by backend and outcome.",
		},
		[]string{"backend", "outcome"},
	)

	if err := reg.Register(submissions); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			panic(err)
		}
		submissions = already.ExistingCollector.(*prometheus.CounterVec)
	}

	return &submissionMetrics{submissions: submissions}
}

func (m *submissionMetrics) observe(backend string, resp *SubmissionResponse, err error) {
	m.submissions.WithLabelValues(backend, outcomeOf(resp, err)).Inc()
}

func outcomeOf(resp *SubmissionResponse, err error) string {
	switch {
	case err != nil && apperrors.GetErrorType(err) == apperrors.ErrorTypeInvalidRequest:
		return outcomeInvalid
	case err != nil:
		return outcomeFailed
	case resp != nil && resp.Duplicate:
		return outcomeDuplicate
	default:
		return outcomeAccepted
	}
}
