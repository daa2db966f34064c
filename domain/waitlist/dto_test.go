package waitlist

import (
	"testing"

	apperrors "github.com/akeren/commit-waitlist/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubmitRequest(t *testing.T) {
	req, err := ParseSubmitRequest([]byte(`{"email":"  Someone@Example.com ","extra":true}`))
	require.NoError(t, err)
	assert.Equal(t, "  Someone@Example.com ", req.Email)

	missing := []string{`{}`, `{"email":null}`, `[]`, `"user@example.com"`, `null`, `42`}
	for _, body := range missing {
		_, err := ParseSubmitRequest([]byte(body))
		assert.Equal(t, "Missing email.", apperrors.GetHumanReadableMessage(err), body)
		assert.Equal(t, apperrors.StatusBadRequest, apperrors.HTTPStatusCode(err), body)
	}

	for _, body := range []string{`{"email":42}`, `{"email":["a@b.c"]}`, `{"email":{"v":"a@b.c"}}`, `{"email":true}`} {
		_, err := ParseSubmitRequest([]byte(body))
		assert.Equal(t, "Invalid email.", apperrors.GetHumanReadableMessage(err), body)
	}
}

func TestParseSubmitRequest_MalformedJSONIsServerError(t *testing.T) {
	for _, body := range []string{``, `{"email":`, `email=a@b.c`} {
		_, err := ParseSubmitRequest([]byte(body))

		require.Error(t, err, body)
		assert.Equal(t, apperrors.StatusInternalServerError, apperrors.HTTPStatusCode(err))
		assert.Equal(t, "Unexpected server error.", apperrors.GetHumanReadableMessage(err))

		details, _ := apperrors.GetDetails(err)
		assert.NotEmpty(t, details)
	}
}

func TestToSubmissionResponse(t *testing.T) {
	assert.Equal(t, &SubmissionResponse{Message: "Success"}, toSubmissionResponse(Receipt{}))
	assert.Equal(t, &SubmissionResponse{Success: true, Message: "Success"}, toSubmissionResponse(Receipt{Stored: true}))
	assert.Equal(t,
		&SubmissionResponse{Success: true, Duplicate: true, Message: "You're already on the waitlist."},
		toSubmissionResponse(Receipt{Stored: true, Duplicate: true}),
	)
}
