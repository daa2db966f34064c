package waitlist

import (
	"encoding/json"

	apperrors "github.com/akeren/commit-waitlist/pkg/errors"
)

const (
	msgSuccess         = "Success"
	msgAlreadyOnList   = "You're already on the waitlist."
	msgMissingEmail    = "Missing email."
	msgInvalidEmail    = "Invalid email."
	msgFailedToSave    = "Failed to save email."
	msgUnexpectedError = "Unexpected server error."
)

type SubmitWaitlistRequest struct {
	Email string `json:"email" validate:"required,waitlist_email"`
}

// SubmissionResponse is {message} for the webhook and no-op backends and
// {success, duplicate?, message} for the stores.
type SubmissionResponse struct {
	Success   bool   `json:"success,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
	Message   string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

// ParseSubmitRequest accepts any JSON document. Anything other than an object
// with a string "email" member is reported the way a client form would see it.
func ParseSubmitRequest(raw []byte) (*SubmitWaitlistRequest, error) {
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, apperrors.NewInternalServerError(msgUnexpectedError, err).WithDetails(err.Error())
	}

	fields, _ := body.(map[string]any)

	value, present := fields["email"]
	if !present || value == nil {
		return nil, apperrors.NewInvalidRequestError(msgMissingEmail, nil)
	}

	email, ok := value.(string)
	if !ok {
		return nil, apperrors.NewInvalidRequestError(msgInvalidEmail, nil)
	}

	return &SubmitWaitlistRequest{Email: email}, nil
}

func toSubmissionResponse(receipt Receipt) *SubmissionResponse {
	switch {
	case receipt.Stored && receipt.Duplicate:
		return &SubmissionResponse{Success: true, Duplicate: true, Message: msgAlreadyOnList}
	case receipt.Stored:
		return &SubmissionResponse{Success: true, Message: msgSuccess}
	default:
		return &SubmissionResponse{Message: msgSuccess}
	}
}

func toErrorResponse(err error) (int, ErrorResponse) {
	details, code := apperrors.GetDetails(err)
	return apperrors.HTTPStatusCode(err), ErrorResponse{
		Error:   apperrors.GetHumanReadableMessage(err),
		Details: details,
		Code:    code,
	}
}
