package waitlist

import (
	"context"

	"github.com/akeren/commit-waitlist/internal/log"
	"github.com/akeren/commit-waitlist/pkg/emailaddr"
	apperrors "github.com/akeren/commit-waitlist/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validationMessages = apperrors.ValidationMessages{
	"required":              msgMissingEmail,
	emailaddr.ValidationTag: msgInvalidEmail,
}

type WaitlistService interface {
	// Submit normalises and validates req.Email, then hands it to the configured
	// Persister exactly once. Nothing is retried.
	Submit(ctx context.Context, req *SubmitWaitlistRequest) (*SubmissionResponse, error)

	Backend() string
}

type waitlistService struct {
	logger    *log.Logger
	persister Persister
	validate  *validator.Validate
}

func NewWaitlistService(logger *log.Logger, persister Persister) WaitlistService {
	return &waitlistService{logger: logger, persister: persister, validate: newValidator()}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := emailaddr.RegisterValidation(v); err != nil {
		panic(err)
	}
	return v
}

func (s *waitlistService) Submit(ctx context.Context, req *SubmitWaitlistRequest) (*SubmissionResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		return nil, apperrors.NewInvalidRequestError(msgMissingEmail, nil)
	}

	normalized := SubmitWaitlistRequest{Email: emailaddr.Normalize(req.Email)}
	if err := s.validate.Struct(normalized); err != nil {
		logger.Info("Rejected waitlist submission", "reason", validationMessages.Format(err, msgInvalidEmail))
		return nil, apperrors.NewValidationError(err, validationMessages, msgInvalidEmail)
	}

	receipt, err := s.persister.Persist(ctx, normalized.Email)
	if err != nil {
		return nil, err
	}

	return toSubmissionResponse(receipt), nil
}

func (s *waitlistService) Backend() string {
	return s.persister.Backend()
}
