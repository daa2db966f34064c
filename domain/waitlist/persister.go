package waitlist

//go:generate mockgen -source=persister.go -destination=mock_persister.go -package=waitlist

import "context"

// Receipt describes what a Persister did with an accepted address.
type Receipt struct {
	// Stored is set by the table-backed persisters.
	Stored bool
	// Duplicate means the address was already present; only meaningful with Stored.
	Duplicate bool
}

// Persister performs the single outbound side effect of a submission.
// Errors are *apperrors.AppError values carrying the client-facing message.
type Persister interface {
	Persist(ctx context.Context, email string) (Receipt, error)
	Backend() string
	// Healthy never triggers lazy initialisation.
	Healthy(ctx context.Context) bool
}
