package waitlist

import (
	"context"
	"errors"

	"github.com/akeren/commit-waitlist/config"
	"github.com/akeren/commit-waitlist/internal/log"
	"github.com/akeren/commit-waitlist/internal/models"
	apperrors "github.com/akeren/commit-waitlist/pkg/errors"
	"github.com/akeren/commit-waitlist/pkg/lazy"
	"gorm.io/gorm"
)

type sqlPersister struct {
	repository *lazy.Handle[WaitlistRepository]
	logger     *log.Logger
}

// NewSQLPersister inserts through a repository that is created on first use.
func NewSQLPersister(repository *lazy.Handle[WaitlistRepository], logger *log.Logger) Persister {
	return &sqlPersister{repository: repository, logger: logger}
}

// LazyRepository derives a repository handle from a lazily opened database.
func LazyRepository(db *lazy.Handle[*gorm.DB]) *lazy.Handle[WaitlistRepository] {
	return lazy.New(func(ctx context.Context) (WaitlistRepository, error) {
		gdb, err := db.Get(ctx)
		if err != nil {
			return nil, err
		}
		return NewWaitlistRepository(gdb), nil
	})
}

func (p *sqlPersister) Persist(ctx context.Context, email string) (Receipt, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, p.logger)

	repository, err := p.repository.Get(ctx)
	if err != nil {
		logger.Error("Waitlist store unavailable", "error", err)
		return Receipt{}, apperrors.NewInternalServerError(msgUnexpectedError, err).WithDetails(err.Error())
	}

	if _, err := repository.CreateEntry(ctx, &models.WaitlistEntry{Email: email}); err != nil {
		if apperrors.GetErrorType(err) == apperrors.ErrorTypeConflict {
			logger.Info("Waitlist email already stored")
			return Receipt{Stored: true, Duplicate: true}, nil
		}

		logger.Error("Failed to store waitlist email", "error", err)
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			return Receipt{}, apperrors.NewDatabaseError(msgFailedToSave, err).WithDetails(err.Error())
		}
		return Receipt{}, err
	}

	logger.Info("Waitlist email stored")
	return Receipt{Stored: true}, nil
}

func (p *sqlPersister) Backend() string { return string(config.BackendSQL) }

func (p *sqlPersister) Healthy(ctx context.Context) bool {
	repository, ok := p.repository.Peek()
	if !ok {
		return false
	}
	return repository.Ping(ctx) == nil
}
