package waitlist

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=waitlist

import (
	"context"
	"errors"

	"github.com/akeren/commit-waitlist/internal/models"
	apperrors "github.com/akeren/commit-waitlist/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

type WaitlistRepository interface {
	// CreateEntry inserts entry. A duplicate email yields a CONFLICT AppError.
	CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error)
	Ping(ctx context.Context) error
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (wr *waitlistRepository) CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
	if err := wr.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, apperrors.NewConflictError(msgAlreadyOnList, err).WithCode(uniqueViolation)
		}
		return nil, apperrors.NewDatabaseError(msgFailedToSave, err).
			WithDetails(storeErrorMessage(err)).
			WithCode(sqlState(err))
	}

	return entry, nil
}

func (wr *waitlistRepository) Ping(ctx context.Context) error {
	sqlDB, err := wr.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// isDuplicateKey trusts only the SQLSTATE, or gorm's sentinel for drivers
// without one (SQLite).
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || sqlState(err) == uniqueViolation
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func storeErrorMessage(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Message
	}
	return err.Error()
}
