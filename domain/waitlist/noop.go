package waitlist

import (
	"context"

	"github.com/akeren/commit-waitlist/config"
	"github.com/akeren/commit-waitlist/internal/log"
)

type noopPersister struct {
	logger *log.Logger
}

// NewNoopPersister accepts every address and only logs it. It backs local
// development and deployments that have not wired a collaborator yet.
func NewNoopPersister(logger *log.Logger) Persister {
	return &noopPersister{logger: logger}
}

func (p *noopPersister) Persist(ctx context.Context, email string) (Receipt, error) {
	log.GetLoggerInstanceFromContext(ctx, p.logger).Info("waitlist email captured", "email", email)
	return Receipt{}, nil
}

func (p *noopPersister) Backend() string { return string(config.BackendNone) }

func (p *noopPersister) Healthy(context.Context) bool { return false }
