package config

import (
	"fmt"
	"strings"

	"github.com/akeren/commit-waitlist/internal/log"
	"github.com/akeren/commit-waitlist/pkg/utils"
)

// Backend names the persistence strategy behind POST /api/waitlist.
type Backend string

const (
	BackendWebhook Backend = "webhook"
	BackendREST    Backend = "rest"
	BackendSQL     Backend = "sql"
	BackendNone    Backend = "none"
)

type WaitlistConfig struct {
	// Explicit is WAITLIST_BACKEND as given; empty means detect from the other fields.
	Explicit Backend

	WebhookURL    string
	WebhookSecret string

	SupabaseURL            string
	SupabaseAnonKey        string
	SupabaseServiceRoleKey string

	SQLConfigured bool
}

func NewWaitlistConfig() *WaitlistConfig {
	return &WaitlistConfig{
		Explicit:               Backend(strings.ToLower(utils.GetEnvTrimmed("WAITLIST_BACKEND"))),
		WebhookURL:             sanitizeEnv(utils.GetEnvTrimmed("WAITLIST_WEBHOOK_URL")),
		WebhookSecret:          sanitizeEnv(utils.GetEnvTrimmed("WAITLIST_WEBHOOK_SECRET")),
		SupabaseURL:            sanitizeEnv(utils.GetFirstEnvTrimmed("SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL")),
		SupabaseAnonKey:        sanitizeEnv(utils.GetFirstEnvTrimmed("SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY")),
		SupabaseServiceRoleKey: sanitizeEnv(utils.GetEnvTrimmed("SUPABASE_SERVICE_ROLE_KEY")),
		SQLConfigured:          SQLDatabaseConfigured(),
	}
}

// ServerKey prefers the service role key over the anon key for server-side writes.
func (c *WaitlistConfig) ServerKey() string {
	if c.SupabaseServiceRoleKey != "" {
		return c.SupabaseServiceRoleKey
	}
	return c.SupabaseAnonKey
}

// ResolveBackend picks the persistence strategy once at startup.
// Missing REST credentials are not an error here; the store reports them on first use.
func (c *WaitlistConfig) ResolveBackend() (Backend, error) {
	if c.WebhookSecret != "" && c.WebhookURL == "" {
		return "", fmt.Errorf("WAITLIST_WEBHOOK_SECRET is set but WAITLIST_WEBHOOK_URL is empty")
	}

	switch c.Explicit {
	case "":
	case BackendWebhook:
		if c.WebhookURL == "" {
			return BackendNone, nil
		}
		return BackendWebhook, nil
	case BackendREST, BackendNone:
		return c.Explicit, nil
	case BackendSQL:
		if !c.SQLConfigured {
			return "", fmt.Errorf("WAITLIST_BACKEND=sql requires APP_DATABASE_URL or POSTGRES_HOST")
		}
		return BackendSQL, nil
	default:
		return "", fmt.Errorf("unknown WAITLIST_BACKEND %q (allowed: webhook, rest, sql, none)", c.Explicit)
	}

	switch {
	case c.WebhookURL != "":
		return BackendWebhook, nil
	case c.SupabaseURL != "":
		return BackendREST, nil
	case c.SQLConfigured:
		return BackendSQL, nil
	default:
		return BackendNone, nil
	}
}

func (c *WaitlistConfig) LogSummary(logger *log.Logger, backend Backend) {
	logger.Info("Waitlist backend selected",
		"backend", string(backend),
		"webhook_auth", c.WebhookSecret != "",
		"service_role_key", c.SupabaseServiceRoleKey != "",
	)
}
