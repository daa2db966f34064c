package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearWaitlistEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WAITLIST_BACKEND", "WAITLIST_WEBHOOK_URL", "WAITLIST_WEBHOOK_SECRET",
		"SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL", "SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY",
		"SUPABASE_SERVICE_ROLE_KEY", "APP_DATABASE_URL", "POSTGRES_HOST",
	} {
		t.Setenv(key, "")
	}
}

func TestResolveBackend_Detection(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Backend
	}{
		{name: "nothing configured", want: BackendNone},
		{name: "webhook wins", env: map[string]string{
			"WAITLIST_WEBHOOK_URL": "https://hooks.example.com/w",
			"SUPABASE_URL":         "https://proj.supabase.co",
			"APP_DATABASE_URL":     "postgres://localhost/db",
		}, want: BackendWebhook},
		{name: "rest over sql", env: map[string]string{
			"NEXT_PUBLIC_SUPABASE_URL": "https://proj.supabase.co",
			"POSTGRES_HOST":            "localhost",
		}, want: BackendREST},
		{name: "sql", env: map[string]string{"POSTGRES_HOST": "localhost"}, want: BackendSQL},
		{name: "explicit none overrides webhook", env: map[string]string{
			"WAITLIST_BACKEND":     "NONE",
			"WAITLIST_WEBHOOK_URL": "https://hooks.example.com/w",
		}, want: BackendNone},
		{name: "explicit webhook without url is a no-op", env: map[string]string{"WAITLIST_BACKEND": "webhook"}, want: BackendNone},
		{name: "explicit rest", env: map[string]string{"WAITLIST_BACKEND": "rest"}, want: BackendREST},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearWaitlistEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := NewWaitlistConfig().ResolveBackend()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveBackend_Errors(t *testing.T) {
	t.Run("secret without url", func(t *testing.T) {
		clearWaitlistEnv(t)
		t.Setenv("WAITLIST_WEBHOOK_SECRET", "s3cret")

		_, err := NewWaitlistConfig().ResolveBackend()
		assert.ErrorContains(t, err, "WAITLIST_WEBHOOK_URL")
	})

	t.Run("unknown backend", func(t *testing.T) {
		clearWaitlistEnv(t)
		t.Setenv("WAITLIST_BACKEND", "kafka")

		_, err := NewWaitlistConfig().ResolveBackend()
		assert.ErrorContains(t, err, "unknown WAITLIST_BACKEND")
	})

	t.Run("sql without database", func(t *testing.T) {
		clearWaitlistEnv(t)
		t.Setenv("WAITLIST_BACKEND", "sql")

		_, err := NewWaitlistConfig().ResolveBackend()
		assert.Error(t, err)
	})
}

func TestWaitlistConfig_ServerKeyPrefersServiceRole(t *testing.T) {
	clearWaitlistEnv(t)
	t.Setenv("NEXT_PUBLIC_SUPABASE_ANON_KEY", "anon")

	cfg := NewWaitlistConfig()
	assert.Equal(t, "anon", cfg.ServerKey())

	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service")
	cfg = NewWaitlistConfig()
	assert.Equal(t, "service", cfg.ServerKey())
}
