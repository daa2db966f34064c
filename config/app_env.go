package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/akeren/commit-waitlist/internal/log"
	"github.com/joho/godotenv"
)

const (
	AppEnvKey  = "APP_ENV"
	EnvFileKey = "ENV_FILE"
)

// InitializeEnvFile loads .env (or the comma-separated ENV_FILE list) without
// overriding variables already present in the process environment.
func InitializeEnvFile(logger *log.Logger) {
	if os.Getenv("SKIP_DOTENV") == "true" {
		logger.Info("Skipping .env file load (SKIP_DOTENV=true)")
		return
	}

	files := envFiles(os.Getenv(EnvFileKey))
	if err := godotenv.Load(files...); err != nil {
		logger.Warn("No env file found or failed to load it", "files", files, "error", err.Error())
		return
	}

	logger.Info("Environment variables loaded from env file", "files", files)
}

func envFiles(raw string) []string {
	files := []string{}
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return []string{".env"}
	}
	return files
}

func GetValueFromEnvironmentVariable(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func GetAppEnv() string {
	return strings.ToLower(strings.TrimSpace(os.Getenv(AppEnvKey)))
}

func ValidateAutoMigrateAllowed(appEnv string) error {
	env := strings.ToLower(strings.TrimSpace(appEnv))

	switch env {
	case "", "dev", "development", "local", "test", "testing":
		return nil
	default:
		return fmt.Errorf("--auto-migrate is not allowed when %s=%q (allowed: \"\", dev, development, local, test, testing)", AppEnvKey, env)
	}
}
