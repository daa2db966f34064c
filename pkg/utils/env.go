package utils

import (
	"os"
	"strconv"
	"strings"
)

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func GetEnvTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func GetEnvTrimmedOrDefault(key, defaultValue string) string {
	v := strings.TrimSpace(os.Getenv(key))

	if v == "" {
		return defaultValue
	}

	return v
}

// GetFirstEnvTrimmed returns the first non-blank value among keys.
// Later keys act as legacy aliases for earlier ones.
func GetFirstEnvTrimmed(keys ...string) string {
	for _, key := range keys {
		if v := GetEnvTrimmed(key); v != "" {
			return v
		}
	}
	return ""
}

// GetEnvBool parses key as a bool; blank or unparsable values yield defaultValue.
func GetEnvBool(key string, defaultValue bool) bool {
	v := GetEnvTrimmed(key)
	if v == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}

	return b
}
