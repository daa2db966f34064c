package config

import (
	"strings"

	"github.com/akeren/commit-waitlist/pkg/constants"
	"github.com/akeren/commit-waitlist/pkg/utils"
)

type SiteConfig struct {
	// BaseURL has a scheme and no trailing slash.
	BaseURL string
}

func NewSiteConfig() *SiteConfig {
	return &SiteConfig{
		BaseURL: NormalizeSiteURL(utils.GetFirstEnvTrimmed("SITE_URL", "NEXT_PUBLIC_SITE_URL")),
	}
}

// NormalizeSiteURL prepends https:// to scheme-less hosts and drops trailing slashes.
func NormalizeSiteURL(raw string) string {
	s := sanitizeEnv(raw)
	if s == "" {
		s = constants.DefaultSiteURL
	}

	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		s = "https://" + s
	}

	return strings.TrimRight(s, "/")
}
