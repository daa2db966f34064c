package constants

import "time"

// RFC 3339 date-time format string.
// Use this format for all date-time serialization and communication with external systems.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

// W3C date format used by sitemap <lastmod> values.
const W3CDateFormat = "2006-01-02"

const (
	// DefaultSiteURL is used when neither SITE_URL nor NEXT_PUBLIC_SITE_URL is set.
	DefaultSiteURL = "http://localhost:3000"
	// WaitlistTable receives waitlist entries in both the SQL and REST stores.
	WaitlistTable = "waitlist"
	// WaitlistPath is the submission endpoint mounted by the waitlist controller.
	WaitlistPath = "/api/waitlist"
)

// DefaultRequestTimeout bounds a whole request, including its one outbound call.
const DefaultRequestTimeout = 30 * time.Second
