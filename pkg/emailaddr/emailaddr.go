// Package emailaddr holds the permissive address pattern shared by the
// waitlist endpoint and its clients.
package emailaddr

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ValidationTag is the validator tag registered by RegisterValidation.
const ValidationTag = "waitlist_email"

// Pattern accepts local-part "@" domain "." suffix with no embedded whitespace.
// It is written for the browser, where \s also covers Unicode spaces; RE2's \s
// is ASCII only, so Matches rejects the rest before applying it.
const Pattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

var addressRe = regexp.MustCompile(Pattern)

var lower = cases.Lower(language.Und)

// Matches reports whether s matches Pattern exactly as given, with the
// browser's definition of whitespace.
func Matches(s string) bool {
	if strings.IndexFunc(s, isSpace) >= 0 {
		return false
	}
	return addressRe.MatchString(s)
}

// isSpace covers the Unicode White_Space runes plus U+FEFF, which JavaScript
// also treats as whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Normalize trims surrounding whitespace and lower-cases the address.
func Normalize(s string) string {
	return lower.String(strings.TrimSpace(s))
}

// RegisterValidation installs the ValidationTag rule on v.
func RegisterValidation(v *validator.Validate) error {
	return v.RegisterValidation(ValidationTag, func(fl validator.FieldLevel) bool {
		return Matches(fl.Field().String())
	})
}
