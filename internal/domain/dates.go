package domain

import (
	"strings"
	"time"
)

// DateLayout is the boundary date format: two-digit day, two-digit month,
// four-digit year, slash-separated.
const DateLayout = "02/01/2006"

// ParseDate converts dd/mm/yyyy text to a date. Parsing is lenient by
// contract: empty, whitespace-only, or unparsable input means "no value"
// and returns nil rather than an error.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// FormatDate renders a date as dd/mm/yyyy, or an empty string for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// TrimOrNil trims whitespace and returns nil for an empty result, so blank
// optional fields are stored as NULL rather than empty strings.
func TrimOrNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
