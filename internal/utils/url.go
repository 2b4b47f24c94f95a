package utils

import (
	"regexp"
	"strings"
)

var schemePattern = regexp.MustCompile(`(?i)^https?://`)

// NormalizeURL trims the input and prefixes https:// when no explicit
// scheme is present. An empty or whitespace-only input normalizes to an
// empty string, which validators treat as missing. The function is
// total; it never fails.
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if schemePattern.MatchString(trimmed) {
		return trimmed
	}
	return "https://" + trimmed
}
