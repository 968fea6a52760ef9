package markup

import (
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
)

// postNamePattern matches dated post filenames: YYYY-MM-DD-rest.
var postNamePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)$`)

// SplitPostName extracts the publish date and slug from a dated post
// filename (extension already stripped). It reports false when the name
// carries no parseable date prefix.
func SplitPostName(name string) (time.Time, string, bool) {
	matches := postNamePattern.FindStringSubmatch(name)
	if matches == nil {
		return time.Time{}, "", false
	}

	date, err := time.Parse("2006-01-02", matches[1])
	if err != nil {
		return time.Time{}, "", false
	}

	return date.UTC(), NormalizeSlug(matches[2]), true
}

// NormalizeSlug applies the default slug normalization rules, falling back
// to a trimmed lowercase of the input when normalization fails.
func NormalizeSlug(value string) string {
	normalized, err := slug.Normalize(value)
	if err != nil || normalized == "" {
		return strings.ToLower(strings.TrimSpace(value))
	}
	return normalized
}

// IsValidSlug reports whether the slug matches the default rules.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}
