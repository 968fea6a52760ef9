package domain

import (
	"strings"
	"time"
)

// Status represents the lifecycle state of an archive entry.
type Status string

const (
	// StatusDraft indicates content still under preparation.
	StatusDraft Status = "draft"
	// StatusPublished identifies content available to consumers.
	StatusPublished Status = "published"
	// StatusArchived marks content retained for history but no longer served.
	StatusArchived Status = "archived"
	// StatusScheduled marks content with a future publish time.
	StatusScheduled Status = "scheduled"
)

// Collection identifies the top-level grouping a content file belongs to.
type Collection string

const (
	// CollectionPosts holds dated long-form entries.
	CollectionPosts Collection = "posts"
	// CollectionPages holds standalone undated documents.
	CollectionPages Collection = "pages"
)

// NormalizeCollection coerces arbitrary collection strings into a known representation.
func NormalizeCollection(input string) Collection {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	switch Collection(trimmed) {
	case CollectionPosts:
		return CollectionPosts
	case CollectionPages:
		return CollectionPages
	default:
		return Collection(trimmed)
	}
}

// IsKnown reports whether the collection is one the module recognizes.
func (c Collection) IsKnown() bool {
	return c == CollectionPosts || c == CollectionPages
}

// NormalizeStatus coerces arbitrary status strings into a known representation.
// Unknown and empty values fall back to draft.
func NormalizeStatus(input string) Status {
	status := Status(strings.ToLower(strings.TrimSpace(input)))
	switch status {
	case StatusDraft, StatusPublished, StatusArchived, StatusScheduled:
		return status
	default:
		return StatusDraft
	}
}

// DeriveStatus resolves the lifecycle state for an entry at sync time.
// An explicit unpublished flag wins, a future publish date schedules the
// entry, everything else is published.
func DeriveStatus(published *bool, date *time.Time, now time.Time) Status {
	if published != nil && !*published {
		return StatusDraft
	}
	if date != nil && date.After(now) {
		return StatusScheduled
	}
	return StatusPublished
}

// IsVisible reports whether entries in this state are served to consumers.
func (s Status) IsVisible() bool {
	return s == StatusPublished
}
