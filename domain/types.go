package domain

import internaldomain "github.com/goliatone/go-blog/internal/domain"

// Status represents lifecycle states for archive entries.
type Status = internaldomain.Status

const (
	// StatusDraft indicates content still under preparation.
	StatusDraft = internaldomain.StatusDraft
	// StatusPublished identifies content available to consumers.
	StatusPublished = internaldomain.StatusPublished
	// StatusArchived marks content that is retained for history but not publicly visible.
	StatusArchived = internaldomain.StatusArchived
	// StatusScheduled marks content that has a future publish time configured.
	StatusScheduled = internaldomain.StatusScheduled
)

// Collection identifies the top-level grouping a content file belongs to.
type Collection = internaldomain.Collection

const (
	// CollectionPosts holds dated long-form entries.
	CollectionPosts = internaldomain.CollectionPosts
	// CollectionPages holds standalone undated documents.
	CollectionPages = internaldomain.CollectionPages
)
