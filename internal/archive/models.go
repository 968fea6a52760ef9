package archive

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-blog/internal/domain"
)

// Entry is the archive record for one content file. The ID is deterministic
// (derived from collection and slug) so repeated syncs of the same tree
// always address the same rows.
type Entry struct {
	bun.BaseModel `bun:"table:blog_entries,alias:be"`

	ID           uuid.UUID     `bun:",pk,type:uuid" json:"id"`
	Path         string        `bun:"path,notnull" json:"path"`
	Collection   string        `bun:"collection,notnull" json:"collection"`
	Slug         string        `bun:"slug,notnull" json:"slug"`
	Title        string        `bun:"title,notnull" json:"title"`
	Layout       string        `bun:"layout" json:"layout,omitempty"`
	Permalink    string        `bun:"permalink,notnull" json:"permalink"`
	Date         *time.Time    `bun:"publish_date,nullzero" json:"date,omitempty"`
	Tags         []string      `bun:"tags,type:jsonb" json:"tags,omitempty"`
	Categories   []string      `bun:"categories,type:jsonb" json:"categories,omitempty"`
	Checksum     string        `bun:"checksum,notnull" json:"checksum"`
	WordCount    int           `bun:"word_count" json:"word_count"`
	ListingCount int           `bun:"listing_count" json:"listing_count"`
	Status       domain.Status `bun:"status,notnull,default:'draft'" json:"status"`
	CreatedAt    time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
	DeletedAt    *time.Time    `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`

	IsVisible bool `bun:"-" json:"is_visible"`
}

// Clone returns a deep copy so repository reads never share slices with
// stored records.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	copied := *e
	if e.Date != nil {
		date := *e.Date
		copied.Date = &date
	}
	if e.DeletedAt != nil {
		deleted := *e.DeletedAt
		copied.DeletedAt = &deleted
	}
	copied.Tags = append([]string(nil), e.Tags...)
	copied.Categories = append([]string(nil), e.Categories...)
	return &copied
}
