package archive

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/domain"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var (
	ErrPathRequired      = errors.New("archive: path is required")
	ErrSlugRequired      = errors.New("archive: slug is required")
	ErrTitleRequired     = errors.New("archive: title is required")
	ErrCollectionUnknown = errors.New("archive: collection must be posts or pages")
	ErrPermalinkRequired = errors.New("archive: permalink is required")
	ErrIDRequired        = errors.New("archive: entry id required")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// EntryRepository abstracts storage operations for archive entries.
type EntryRepository interface {
	Create(ctx context.Context, record *Entry) (*Entry, error)
	Update(ctx context.Context, record *Entry) (*Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	GetByPath(ctx context.Context, path string) (*Entry, error)
	List(ctx context.Context) ([]*Entry, error)
}

// ListOptions filters and paginates archive queries.
type ListOptions struct {
	Collection string
	Tag        string
	Category   string
	Status     domain.Status
	// IncludeHidden keeps drafts, scheduled, archived, and soft-deleted
	// entries in the result. The default serves visible entries only.
	IncludeHidden bool
	Limit         int
	Offset        int
}

// TermCount reports how many visible entries carry one tag or category.
type TermCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// UpsertEntryInput carries everything sync knows about one content file.
type UpsertEntryInput struct {
	Path         string
	Collection   string
	Slug         string
	Title        string
	Layout       string
	Permalink    string
	Date         *time.Time
	Tags         []string
	Categories   []string
	Checksum     string
	WordCount    int
	ListingCount int
	// Published mirrors the optional published front-matter flag; nil
	// means the author left it unset.
	Published *bool
}

// Service exposes the archive use-cases.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*Entry, error)
	GetBySlug(ctx context.Context, collection, slug string) (*Entry, error)
	GetByPermalink(ctx context.Context, permalink string) (*Entry, error)
	List(ctx context.Context, opts ListOptions) ([]*Entry, int, error)
	Tags(ctx context.Context) ([]TermCount, error)
	Categories(ctx context.Context) ([]TermCount, error)
	Upsert(ctx context.Context, input UpsertEntryInput) (*Entry, error)
	Archive(ctx context.Context, id uuid.UUID) (*Entry, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records and derive status.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// IDGenerator derives an entry ID from collection and slug.
type IDGenerator func(collection, slug string) uuid.UUID

// WithIDGenerator overrides deterministic entry ID derivation.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger injects the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	entries EntryRepository
	now     func() time.Time
	id      IDGenerator
	logger  interfaces.Logger
}

// NewService constructs an archive service over the supplied repository.
func NewService(entries EntryRepository, opts ...ServiceOption) Service {
	s := &service{
		entries: entries,
		now:     time.Now,
		id:      identity.EntryID,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	if id == uuid.Nil {
		return nil, ErrIDRequired
	}
	record, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.decorate(record), nil
}

func (s *service) GetBySlug(ctx context.Context, collection, slug string) (*Entry, error) {
	id := s.id(collection, slug)
	if id == uuid.Nil {
		return nil, &NotFoundError{Resource: "entry", Key: collection + "/" + slug}
	}
	record, err := s.entries.GetByID(ctx, id)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, &NotFoundError{Resource: "entry", Key: collection + "/" + slug}
		}
		return nil, err
	}
	return s.decorate(record), nil
}

func (s *service) GetByPermalink(ctx context.Context, permalink string) (*Entry, error) {
	target := normalizePermalinkKey(permalink)
	if target == "" {
		return nil, &NotFoundError{Resource: "entry", Key: permalink}
	}

	records, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if normalizePermalinkKey(record.Permalink) == target {
			return s.decorate(record), nil
		}
	}
	return nil, &NotFoundError{Resource: "entry", Key: permalink}
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]*Entry, int, error) {
	records, err := s.entries.List(ctx)
	if err != nil {
		return nil, 0, err
	}

	filtered := make([]*Entry, 0, len(records))
	for _, record := range records {
		s.decorate(record)
		if !s.matches(record, opts) {
			continue
		}
		filtered = append(filtered, record)
	}

	sortEntries(filtered)
	total := len(filtered)

	if opts.Offset > 0 {
		if opts.Offset >= len(filtered) {
			return []*Entry{}, total, nil
		}
		filtered = filtered[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(filtered) {
		filtered = filtered[:opts.Limit]
	}

	return filtered, total, nil
}

func (s *service) Tags(ctx context.Context) ([]TermCount, error) {
	return s.countTerms(ctx, func(e *Entry) []string { return e.Tags })
}

func (s *service) Categories(ctx context.Context) ([]TermCount, error) {
	return s.countTerms(ctx, func(e *Entry) []string { return e.Categories })
}

func (s *service) Upsert(ctx context.Context, input UpsertEntryInput) (*Entry, error) {
	if err := validateUpsertInput(input); err != nil {
		return nil, err
	}

	collection := string(domain.NormalizeCollection(input.Collection))
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	id := s.id(collection, slug)
	now := s.now()
	status := domain.DeriveStatus(input.Published, input.Date, now)

	existing, err := s.entries.GetByID(ctx, id)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		existing = nil
	}

	record := &Entry{
		ID:           id,
		Path:         strings.TrimSpace(input.Path),
		Collection:   collection,
		Slug:         slug,
		Title:        strings.TrimSpace(input.Title),
		Layout:       strings.TrimSpace(input.Layout),
		Permalink:    strings.TrimSpace(input.Permalink),
		Date:         cloneTimePtr(input.Date),
		Tags:         append([]string(nil), input.Tags...),
		Categories:   append([]string(nil), input.Categories...),
		Checksum:     input.Checksum,
		WordCount:    input.WordCount,
		ListingCount: input.ListingCount,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if existing == nil {
		created, err := s.entries.Create(ctx, record)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("archive entry created", "path", record.Path, "id", id)
		return s.decorate(created), nil
	}

	record.CreatedAt = existing.CreatedAt
	// Re-syncing a file revives a previously archived entry.
	record.DeletedAt = nil

	updated, err := s.entries.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("archive entry updated", "path", record.Path, "id", id)
	return s.decorate(updated), nil
}

func (s *service) Archive(ctx context.Context, id uuid.UUID) (*Entry, error) {
	if id == uuid.Nil {
		return nil, ErrIDRequired
	}
	record, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record.Status = domain.StatusArchived
	record.DeletedAt = &now
	record.UpdatedAt = now

	updated, err := s.entries.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("archive entry archived", "path", record.Path, "id", id)
	return s.decorate(updated), nil
}

func (s *service) countTerms(ctx context.Context, terms func(*Entry) []string) ([]TermCount, error) {
	records, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, record := range records {
		if !s.decorate(record).IsVisible {
			continue
		}
		for _, term := range terms(record) {
			trimmed := strings.TrimSpace(term)
			if trimmed == "" {
				continue
			}
			counts[trimmed]++
		}
	}

	out := make([]TermCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, TermCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *service) matches(record *Entry, opts ListOptions) bool {
	if record == nil {
		return false
	}
	if !opts.IncludeHidden {
		if record.DeletedAt != nil || !record.IsVisible {
			return false
		}
	}
	if opts.Collection != "" && !strings.EqualFold(record.Collection, opts.Collection) {
		return false
	}
	if opts.Status != "" && record.Status != opts.Status {
		return false
	}
	if opts.Tag != "" && !containsFold(record.Tags, opts.Tag) {
		return false
	}
	if opts.Category != "" && !containsFold(record.Categories, opts.Category) {
		return false
	}
	return true
}

// decorate computes the visibility projection. Scheduled entries whose
// publish date has since passed surface as published without a re-sync.
func (s *service) decorate(record *Entry) *Entry {
	if record == nil {
		return nil
	}
	now := s.now()
	if record.Status == domain.StatusScheduled && record.Date != nil && !record.Date.After(now) {
		record.Status = domain.StatusPublished
	}
	record.IsVisible = record.DeletedAt == nil && record.Status.IsVisible()
	return record
}

func validateUpsertInput(input UpsertEntryInput) error {
	if strings.TrimSpace(input.Path) == "" {
		return ErrPathRequired
	}
	if strings.TrimSpace(input.Slug) == "" {
		return ErrSlugRequired
	}
	if strings.TrimSpace(input.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(input.Permalink) == "" {
		return ErrPermalinkRequired
	}
	if !domain.NormalizeCollection(input.Collection).IsKnown() {
		return ErrCollectionUnknown
	}
	return nil
}

// sortEntries orders newest first by date, undated entries last, ties broken
// by slug then path for deterministic output.
func sortEntries(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.Date != nil && b.Date != nil && !a.Date.Equal(*b.Date):
			return a.Date.After(*b.Date)
		case a.Date != nil && b.Date == nil:
			return true
		case a.Date == nil && b.Date != nil:
			return false
		}
		if a.Slug != b.Slug {
			return a.Slug < b.Slug
		}
		return a.Path < b.Path
	})
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(target)) {
			return true
		}
	}
	return false
}

func normalizePermalinkKey(permalink string) string {
	trimmed := strings.TrimSpace(permalink)
	if trimmed == "" || trimmed == "/" {
		return trimmed
	}
	return strings.TrimSuffix(trimmed, "/")
}

func cloneTimePtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
