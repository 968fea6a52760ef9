package archive

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/lint"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markup"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Linter gates admission into the archive. Error severity rejects a
// document, warnings travel with the result for reporting.
type Linter interface {
	Check(docs []*interfaces.Document) []interfaces.Issue
}

// PermalinkResolver produces the canonical permalink for a document.
type PermalinkResolver interface {
	Resolve(doc *interfaces.Document) (string, error)
}

// Syncer reconciles a loaded content tree against the archive.
type Syncer struct {
	archive    Service
	linter     Linter
	permalinks PermalinkResolver
	id         IDGenerator
	logger     interfaces.Logger
}

// SyncerOption configures the syncer.
type SyncerOption func(*Syncer)

// WithSyncLogger injects the sync logger.
func WithSyncLogger(logger interfaces.Logger) SyncerOption {
	return func(s *Syncer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSyncIDGenerator overrides entry ID derivation, mainly for tests.
func WithSyncIDGenerator(generator IDGenerator) SyncerOption {
	return func(s *Syncer) {
		if generator != nil {
			s.id = generator
		}
	}
}

// NewSyncer wires the sync pipeline over lint, permalink resolution, and the
// archive service.
func NewSyncer(archive Service, linter Linter, permalinks PermalinkResolver, opts ...SyncerOption) *Syncer {
	s := &Syncer{
		archive:    archive,
		linter:     linter,
		permalinks: permalinks,
		id:         identity.EntryID,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync reconciles the supplied documents with the archive. Unchanged
// documents are skipped by checksum, missing ones created, changed ones
// updated, and entries without a backing document are reported as orphans.
// Running the same tree twice yields all skips.
func (s *Syncer) Sync(ctx context.Context, docs []*interfaces.Document, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	result := &interfaces.SyncResult{
		Created:  []string{},
		Updated:  []string{},
		Skipped:  []string{},
		Orphaned: []string{},
	}

	issues := s.linter.Check(docs)
	result.Issues = issues

	rejected := map[string]bool{}
	for _, issue := range lint.FilterErrors(issues) {
		rejected[issue.Path] = true
	}

	seen := map[uuid.UUID]bool{}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if rejected[doc.Path] {
			result.Skipped = append(result.Skipped, doc.Path)
			result.Errors = append(result.Errors, fmt.Errorf("sync: %s rejected by lint", doc.Path))
			continue
		}

		permalink, err := s.permalinks.Resolve(doc)
		if err != nil {
			result.Skipped = append(result.Skipped, doc.Path)
			result.Errors = append(result.Errors, fmt.Errorf("sync: %s: %w", doc.Path, err))
			continue
		}

		id := s.entryID(doc.Collection, doc.Slug)
		if id == uuid.Nil {
			result.Skipped = append(result.Skipped, doc.Path)
			result.Errors = append(result.Errors, fmt.Errorf("sync: %s: cannot derive entry id", doc.Path))
			continue
		}
		seen[id] = true

		existing, err := s.archive.Get(ctx, id)
		if err != nil {
			var notFound *NotFoundError
			if !errors.As(err, &notFound) {
				result.Errors = append(result.Errors, fmt.Errorf("sync: %s: %w", doc.Path, err))
				continue
			}
			existing = nil
		}

		checksum := hex.EncodeToString(doc.Checksum)

		switch {
		case existing == nil:
			if !opts.DryRun {
				if _, err := s.archive.Upsert(ctx, upsertInput(doc, permalink, checksum)); err != nil {
					result.Errors = append(result.Errors, fmt.Errorf("sync: %s: %w", doc.Path, err))
					continue
				}
			}
			result.Created = append(result.Created, doc.Path)

		case existing.Checksum == checksum && existing.DeletedAt == nil:
			result.Skipped = append(result.Skipped, doc.Path)

		default:
			if !opts.DryRun {
				if _, err := s.archive.Upsert(ctx, upsertInput(doc, permalink, checksum)); err != nil {
					result.Errors = append(result.Errors, fmt.Errorf("sync: %s: %w", doc.Path, err))
					continue
				}
			}
			result.Updated = append(result.Updated, doc.Path)
		}
	}

	if err := s.collectOrphans(ctx, seen, opts, result); err != nil {
		return result, err
	}

	sort.Strings(result.Created)
	sort.Strings(result.Updated)
	sort.Strings(result.Skipped)
	sort.Strings(result.Orphaned)

	s.logger.Info("sync complete",
		"created", len(result.Created),
		"updated", len(result.Updated),
		"skipped", len(result.Skipped),
		"orphaned", len(result.Orphaned),
		"dry_run", opts.DryRun,
	)

	return result, nil
}

// collectOrphans reports live entries whose backing document disappeared and
// archives them when deletion is requested.
func (s *Syncer) collectOrphans(ctx context.Context, seen map[uuid.UUID]bool, opts interfaces.SyncOptions, result *interfaces.SyncResult) error {
	entries, _, err := s.archive.List(ctx, ListOptions{IncludeHidden: true})
	if err != nil {
		return fmt.Errorf("sync: listing archive: %w", err)
	}

	for _, entry := range entries {
		if seen[entry.ID] || entry.DeletedAt != nil {
			continue
		}
		result.Orphaned = append(result.Orphaned, entry.Path)
		if opts.DeleteOrphaned && !opts.DryRun {
			if _, err := s.archive.Archive(ctx, entry.ID); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("sync: archiving %s: %w", entry.Path, err))
			}
		}
	}
	return nil
}

func (s *Syncer) entryID(collection, slug string) uuid.UUID {
	return s.id(collection, slug)
}

func upsertInput(doc *interfaces.Document, permalink, checksum string) UpsertEntryInput {
	return UpsertEntryInput{
		Path:         doc.Path,
		Collection:   doc.Collection,
		Slug:         doc.Slug,
		Title:        doc.FrontMatter.Title,
		Layout:       doc.FrontMatter.Layout,
		Permalink:    permalink,
		Date:         doc.Date,
		Tags:         doc.FrontMatter.Tags,
		Categories:   doc.FrontMatter.Categories,
		Checksum:     checksum,
		WordCount:    doc.WordCount,
		ListingCount: len(doc.Listings),
		Published:    markup.PublishedFlag(doc),
	}
}
