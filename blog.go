package blog

import (
	"context"

	"github.com/goliatone/go-blog/domain"
	"github.com/goliatone/go-blog/internal/archive"
	"github.com/goliatone/go-blog/internal/bloghttp"
	contentcmd "github.com/goliatone/go-blog/internal/commands/content"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/lint"
	"github.com/goliatone/go-blog/internal/permalink"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Status exports the entry lifecycle state.
type Status = domain.Status

// Collection exports the content grouping identifier.
type Collection = domain.Collection

// Lifecycle states and collections shared with the domain package.
const (
	StatusDraft     = domain.StatusDraft
	StatusPublished = domain.StatusPublished
	StatusArchived  = domain.StatusArchived
	StatusScheduled = domain.StatusScheduled

	CollectionPosts = domain.CollectionPosts
	CollectionPages = domain.CollectionPages
)

// ArchiveService exports the archive contract for consumers of the blog package.
type ArchiveService = archive.Service

// DocumentService exports the markdown loading contract.
type DocumentService = interfaces.DocumentService

// Entry exports the stored archive record.
type Entry = archive.Entry

// ListOptions exports the archive listing filters.
type ListOptions = archive.ListOptions

// TermCount exports the tag and category count pair.
type TermCount = archive.TermCount

// Document exports the parsed markdown document.
type Document = interfaces.Document

// Issue exports a single lint finding.
type Issue = interfaces.Issue

// SyncOptions exports the sync run flags.
type SyncOptions = interfaces.SyncOptions

// SyncResult exports the per-run sync report.
type SyncResult = interfaces.SyncResult

// ValidateContentResult exports the validate command report.
type ValidateContentResult = contentcmd.ValidateContentResult

// Module is the top level blog runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a blog module from the provided configuration and optional
// DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// NewWithCorpus constructs a module backed by the embedded sample corpus
// instead of an on-disk content tree.
func NewWithCorpus(cfg Config, opts ...di.Option) (*Module, error) {
	corpus, err := ContentFS()
	if err != nil {
		return nil, err
	}
	opts = append([]di.Option{di.WithContentFS(corpus)}, opts...)
	return New(cfg, opts...)
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Archive returns the configured archive service.
func (m *Module) Archive() ArchiveService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ArchiveService()
}

// Documents returns the markdown document loader.
func (m *Module) Documents() DocumentService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.DocumentService()
}

// Linter returns the configured lint runner.
func (m *Module) Linter() *lint.Runner {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Linter()
}

// Permalinks returns the configured permalink resolver.
func (m *Module) Permalinks() *permalink.Resolver {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.PermalinkResolver()
}

// Syncer returns the archive sync engine.
func (m *Module) Syncer() *archive.Syncer {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Syncer()
}

// LoadCorpus parses every document under the configured content tree.
func (m *Module) LoadCorpus(ctx context.Context) ([]*Document, error) {
	return m.Documents().LoadDirectory(ctx, "", interfaces.LoadOptions{})
}

// Validate parses and lints the content tree without touching the archive.
func (m *Module) Validate(ctx context.Context, msg contentcmd.ValidateContentMessage) (*ValidateContentResult, error) {
	return m.container.ValidateContentHandler().Run(ctx, msg)
}

// Sync reconciles the content tree into the archive and reports the outcome.
func (m *Module) Sync(ctx context.Context, msg contentcmd.SyncContentMessage) (*SyncResult, error) {
	return m.container.SyncContentHandler().Run(ctx, msg)
}

// HTTPAPI returns the read-only HTTP surface, or nil when the feature is off.
func (m *Module) HTTPAPI() *bloghttp.API {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.HTTPAPI()
}
