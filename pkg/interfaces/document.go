package interfaces

import (
	"context"
	"encoding/json"
	"time"
)

// MarkupParser defines how raw markup bytes are converted into HTML
// fragments. Implementations should support reusable parser instances and
// extension toggles so hosts can tailor rendering without rewriting the
// core service.
type MarkupParser interface {
	// Parse converts markup into HTML using the parser's default settings.
	Parse(markup []byte) ([]byte, error)
	// ParseWithOptions converts markup into HTML using the supplied overrides.
	ParseWithOptions(markup []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises markup parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// DocumentService exposes the high-level content workflows: load documents
// from the content tree, render markup, and inspect document structure.
type DocumentService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markup []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
}

// Document represents a content file with parsed metadata, body, and
// extracted structure. The struct is shared between the interfaces package
// and internal implementations so consumers can depend on a stable contract.
type Document struct {
	Path        string
	Collection  string
	Slug        string
	Date        *time.Time
	FrontMatter FrontMatter
	// Body holds the markup after the front-matter block, byte for byte.
	Body []byte
	// HTML holds the rendered fragment for the body. It is never a full
	// page; layout application belongs to the external publishing pipeline.
	HTML         []byte
	Outline      []Section
	Listings     []CodeListing
	WordCount    int
	LastModified time.Time
	// Checksum stores a digest of the original file content (SHA-256) so
	// sync workflows can detect changes without re-reading unchanged files.
	Checksum []byte
}

// FrontMatter models the metadata block at the top of a content file. The
// recognized keys are layout, title, permalink, tags, and categories;
// everything else lands in Custom so authors can carry extra values without
// breaking the contract.
type FrontMatter struct {
	Layout     string         `yaml:"layout" json:"layout"`
	Title      string         `yaml:"title" json:"title"`
	Permalink  string         `yaml:"permalink" json:"permalink"`
	Tags       []string       `yaml:"tags" json:"tags"`
	Categories []string       `yaml:"categories" json:"categories"`
	Custom     map[string]any `yaml:",inline" json:"custom"`
	Raw        map[string]any `yaml:"-" json:"raw"`
}

// Section describes one heading in a document's outline.
type Section struct {
	Level     int    `json:"level"`
	Title     string `json:"title"`
	Anchor    string `json:"anchor"`
	WordCount int    `json:"word_count"`
}

// CodeListing describes one fenced code block. Listings are inert text: the
// module records them for structure reporting and never evaluates them.
type CodeListing struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	Lines    int    `json:"lines"`
	// Section holds the anchor of the enclosing heading, empty when the
	// listing appears before the first heading.
	Section string `json:"section"`
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}

// Severity grades a lint issue.
type Severity string

const (
	// SeverityError marks contract violations that block archive admission.
	SeverityError Severity = "error"
	// SeverityWarning marks style problems that are reported but tolerated.
	SeverityWarning Severity = "warning"
)

// Issue reports a single well-formedness problem found in a document or
// across the corpus.
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Message  string   `json:"message"`
}

// SyncOptions controls update and delete semantics for repeated
// synchronisation runs against the archive.
type SyncOptions struct {
	DryRun         bool
	DeleteOrphaned bool
}

// SyncResult summarises a bulk sync run across the content tree. Slices hold
// repository-relative paths so callers can audit behaviour run over run.
type SyncResult struct {
	Created  []string
	Updated  []string
	Skipped  []string
	Orphaned []string
	Issues   []Issue
	Errors   []error
}

// MarshalJSON renders errors as their messages. The error values themselves
// carry no exported fields, so encoding them directly would lose the text.
func (r SyncResult) MarshalJSON() ([]byte, error) {
	messages := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		messages = append(messages, err.Error())
	}

	type alias struct {
		Created  []string `json:"created"`
		Updated  []string `json:"updated"`
		Skipped  []string `json:"skipped"`
		Orphaned []string `json:"orphaned"`
		Issues   []Issue  `json:"issues"`
		Errors   []string `json:"errors"`
	}

	return json.Marshal(alias{
		Created:  r.Created,
		Updated:  r.Updated,
		Skipped:  r.Skipped,
		Orphaned: r.Orphaned,
		Issues:   r.Issues,
		Errors:   messages,
	})
}
