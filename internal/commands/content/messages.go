package contentcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	validateContentMessageType = "blog.content.validate"
	syncContentMessageType     = "blog.content.sync"
)

// ValidateContentMessage triggers a parse and lint pass over the content
// tree without touching the archive.
type ValidateContentMessage struct {
	// Dir selects the directory to load, relative to the content root.
	// Empty loads the whole tree.
	Dir string `json:"dir,omitempty"`
	// Pattern overrides the configured file glob ("*.md" by default).
	Pattern string `json:"pattern,omitempty"`
	// Strict promotes warnings to failures.
	Strict bool `json:"strict,omitempty"`
}

// Type implements command.Message.
func (ValidateContentMessage) Type() string { return validateContentMessageType }

// Validate ensures the pattern, when supplied, is usable.
func (cmd ValidateContentMessage) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Pattern, validation.By(func(value any) error {
			pattern := value.(string)
			if pattern != "" && strings.TrimSpace(pattern) == "" {
				return validation.NewError("blog.content.validate.pattern_blank", "pattern must not be blank")
			}
			return nil
		})),
	)
}

// SyncContentMessage drives an archive sync run over the content tree.
type SyncContentMessage struct {
	// Dir selects the directory to load, relative to the content root.
	Dir string `json:"dir,omitempty"`
	// Pattern overrides the configured file glob.
	Pattern string `json:"pattern,omitempty"`
	// DryRun evaluates the run without writing to the archive.
	DryRun bool `json:"dry_run,omitempty"`
	// DeleteOrphaned archives entries whose backing file disappeared.
	DeleteOrphaned bool `json:"delete_orphaned,omitempty"`
}

// Type implements command.Message.
func (SyncContentMessage) Type() string { return syncContentMessageType }

// Validate ensures the pattern, when supplied, is usable.
func (cmd SyncContentMessage) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Pattern, validation.By(func(value any) error {
			pattern := value.(string)
			if pattern != "" && strings.TrimSpace(pattern) == "" {
				return validation.NewError("blog.content.sync.pattern_blank", "pattern must not be blank")
			}
			return nil
		})),
	)
}
