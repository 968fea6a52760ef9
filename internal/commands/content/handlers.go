package contentcmd

import (
	"context"
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-blog/internal/archive"
	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/lint"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	validateOperation = "content.validate"
	syncOperation     = "content.sync"
)

// ErrContentInvalid marks a validation run that found blocking issues.
var ErrContentInvalid = errors.New("content command: validation failed")

var (
	_ command.Commander[ValidateContentMessage] = (*ValidateContentHandler)(nil)
	_ command.Commander[SyncContentMessage]     = (*SyncContentHandler)(nil)
)

// ValidateContentResult summarises a validation run.
type ValidateContentResult struct {
	Documents int                `json:"documents"`
	Issues    []interfaces.Issue `json:"issues"`
	Failed    bool               `json:"failed"`
}

// ValidateContentHandler parses and lints the content tree.
type ValidateContentHandler struct {
	docs   interfaces.DocumentService
	linter *lint.Runner
	logger interfaces.Logger
	inner  *commands.Handler[ValidateContentMessage]
}

// NewValidateContentHandler binds the handler to a document service and lint runner.
func NewValidateContentHandler(docs interfaces.DocumentService, linter *lint.Runner, logger interfaces.Logger, opts ...commands.HandlerOption[ValidateContentMessage]) *ValidateContentHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	h := &ValidateContentHandler{
		docs:   docs,
		linter: linter,
		logger: logger,
	}

	exec := func(ctx context.Context, msg ValidateContentMessage) error {
		result, err := h.Run(ctx, msg)
		if err != nil {
			return err
		}
		if result.Failed {
			return fmt.Errorf("%w: %d issue(s)", ErrContentInvalid, len(result.Issues))
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ValidateContentMessage]{
		commands.WithLogger[ValidateContentMessage](logger),
		commands.WithOperation[ValidateContentMessage](validateOperation),
		commands.WithMessageFields(func(msg ValidateContentMessage) map[string]any {
			fields := map[string]any{}
			if msg.Dir != "" {
				fields["dir"] = msg.Dir
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Strict {
				fields["strict"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ValidateContentMessage](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	h.inner = commands.NewHandler(exec, handlerOpts...)
	return h
}

// Execute satisfies command.Commander[ValidateContentMessage].
func (h *ValidateContentHandler) Execute(ctx context.Context, msg ValidateContentMessage) error {
	return h.inner.Execute(ctx, msg)
}

// Run performs the validation pass and returns the detailed result. A result
// with Failed set is not an error: the issues are the payload.
func (h *ValidateContentHandler) Run(ctx context.Context, msg ValidateContentMessage) (*ValidateContentResult, error) {
	if err := command.ValidateMessage(msg); err != nil {
		return nil, err
	}

	docs, err := h.docs.LoadDirectory(ctx, msg.Dir, interfaces.LoadOptions{Pattern: msg.Pattern})
	if err != nil {
		return nil, fmt.Errorf("content command: loading documents: %w", err)
	}

	issues := h.linter.Check(docs)
	if msg.Strict {
		issues = lint.Promote(issues)
	}

	result := &ValidateContentResult{
		Documents: len(docs),
		Issues:    issues,
		Failed:    lint.HasErrors(issues),
	}

	h.logger.Info("content.validate.completed",
		"documents", result.Documents,
		"issues", len(result.Issues),
		"failed", result.Failed,
	)
	return result, nil
}

// SyncContentHandler reconciles the content tree with the archive.
type SyncContentHandler struct {
	docs   interfaces.DocumentService
	syncer *archive.Syncer
	logger interfaces.Logger
	inner  *commands.Handler[SyncContentMessage]
}

// NewSyncContentHandler binds the handler to a document service and syncer.
func NewSyncContentHandler(docs interfaces.DocumentService, syncer *archive.Syncer, logger interfaces.Logger, opts ...commands.HandlerOption[SyncContentMessage]) *SyncContentHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	h := &SyncContentHandler{
		docs:   docs,
		syncer: syncer,
		logger: logger,
	}

	exec := func(ctx context.Context, msg SyncContentMessage) error {
		_, err := h.Run(ctx, msg)
		return err
	}

	handlerOpts := []commands.HandlerOption[SyncContentMessage]{
		commands.WithLogger[SyncContentMessage](logger),
		commands.WithOperation[SyncContentMessage](syncOperation),
		commands.WithMessageFields(func(msg SyncContentMessage) map[string]any {
			fields := map[string]any{}
			if msg.Dir != "" {
				fields["dir"] = msg.Dir
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.DeleteOrphaned {
				fields["delete_orphaned"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncContentMessage](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	h.inner = commands.NewHandler(exec, handlerOpts...)
	return h
}

// Execute satisfies command.Commander[SyncContentMessage].
func (h *SyncContentHandler) Execute(ctx context.Context, msg SyncContentMessage) error {
	return h.inner.Execute(ctx, msg)
}

// Run performs the sync pass and returns the reconciliation result.
func (h *SyncContentHandler) Run(ctx context.Context, msg SyncContentMessage) (*interfaces.SyncResult, error) {
	if err := command.ValidateMessage(msg); err != nil {
		return nil, err
	}

	docs, err := h.docs.LoadDirectory(ctx, msg.Dir, interfaces.LoadOptions{Pattern: msg.Pattern})
	if err != nil {
		return nil, fmt.Errorf("content command: loading documents: %w", err)
	}

	result, err := h.syncer.Sync(ctx, docs, interfaces.SyncOptions{
		DryRun:         msg.DryRun,
		DeleteOrphaned: msg.DeleteOrphaned,
	})
	if err != nil {
		return nil, fmt.Errorf("content command: sync: %w", err)
	}

	h.logger.Info("content.sync.completed",
		"created", len(result.Created),
		"updated", len(result.Updated),
		"skipped", len(result.Skipped),
		"orphaned", len(result.Orphaned),
		"dry_run", msg.DryRun,
	)
	return result, nil
}
