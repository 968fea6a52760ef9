package markup

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ChangeEvent describes a content file change that settled past the
// debounce window.
type ChangeEvent struct {
	Path string
	Op   string
}

// WatcherConfig configures the content tree watcher.
type WatcherConfig struct {
	// Dir is the content root to watch. Immediate sub-directories
	// (posts/, pages/) are watched too since the underlying notifier is
	// not recursive.
	Dir string
	// Pattern limits events to matching files (defaults to "*.md").
	Pattern string
	// Debounce is how long a path must stay quiet before its event is
	// emitted. Editors often fire several writes per save.
	Debounce time.Duration
	Logger   interfaces.Logger
}

// Watcher emits debounced change events for a content tree so authoring
// loops can re-validate or re-sync without polling.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	dir         string
	pattern     string
	debounceMap map[string]debouncedEvent
	debounceDur time.Duration
	logger      interfaces.Logger
	events      chan ChangeEvent
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

type debouncedEvent struct {
	at time.Time
	op string
}

// NewWatcher constructs a watcher for the given content directory.
func NewWatcher(cfg WatcherConfig) (*Watcher, error) {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	pattern := cfg.Pattern
	if pattern == "" {
		pattern = "*.md"
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Watcher{
		watcher:     notifier,
		dir:         filepath.Clean(cfg.Dir),
		pattern:     pattern,
		debounceMap: make(map[string]debouncedEvent),
		debounceDur: debounce,
		logger:      logger,
		events:      make(chan ChangeEvent, 16),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Events exposes the settled change events. The channel is never closed
// while the watcher runs; consumers should select against their own done
// signal.
func (w *Watcher) Events() <-chan ChangeEvent {
	return w.events
}

// Start begins watching the content directory. It is non-blocking; the
// event loop runs in its own goroutine until Stop is called or the context
// is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.dir); err != nil {
		w.logger.Warn("watcher.start.failed", "dir", w.dir, "error", err)
	} else {
		w.logger.Info("watcher.start", "dir", w.dir)
	}

	// The notifier is not recursive; add immediate sub-directories so the
	// usual posts/ and pages/ layout is covered.
	if entries, err := os.ReadDir(w.dir); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			sub := filepath.Join(w.dir, entry.Name())
			if err := w.watcher.Add(sub); err != nil {
				w.logger.Warn("watcher.subdir.failed", "dir", sub, "error", err)
			}
		}
	}

	go w.run(ctx)

	return nil
}

// Stop stops the watcher and waits for the event loop to drain.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("watcher.close.failed", "error", err)
	}
	w.logger.Info("watcher.stopped", "dir", w.dir)
}

// IsWatching reports whether the event loop is running.
func (w *Watcher) IsWatching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	flush := time.NewTicker(100 * time.Millisecond)
	defer flush.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher.error", "error", err)

		case <-flush.C:
			w.emitSettled()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// New sub-directories need their own watch to keep coverage.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.logger.Warn("watcher.subdir.failed", "dir", event.Name, "error", err)
			}
			return
		}
	}

	if !matchPattern(filepath.ToSlash(event.Name), w.pattern) {
		return
	}

	var op string
	switch {
	case event.Op&fsnotify.Create != 0:
		op = "create"
	case event.Op&fsnotify.Write != 0:
		op = "modify"
	case event.Op&fsnotify.Remove != 0:
		op = "delete"
	case event.Op&fsnotify.Rename != 0:
		op = "rename"
	default:
		return
	}

	w.mu.Lock()
	w.debounceMap[event.Name] = debouncedEvent{at: time.Now(), op: op}
	w.mu.Unlock()
}

func (w *Watcher) emitSettled() {
	w.mu.Lock()
	now := time.Now()
	settled := make([]ChangeEvent, 0)
	for path, pending := range w.debounceMap {
		if now.Sub(pending.at) >= w.debounceDur {
			settled = append(settled, ChangeEvent{Path: path, Op: pending.op})
			delete(w.debounceMap, path)
		}
	}
	w.mu.Unlock()

	for _, event := range settled {
		select {
		case w.events <- event:
			w.logger.Debug("watcher.event", "path", event.Path, "op", event.Op)
		default:
			// Nobody draining; drop rather than block the loop.
		}
	}
}
