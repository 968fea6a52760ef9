package markup_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/markup"
)

func TestWatcherEmitsSettledChanges(t *testing.T) {
	dir := t.TempDir()
	postsDir := filepath.Join(dir, "posts")
	if err := os.MkdirAll(postsDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	watcher, err := markup.NewWatcher(markup.WatcherConfig{
		Dir:      dir,
		Pattern:  "*.md",
		Debounce: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := watcher.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer watcher.Stop()

	if !watcher.IsWatching() {
		t.Fatal("expected the watcher to be running")
	}

	path := filepath.Join(postsDir, "2024-01-15-transducers.md")
	if err := os.WriteFile(path, []byte("---\ntitle: T\n---\n\nBody.\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case event := <-watcher.Events():
		if event.Path != path {
			t.Fatalf("unexpected event path %q", event.Path)
		}
		if event.Op != "create" && event.Op != "modify" {
			t.Fatalf("unexpected op %q", event.Op)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a change event")
	}
}

func TestWatcherIgnoresNonMatchingFiles(t *testing.T) {
	dir := t.TempDir()

	watcher, err := markup.NewWatcher(markup.WatcherConfig{
		Dir:      dir,
		Pattern:  "*.md",
		Debounce: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := watcher.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer watcher.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case event := <-watcher.Events():
		t.Fatalf("unexpected event for %q", event.Path)
	case <-time.After(500 * time.Millisecond):
	}
}
