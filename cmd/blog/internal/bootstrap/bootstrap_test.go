package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-blog/internal/archive"
	contentcmd "github.com/goliatone/go-blog/internal/commands/content"
)

const samplePost = `---
layout: post
title: "Transducers"
---

# Transducers

Body text.
`

func writeContentTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	postsDir := filepath.Join(root, "posts")
	if err := os.MkdirAll(postsDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(postsDir, "2024-01-15-transducers.md")
	if err := os.WriteFile(path, []byte(samplePost), 0o644); err != nil {
		t.Fatalf("write post: %v", err)
	}
	return root
}

func TestBuildModuleWithMemoryStorage(t *testing.T) {
	ctx := context.Background()

	module, err := BuildModule(ctx, Options{ContentDir: writeContentTree(t)})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if module.Logger == nil {
		t.Fatal("expected a CLI logger")
	}

	result, err := module.Module.Validate(ctx, contentcmd.ValidateContentMessage{})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Documents != 1 || result.Failed {
		t.Fatalf("unexpected validate result: %+v", result)
	}
}

func TestBuildModuleWithSQLiteStorage(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "blog.db")

	module, err := BuildModule(ctx, Options{
		ContentDir: writeContentTree(t),
		Driver:     "sqlite",
		DSN:        dsn,
	})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}

	repo := module.Module.Container().EntryRepository()
	if _, ok := repo.(*archive.BunEntryRepository); !ok {
		t.Fatalf("expected bun repository for sqlite storage, got %T", repo)
	}

	result, err := module.Module.Sync(ctx, contentcmd.SyncContentMessage{})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(result.Created) != 1 {
		t.Fatalf("expected one created entry, got %+v", result)
	}
}

func TestBuildModuleRejectsUnknownDriver(t *testing.T) {
	_, err := BuildModule(context.Background(), Options{
		ContentDir: writeContentTree(t),
		Driver:     "bolt",
		DSN:        "ignored",
	})
	if err == nil {
		t.Fatal("expected an error for an unknown storage driver")
	}
}

func TestBuildModuleOverlaysSiteFile(t *testing.T) {
	ctx := context.Background()
	siteFile := filepath.Join(t.TempDir(), "site.yml")
	siteYAML := "site:\n  title: Practical Clojure\n  base_url: https://blog.example.dev\n"
	if err := os.WriteFile(siteFile, []byte(siteYAML), 0o644); err != nil {
		t.Fatalf("write site file: %v", err)
	}

	module, err := BuildModule(ctx, Options{
		ConfigFile: siteFile,
		ContentDir: writeContentTree(t),
	})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if got := module.Module.Container().Config.Site.Title; got != "Practical Clojure" {
		t.Fatalf("unexpected site title %q", got)
	}
}
