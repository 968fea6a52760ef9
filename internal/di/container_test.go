package di_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-blog/internal/archive"
	contentcmd "github.com/goliatone/go-blog/internal/commands/content"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/pkg/testsupport"
)

const containerPostFile = `---
layout: post
title: "Transducers"
tags:
  - clojure
---

# Transducers

Body text.
`

func testContentFS() fstest.MapFS {
	return fstest.MapFS{
		"posts/2024-01-15-transducers.md": &fstest.MapFile{Data: []byte(containerPostFile)},
	}
}

func TestContainerDefaultsToMemoryStorage(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	c, err := di.NewContainer(cfg, di.WithContentFS(testContentFS()))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	if _, ok := c.EntryRepository().(*archive.MemoryEntryRepository); !ok {
		t.Fatalf("expected memory repository by default, got %T", c.EntryRepository())
	}
	if c.ArchiveService() == nil || c.DocumentService() == nil || c.Syncer() == nil {
		t.Fatal("expected core services to be wired")
	}
	if c.HTTPAPI() != nil {
		t.Fatal("http api must stay nil unless the feature is enabled")
	}
}

func TestContainerUsesBunStorageWhenDBSupplied(t *testing.T) {
	bunDB, err := testsupport.OpenMemoryDB()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() {
		_ = bunDB.Close()
	})

	cfg := runtimeconfig.DefaultConfig()
	c, err := di.NewContainer(cfg,
		di.WithContentFS(testContentFS()),
		di.WithBunDB(bunDB),
	)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	if _, ok := c.EntryRepository().(*archive.BunEntryRepository); !ok {
		t.Fatalf("expected bun repository with a database, got %T", c.EntryRepository())
	}
}

func TestContainerEnablesHTTPFeature(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.HTTP = true

	c, err := di.NewContainer(cfg, di.WithContentFS(testContentFS()))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if c.HTTPAPI() == nil {
		t.Fatal("expected http api when the feature is enabled")
	}
}

func TestContainerHandlersRunAgainstWiring(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	c, err := di.NewContainer(cfg, di.WithContentFS(testContentFS()))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	result, err := c.ValidateContentHandler().Run(context.Background(), contentcmd.ValidateContentMessage{})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Documents != 1 || result.Failed {
		t.Fatalf("unexpected validate result: %+v", result)
	}

	syncResult, err := c.SyncContentHandler().Run(context.Background(), contentcmd.SyncContentMessage{})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(syncResult.Created) != 1 {
		t.Fatalf("expected one created entry, got %+v", syncResult)
	}

	entry, err := c.ArchiveService().GetBySlug(context.Background(), "posts", "transducers")
	if err != nil {
		t.Fatalf("get synced entry: %v", err)
	}
	if entry.Permalink != "/2024/01/transducers/" {
		t.Fatalf("unexpected permalink %q", entry.Permalink)
	}
}
