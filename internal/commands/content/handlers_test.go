package contentcmd_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-blog/internal/archive"
	contentcmd "github.com/goliatone/go-blog/internal/commands/content"
	"github.com/goliatone/go-blog/internal/lint"
	"github.com/goliatone/go-blog/internal/markup"
	"github.com/goliatone/go-blog/internal/permalink"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const cleanPostFile = `---
layout: post
title: "Transducers from First Principles"
tags:
  - clojure
categories:
  - programming
---

# Transducers

Reducing functions compose.
`

const untitledPostFile = `---
layout: post
tags:
  - clojure
---

# Untitled

Body text.
`

const jumpyPostFile = `---
layout: post
title: "Heading Jumps"
---

# Top

### Too Deep

Body text.
`

func newFixtureService(t *testing.T, files map[string]string) interfaces.DocumentService {
	t.Helper()

	mapFS := fstest.MapFS{}
	for path, content := range files {
		mapFS[path] = &fstest.MapFile{Data: []byte(content), ModTime: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	}

	svc, err := markup.NewServiceWithFS(mapFS, markup.Config{Pattern: "*.md", Recursive: true}, nil)
	if err != nil {
		t.Fatalf("new markup service: %v", err)
	}
	return svc
}

func newLinter() *lint.Runner {
	return lint.NewRunner(lint.Config{Layouts: []string{"post", "page"}})
}

func TestValidateContentHandlerCleanTree(t *testing.T) {
	docs := newFixtureService(t, map[string]string{
		"posts/2024-01-15-transducers.md": cleanPostFile,
	})
	handler := contentcmd.NewValidateContentHandler(docs, newLinter(), nil)

	result, err := handler.Run(context.Background(), contentcmd.ValidateContentMessage{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Documents != 1 {
		t.Fatalf("expected one document, got %d", result.Documents)
	}
	if result.Failed {
		t.Fatalf("clean tree must pass, issues: %+v", result.Issues)
	}

	if err := handler.Execute(context.Background(), contentcmd.ValidateContentMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestValidateContentHandlerReportsFailures(t *testing.T) {
	docs := newFixtureService(t, map[string]string{
		"posts/2024-01-15-untitled.md": untitledPostFile,
	})
	handler := contentcmd.NewValidateContentHandler(docs, newLinter(), nil)

	result, err := handler.Run(context.Background(), contentcmd.ValidateContentMessage{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Failed {
		t.Fatal("missing title must fail validation")
	}

	err = handler.Execute(context.Background(), contentcmd.ValidateContentMessage{})
	if err == nil {
		t.Fatal("execute must surface the failure")
	}
	if !errors.Is(err, contentcmd.ErrContentInvalid) {
		t.Fatalf("expected ErrContentInvalid, got %v", err)
	}
}

func TestValidateContentHandlerStrictPromotesWarnings(t *testing.T) {
	docs := newFixtureService(t, map[string]string{
		"posts/2024-01-15-heading-jumps.md": jumpyPostFile,
	})
	handler := contentcmd.NewValidateContentHandler(docs, newLinter(), nil)

	result, err := handler.Run(context.Background(), contentcmd.ValidateContentMessage{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Failed {
		t.Fatal("warnings alone must not fail a default run")
	}

	result, err = handler.Run(context.Background(), contentcmd.ValidateContentMessage{Strict: true})
	if err != nil {
		t.Fatalf("strict run: %v", err)
	}
	if !result.Failed {
		t.Fatal("strict must promote warnings to failures")
	}
}

func TestSyncContentHandlerSyncsTree(t *testing.T) {
	docs := newFixtureService(t, map[string]string{
		"posts/2024-01-15-transducers.md": cleanPostFile,
	})

	svc := archive.NewService(archive.NewMemoryEntryRepository())
	syncer := archive.NewSyncer(svc, newLinter(), permalink.New(permalink.Config{TrailingSlash: true}))
	handler := contentcmd.NewSyncContentHandler(docs, syncer, nil)

	result, err := handler.Run(context.Background(), contentcmd.SyncContentMessage{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Created) != 1 {
		t.Fatalf("expected one created entry, got %+v", result)
	}

	entry, err := svc.GetBySlug(context.Background(), "posts", "transducers")
	if err != nil {
		t.Fatalf("get synced entry: %v", err)
	}
	if entry.Permalink != "/2024/01/transducers/" {
		t.Fatalf("unexpected permalink %q", entry.Permalink)
	}

	if err := handler.Execute(context.Background(), contentcmd.SyncContentMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestSyncContentHandlerDryRun(t *testing.T) {
	docs := newFixtureService(t, map[string]string{
		"posts/2024-01-15-transducers.md": cleanPostFile,
	})

	svc := archive.NewService(archive.NewMemoryEntryRepository())
	syncer := archive.NewSyncer(svc, newLinter(), permalink.New(permalink.Config{TrailingSlash: true}))
	handler := contentcmd.NewSyncContentHandler(docs, syncer, nil)

	result, err := handler.Run(context.Background(), contentcmd.SyncContentMessage{DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if len(result.Created) != 1 {
		t.Fatalf("dry run must classify, got %+v", result)
	}

	if _, total, err := svc.List(context.Background(), archive.ListOptions{IncludeHidden: true}); err != nil || total != 0 {
		t.Fatalf("dry run must not write: total=%d err=%v", total, err)
	}
}
