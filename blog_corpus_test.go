package blog_test

import (
	"context"
	"testing"

	blog "github.com/goliatone/go-blog"
	contentcmd "github.com/goliatone/go-blog/internal/commands/content"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

func newCorpusModule(t *testing.T) *blog.Module {
	t.Helper()
	module, err := blog.NewWithCorpus(blog.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	return module
}

func TestCorpusLintsClean(t *testing.T) {
	module := newCorpusModule(t)

	result, err := module.Validate(context.Background(), contentcmd.ValidateContentMessage{Strict: true})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Documents != 4 {
		t.Fatalf("expected 4 documents, got %d", result.Documents)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("expected a clean corpus, got issues: %+v", result.Issues)
	}
}

func TestCorpusSyncsIntoArchive(t *testing.T) {
	module := newCorpusModule(t)
	ctx := context.Background()

	result, err := module.Sync(ctx, contentcmd.SyncContentMessage{})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(result.Created) != 4 {
		t.Fatalf("expected 4 created entries, got %+v", result)
	}

	cases := []struct {
		collection string
		slug       string
		permalink  string
	}{
		{"posts", "transducers-from-first-principles", "/2024/01/transducers-from-first-principles/"},
		{"posts", "code-smells-in-clojure", "/2024/03/code-smells-in-clojure/"},
		{"posts", "a-datalog-parser-thirty-times-faster", "/2024/05/a-datalog-parser-thirty-times-faster/"},
		{"pages", "about", "/about/"},
	}
	for _, tc := range cases {
		entry, err := module.Archive().GetBySlug(ctx, tc.collection, tc.slug)
		if err != nil {
			t.Fatalf("get %s/%s: %v", tc.collection, tc.slug, err)
		}
		if entry.Permalink != tc.permalink {
			t.Fatalf("%s/%s: unexpected permalink %q", tc.collection, tc.slug, entry.Permalink)
		}
		if !entry.IsVisible {
			t.Fatalf("%s/%s: expected a visible entry", tc.collection, tc.slug)
		}
		if entry.Status != blog.StatusPublished {
			t.Fatalf("%s/%s: unexpected status %q", tc.collection, tc.slug, entry.Status)
		}
	}

	// Second run over unchanged files must be a pure skip.
	again, err := module.Sync(ctx, contentcmd.SyncContentMessage{})
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if len(again.Created) != 0 || len(again.Updated) != 0 || len(again.Skipped) != 4 {
		t.Fatalf("expected 4 skips on an unchanged corpus, got %+v", again)
	}
}

func TestLoadCorpusReturnsEveryDocument(t *testing.T) {
	module := newCorpusModule(t)

	docs, err := module.LoadCorpus(context.Background())
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	if len(docs) != 4 {
		t.Fatalf("expected 4 documents, got %d", len(docs))
	}
	for _, doc := range docs {
		if doc.Slug == "" {
			t.Fatalf("document %q is missing a slug", doc.Path)
		}
	}
}

func TestCorpusDocumentsCarryStructure(t *testing.T) {
	module := newCorpusModule(t)
	ctx := context.Background()

	doc, err := module.Documents().Load(ctx,
		"posts/2024-05-20-a-datalog-parser-thirty-times-faster.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.FrontMatter.Title != "A Datalog Parser, Thirty Times Faster" {
		t.Fatalf("unexpected title %q", doc.FrontMatter.Title)
	}
	if doc.FrontMatter.Custom["author"] != "Elena Vasquez" {
		t.Fatalf("expected the author key in custom metadata, got %v", doc.FrontMatter.Custom)
	}
	if len(doc.Outline) == 0 || doc.Outline[0].Level != 1 {
		t.Fatalf("expected an outline rooted at the document heading, got %+v", doc.Outline)
	}
	if len(doc.Listings) == 0 {
		t.Fatal("expected fenced listings in the parser post")
	}
	for i, listing := range doc.Listings {
		if listing.Language != "clojure" {
			t.Fatalf("listing %d: unexpected language %q", i, listing.Language)
		}
	}
	if doc.WordCount == 0 {
		t.Fatal("expected a word count")
	}
}

func TestCorpusTagCounts(t *testing.T) {
	module := newCorpusModule(t)
	ctx := context.Background()

	if _, err := module.Sync(ctx, contentcmd.SyncContentMessage{}); err != nil {
		t.Fatalf("sync: %v", err)
	}

	tags, err := module.Archive().Tags(ctx)
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	counts := map[string]int{}
	for _, tag := range tags {
		counts[tag.Name] = tag.Count
	}
	if counts["clojure"] != 3 {
		t.Fatalf("expected 3 clojure posts, got %+v", counts)
	}
	if counts["datalog"] != 1 || counts["refactoring"] != 1 {
		t.Fatalf("unexpected tag counts: %+v", counts)
	}
}
