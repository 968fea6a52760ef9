package archive_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-blog/internal/archive"
	"github.com/goliatone/go-blog/pkg/testsupport"
)

func newBunTestDB(t *testing.T) *bun.DB {
	t.Helper()

	bunDB, err := testsupport.OpenMemoryDB()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() {
		_ = bunDB.Close()
	})

	if _, err := bunDB.NewCreateTable().Model((*archive.Entry)(nil)).IfNotExists().Exec(context.Background()); err != nil {
		t.Fatalf("create blog_entries table: %v", err)
	}
	if _, err := bunDB.ExecContext(context.Background(), "DELETE FROM blog_entries"); err != nil {
		t.Fatalf("reset blog_entries table: %v", err)
	}

	return bunDB
}

func TestArchiveService_WithBunStorageAndCache(t *testing.T) {
	ctx := context.Background()
	bunDB := newBunTestDB(t)

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	keySerializer := repocache.NewDefaultKeySerializer()

	repo := archive.NewBunEntryRepositoryWithCache(bunDB, cacheService, keySerializer)
	svc := archive.NewService(repo, archive.WithClock(func() time.Time { return testNow }))

	created, err := svc.Upsert(ctx, postInput("transducers", "Transducers"))
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if _, err := svc.Get(ctx, created.ID); err != nil {
		t.Fatalf("first get: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); err != nil {
		t.Fatalf("cached get: %v", err)
	}

	entry, err := svc.GetBySlug(ctx, "posts", "transducers")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if entry.Title != "Transducers" || len(entry.Tags) != 1 {
		t.Fatalf("unexpected stored entry: %+v", entry)
	}
}

func TestBunEntryRepository_MatchesMemoryBehaviour(t *testing.T) {
	ctx := context.Background()
	bunDB := newBunTestDB(t)

	repos := map[string]archive.EntryRepository{
		"memory": archive.NewMemoryEntryRepository(),
		"bun":    archive.NewBunEntryRepository(bunDB),
	}

	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			svc := archive.NewService(repo, archive.WithClock(func() time.Time { return testNow }))

			first, err := svc.Upsert(ctx, postInput("transducers", "Transducers"))
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			input := postInput("transducers", "Transducers, Revisited")
			input.Checksum = "def456"
			updated, err := svc.Upsert(ctx, input)
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if updated.ID != first.ID {
				t.Fatal("update must keep the deterministic id")
			}

			entries, total, err := svc.List(ctx, archive.ListOptions{Collection: "posts"})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if total != 1 || entries[0].Title != "Transducers, Revisited" {
				t.Fatalf("unexpected list result: total=%d entries=%+v", total, entries)
			}

			if _, err := svc.Archive(ctx, first.ID); err != nil {
				t.Fatalf("archive: %v", err)
			}
			if _, total, err := svc.List(ctx, archive.ListOptions{}); err != nil || total != 0 {
				t.Fatalf("archived entry must be hidden: total=%d err=%v", total, err)
			}

			var notFound *archive.NotFoundError
			if _, err := svc.GetBySlug(ctx, "posts", "missing"); !errors.As(err, &notFound) {
				t.Fatalf("expected NotFoundError, got %v", err)
			}
		})
	}
}
