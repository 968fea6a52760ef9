package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/archive"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/pkg/storage"
)

func TestOpenMemoryAndMigrate(t *testing.T) {
	db, err := storage.Open(storage.Config{Driver: storage.DriverMemory})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	ctx := context.Background()
	if err := storage.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// Running it again must be a no-op.
	if err := storage.Migrate(ctx, db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	repo := archive.NewBunEntryRepository(db)
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	entry := &archive.Entry{
		ID:         identity.EntryID("posts", "transducers"),
		Path:       "posts/2024-01-15-transducers.md",
		Collection: "posts",
		Slug:       "transducers",
		Title:      "Transducers",
		Date:       &date,
	}
	if _, err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.GetByID(ctx, entry.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Slug != "transducers" {
		t.Fatalf("unexpected slug %q", got.Slug)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := storage.Open(storage.Config{Driver: "bolt"}); !errors.Is(err, storage.ErrDriverUnknown) {
		t.Fatalf("expected ErrDriverUnknown, got %v", err)
	}
}

func TestOpenRequiresDSN(t *testing.T) {
	for _, driver := range []string{storage.DriverSQLite, storage.DriverPostgres} {
		if _, err := storage.Open(storage.Config{Driver: driver}); !errors.Is(err, storage.ErrDSNRequired) {
			t.Fatalf("driver %s: expected ErrDSNRequired, got %v", driver, err)
		}
	}
}
