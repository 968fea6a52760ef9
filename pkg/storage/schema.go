package storage

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-blog/internal/archive"
)

// Migrate creates the archive tables when they do not exist yet. It is
// idempotent and safe to run on every start.
func Migrate(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*archive.Entry)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table for %T: %w", model, err)
		}
	}
	return nil
}
