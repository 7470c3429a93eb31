package seeder

import (
	"context"
	"fmt"

	"techsync/internal/database"
)

type TaxonomySeeder struct {
	Catalog Catalog
}

func (TaxonomySeeder) Name() string { return "taxonomy" }

func (s TaxonomySeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, Columns{
		"topics":                {"id", "name"},
		"programming_languages": {"id", "name"},
	}); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, name := range s.Catalog.Topics {
		if _, err := tx.Exec(ctx, `INSERT INTO topics (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return err
		}
	}
	for _, name := range s.Catalog.Languages {
		if _, err := tx.Exec(ctx, `INSERT INTO programming_languages (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
