package seeder

import (
	"context"
	"fmt"

	"techsync/internal/database"
	"techsync/internal/database/postgres"
	"techsync/internal/domain/matching"

	"github.com/google/uuid"
)

type ProjectsSeeder struct {
	Catalog Catalog
}

func (ProjectsSeeder) Name() string { return "projects" }

func (s ProjectsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, Columns{
		"projects":          {"id", "title", "description", "required_experience_level", "status"},
		"project_topics":    {"project_id", "topic_id", "is_primary"},
		"project_languages": {"project_id", "language_id", "required_level", "is_primary"},
	}); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, p := range s.Catalog.Projects {
			id, err := upsertProject(ctx, tx, p)
			if err != nil {
				return fmt.Errorf("project %q: %w", p.Title, err)
			}
			for _, t := range p.Topics {
				_, err := tx.Exec(
					ctx,
					`INSERT INTO project_topics (project_id, topic_id, is_primary)
SELECT $1, id, $3 FROM topics WHERE name = $2
ON CONFLICT (project_id, topic_id) DO UPDATE SET is_primary = EXCLUDED.is_primary`,
					id,
					t.Name,
					t.Primary,
				)
				if err != nil {
					return err
				}
			}
			for _, l := range p.Languages {
				lvl, _ := matching.ParseLevel(l.Level)
				_, err := tx.Exec(
					ctx,
					`INSERT INTO project_languages (project_id, language_id, required_level, is_primary)
SELECT $1, id, $3, $4 FROM programming_languages WHERE name = $2
ON CONFLICT (project_id, language_id) DO UPDATE SET required_level = EXCLUDED.required_level, is_primary = EXCLUDED.is_primary`,
					id,
					l.Name,
					lvl.String(),
					l.Primary,
				)
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func upsertProject(ctx context.Context, q database.Querier, p CatalogProject) (uuid.UUID, error) {
	lvl, _ := matching.ParseLevel(p.RequiredLevel)

	var id uuid.UUID
	err := q.QueryRow(ctx, `SELECT id FROM projects WHERE title = $1`, p.Title).Scan(&id)
	if err == nil {
		_, err = q.Exec(
			ctx,
			`UPDATE projects SET description = $2, required_experience_level = $3, updated_at = now() WHERE id = $1`,
			id,
			p.Description,
			lvl.String(),
		)
		return id, err
	}
	if !postgres.IsNoRows(err) {
		return uuid.Nil, err
	}

	err = q.QueryRow(
		ctx,
		`INSERT INTO projects (title, description, required_experience_level, status) VALUES ($1, $2, $3, 'recruiting') RETURNING id`,
		p.Title,
		p.Description,
		lvl.String(),
	).Scan(&id)
	return id, err
}
