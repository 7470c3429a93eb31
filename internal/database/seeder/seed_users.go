package seeder

import (
	"context"
	"fmt"

	"techsync/internal/database"

	"github.com/google/uuid"
)

// UsersSeeder loads demo users so recommendations work on a fresh database.
type UsersSeeder struct {
	Catalog Catalog
}

func (UsersSeeder) Name() string { return "demo_users" }

func (s UsersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, Columns{
		"users":          {"id", "username", "years_experience"},
		"user_topics":    {"user_id", "topic_id", "experience_level"},
		"user_languages": {"user_id", "language_id", "proficiency_level"},
	}); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, u := range s.Catalog.Users {
			var id uuid.UUID
			err := tx.QueryRow(
				ctx,
				`INSERT INTO users (username, years_experience) VALUES ($1, $2)
ON CONFLICT (username) DO UPDATE SET years_experience = EXCLUDED.years_experience, updated_at = now()
RETURNING id`,
				u.Username,
				u.YearsExperience,
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("user %q: %w", u.Username, err)
			}

			for _, t := range u.Topics {
				_, err := tx.Exec(
					ctx,
					`INSERT INTO user_topics (user_id, topic_id, experience_level, interest_level)
SELECT $1, id, $3, $4 FROM topics WHERE name = $2
ON CONFLICT (user_id, topic_id) DO UPDATE SET experience_level = EXCLUDED.experience_level, interest_level = EXCLUDED.interest_level`,
					id,
					t.Name,
					t.Experience,
					t.Interest,
				)
				if err != nil {
					return err
				}
			}
			for _, l := range u.Languages {
				_, err := tx.Exec(
					ctx,
					`INSERT INTO user_languages (user_id, language_id, proficiency_level, years_experience)
SELECT $1, id, $3, $4 FROM programming_languages WHERE name = $2
ON CONFLICT (user_id, language_id) DO UPDATE SET proficiency_level = EXCLUDED.proficiency_level, years_experience = EXCLUDED.years_experience`,
					id,
					l.Name,
					l.Proficiency,
					l.Years,
				)
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}
