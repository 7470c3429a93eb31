package repository

import (
	"context"
	"encoding/json"
	"time"

	"techsync/internal/database"
	"techsync/internal/domain/matching"

	"github.com/google/uuid"
)

type ProjectMatchUpsert struct {
	UserID       uuid.UUID
	ProjectID    uuid.UUID
	Score        float64
	MatchFactors matching.MatchFactors
	ScoredAt     time.Time
}

type ProjectMatchRepository interface {
	Upsert(ctx context.Context, m ProjectMatchUpsert) error
}

type PostgresProjectMatchRepository struct {
	db database.DB
}

func NewPostgresProjectMatchRepository(db database.DB) *PostgresProjectMatchRepository {
	return &PostgresProjectMatchRepository{db: db}
}

func (r *PostgresProjectMatchRepository) Upsert(ctx context.Context, m ProjectMatchUpsert) error {
	if m.UserID == uuid.Nil || m.ProjectID == uuid.Nil {
		return nil
	}
	if m.ScoredAt.IsZero() {
		m.ScoredAt = time.Now().UTC()
	}
	factors, err := json.Marshal(m.MatchFactors)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO project_matches (user_id, project_id, score, match_factors, scored_at)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (user_id, project_id) DO UPDATE SET
			score = EXCLUDED.score,
			match_factors = EXCLUDED.match_factors,
			scored_at = EXCLUDED.scored_at`,
		m.UserID,
		m.ProjectID,
		m.Score,
		string(factors),
		m.ScoredAt,
	)
	return err
}
