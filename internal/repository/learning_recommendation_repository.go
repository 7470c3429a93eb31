package repository

import (
	"context"
	"time"

	"techsync/internal/database"
	"techsync/internal/domain/learning"

	"github.com/google/uuid"
)

type StoredLearningRecommendation struct {
	learning.LearningRecommendation
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type LearningRecommendationRepository interface {
	CreateBatch(ctx context.Context, recs []learning.LearningRecommendation) (int64, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]StoredLearningRecommendation, error)
}

type PostgresLearningRecommendationRepository struct {
	db database.DB
}

func NewPostgresLearningRecommendationRepository(db database.DB) *PostgresLearningRecommendationRepository {
	return &PostgresLearningRecommendationRepository{db: db}
}

// CreateBatch inserts recs in one transaction, skipping ones the user already has.
// It returns how many rows were new.
func (r *PostgresLearningRecommendationRepository) CreateBatch(ctx context.Context, recs []learning.LearningRecommendation) (int64, error) {
	if len(recs) == 0 {
		return 0, nil
	}

	var inserted int64
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, rec := range recs {
			n, err := tx.Exec(ctx,
				`INSERT INTO learning_recommendations (id, user_id, type, target_skill, current_level, target_level, difficulty, reason)
				 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
				 ON CONFLICT (user_id, type, target_skill, target_level) DO NOTHING`,
				uuid.New(),
				rec.UserID,
				string(rec.Type),
				rec.TargetSkill,
				rec.CurrentLevel,
				rec.TargetLevel,
				string(rec.Difficulty),
				rec.Reason,
			)
			if err != nil {
				return err
			}
			inserted += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *PostgresLearningRecommendationRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]StoredLearningRecommendation, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, target_skill, current_level, target_level, difficulty, reason, created_at
		 FROM learning_recommendations
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id ASC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StoredLearningRecommendation, 0)
	for rows.Next() {
		var (
			s          StoredLearningRecommendation
			typ, diffc string
		)
		if err := rows.Scan(&s.ID, &s.UserID, &typ, &s.TargetSkill, &s.CurrentLevel, &s.TargetLevel, &diffc, &s.Reason, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Type = learning.Type(typ)
		s.Difficulty = learning.Difficulty(diffc)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
