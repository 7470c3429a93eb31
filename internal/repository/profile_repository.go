package repository

import (
	"context"
	"fmt"

	"techsync/internal/database"
	"techsync/internal/database/postgres"
	"techsync/internal/domain/matching"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	FindUserProfile(ctx context.Context, userID uuid.UUID) (matching.UserProfile, error)
	ListUserIDs(ctx context.Context, limit, offset int) ([]uuid.UUID, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) FindUserProfile(ctx context.Context, userID uuid.UUID) (matching.UserProfile, error) {
	var years float64
	row := r.db.QueryRow(ctx, `SELECT years_experience::float8 FROM users WHERE id = $1`, userID)
	if err := row.Scan(&years); err != nil {
		if postgres.IsNoRows(err) {
			return matching.UserProfile{}, ErrUserNotFound
		}
		return matching.UserProfile{}, err
	}

	topics, err := r.userTopics(ctx, userID)
	if err != nil {
		return matching.UserProfile{}, err
	}
	langs, err := r.userLanguages(ctx, userID)
	if err != nil {
		return matching.UserProfile{}, err
	}

	p, err := matching.NewUserProfile(userID, years, topics, langs)
	if err != nil {
		return matching.UserProfile{}, fmt.Errorf("user %s: %w", userID, err)
	}
	return p, nil
}

func (r *PostgresProfileRepository) userTopics(ctx context.Context, userID uuid.UUID) ([]matching.UserTopic, error) {
	rows, err := r.db.Query(ctx,
		`SELECT t.name, ut.experience_level, ut.interest_level
		 FROM user_topics ut
		 JOIN topics t ON t.id = ut.topic_id
		 WHERE ut.user_id = $1
		 ORDER BY t.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]matching.UserTopic, 0)
	for rows.Next() {
		var t matching.UserTopic
		if err := rows.Scan(&t.Name, &t.ExperienceLevel, &t.InterestLevel); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProfileRepository) userLanguages(ctx context.Context, userID uuid.UUID) ([]matching.UserLanguage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT pl.name, ul.proficiency_level, ul.years_experience::float8
		 FROM user_languages ul
		 JOIN programming_languages pl ON pl.id = ul.language_id
		 WHERE ul.user_id = $1
		 ORDER BY pl.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]matching.UserLanguage, 0)
	for rows.Next() {
		var (
			l           matching.UserLanguage
			proficiency int
		)
		if err := rows.Scan(&l.Name, &proficiency, &l.YearsExperience); err != nil {
			return nil, err
		}
		l.Proficiency = matching.LevelFromNumeric(proficiency)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProfileRepository) ListUserIDs(ctx context.Context, limit, offset int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT id
		 FROM users
		 ORDER BY created_at ASC, id ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
