package repository

import (
	"context"
	"time"

	"techsync/internal/database"
	"techsync/internal/domain/learning"

	"github.com/google/uuid"
)

const (
	AttemptStatusPassed = "passed"
	AttemptStatusFailed = "failed"
)

type ChallengeAttempt struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ProjectID     uuid.UUID
	ChallengeID   uuid.UUID
	SubmittedCode string
	Score         int
	Status        string
	Feedback      string
	SubmittedAt   time.Time
}

type ChallengeAttemptRepository interface {
	Create(ctx context.Context, a ChallengeAttempt) (uuid.UUID, error)
	FailureSummary(ctx context.Context, userID uuid.UUID) (learning.FailureSummary, error)
}

type PostgresChallengeAttemptRepository struct {
	db database.DB
}

func NewPostgresChallengeAttemptRepository(db database.DB) *PostgresChallengeAttemptRepository {
	return &PostgresChallengeAttemptRepository{db: db}
}

func (r *PostgresChallengeAttemptRepository) Create(ctx context.Context, a ChallengeAttempt) (uuid.UUID, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.SubmittedAt.IsZero() {
		a.SubmittedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO challenge_attempts (id, user_id, project_id, challenge_id, submitted_code, score, status, feedback, submitted_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		a.ID,
		a.UserID,
		a.ProjectID,
		a.ChallengeID,
		a.SubmittedCode,
		a.Score,
		a.Status,
		a.Feedback,
		a.SubmittedAt,
	)
	if err != nil {
		return uuid.Nil, err
	}
	return a.ID, nil
}

// FailureSummary aggregates the user's failed attempts. A user with none gets a zero summary.
func (r *PostgresChallengeAttemptRepository) FailureSummary(ctx context.Context, userID uuid.UUID) (learning.FailureSummary, error) {
	var s learning.FailureSummary
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*)::int, COALESCE(AVG(score), 0)::float8
		 FROM challenge_attempts
		 WHERE user_id = $1 AND status = $2`,
		userID, AttemptStatusFailed,
	)
	if err := row.Scan(&s.FailureCount, &s.AvgScore); err != nil {
		return learning.FailureSummary{}, err
	}
	return s, nil
}
