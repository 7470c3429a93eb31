package usecase

import (
	"context"
	"errors"
	"log"

	"techsync/internal/domain/learning"
	"techsync/internal/repository"

	"github.com/google/uuid"
)

type LearningSupportStatus struct {
	UserID          uuid.UUID                                 `json:"user_id"`
	FailedAttempts  int                                       `json:"failed_attempts"`
	AvgFailedScore  float64                                   `json:"avg_failed_score"`
	MaxAttempts     int                                       `json:"max_attempts"`
	NeedsSupport    bool                                      `json:"needs_support"`
	Recommendations []repository.StoredLearningRecommendation `json:"recommendations"`
}

type LearningUsecase interface {
	GetLearningSupport(ctx context.Context, userID uuid.UUID) (LearningSupportStatus, error)
}

type Learning struct {
	advisor  *learning.Advisor
	profiles repository.ProfileRepository
	attempts repository.ChallengeAttemptRepository
	recs     repository.LearningRecommendationRepository
	logger   *log.Logger
}

func NewLearningUsecase(advisor *learning.Advisor, profiles repository.ProfileRepository, attempts repository.ChallengeAttemptRepository, recs repository.LearningRecommendationRepository, logger *log.Logger) *Learning {
	return &Learning{advisor: advisor, profiles: profiles, attempts: attempts, recs: recs, logger: logger}
}

func (u *Learning) GetLearningSupport(ctx context.Context, userID uuid.UUID) (LearningSupportStatus, error) {
	if userID == uuid.Nil {
		return LearningSupportStatus{}, ErrInvalidInput
	}
	if _, err := u.profiles.FindUserProfile(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LearningSupportStatus{}, ErrUserNotFound
		}
		return LearningSupportStatus{}, ErrInternal
	}

	summary, err := u.attempts.FailureSummary(ctx, userID)
	if err != nil {
		return LearningSupportStatus{}, ErrInternal
	}
	stored, err := u.recs.ListByUserID(ctx, userID, 0)
	if err != nil {
		return LearningSupportStatus{}, ErrInternal
	}

	return LearningSupportStatus{
		UserID:          userID,
		FailedAttempts:  summary.FailureCount,
		AvgFailedScore:  summary.AvgScore,
		MaxAttempts:     u.advisor.MaxAttempts(),
		NeedsSupport:    u.advisor.NeedsLearningSupport(summary.FailureCount),
		Recommendations: stored,
	}, nil
}
