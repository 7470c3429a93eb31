package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"techsync/internal/domain/assessment"
	"techsync/internal/domain/learning"
	"techsync/internal/domain/matching"
	"techsync/internal/metrics"
	"techsync/internal/repository"

	"github.com/google/uuid"
)

const submissionLockTTL = 30 * time.Second

type SubmitParams struct {
	UserID      uuid.UUID
	ProjectID   uuid.UUID
	ChallengeID uuid.UUID
	Code        string
}

type LearningSupport struct {
	Triggered       bool                              `json:"triggered"`
	Recommendations []learning.LearningRecommendation `json:"recommendations"`
	Stored          int64                             `json:"stored"`
}

type SubmissionResult struct {
	AttemptID       uuid.UUID                   `json:"attempt_id"`
	Assessment      assessment.AssessmentResult `json:"assessment"`
	FailedAttempts  int                         `json:"failed_attempts"`
	LearningSupport *LearningSupport            `json:"learning_support,omitempty"`
}

type AssessmentUsecase interface {
	Submit(ctx context.Context, params SubmitParams) (SubmissionResult, error)
	Evaluate(code string) assessment.AssessmentResult
}

type Assessment struct {
	assessor *assessment.Assessor
	advisor  *learning.Advisor
	profiles repository.ProfileRepository
	projects repository.ProjectRepository
	attempts repository.ChallengeAttemptRepository
	learning repository.LearningRecommendationRepository
	cache    Cache
	events   EventPublisher
	logger   *log.Logger
}

type AssessmentDeps struct {
	Assessor *assessment.Assessor
	Advisor  *learning.Advisor
	Profiles repository.ProfileRepository
	Projects repository.ProjectRepository
	Attempts repository.ChallengeAttemptRepository
	Learning repository.LearningRecommendationRepository
	Cache    Cache
	Events   EventPublisher
	Logger   *log.Logger
}

func NewAssessmentUsecase(d AssessmentDeps) *Assessment {
	return &Assessment{
		assessor: d.Assessor,
		advisor:  d.Advisor,
		profiles: d.Profiles,
		projects: d.Projects,
		attempts: d.Attempts,
		learning: d.Learning,
		cache:    d.Cache,
		events:   d.Events,
		logger:   d.Logger,
	}
}

// Evaluate grades code without recording anything.
func (u *Assessment) Evaluate(code string) assessment.AssessmentResult {
	res := u.assessor.Assess(assessment.Submission{Code: code})
	metrics.ObserveAssessment(res.Score, res.Passed)
	return res
}

// Submit grades a challenge submission, records the attempt and, once the user has
// failed often enough, issues learning recommendations.
func (u *Assessment) Submit(ctx context.Context, params SubmitParams) (SubmissionResult, error) {
	if params.UserID == uuid.Nil || params.ProjectID == uuid.Nil || params.ChallengeID == uuid.Nil {
		return SubmissionResult{}, ErrInvalidInput
	}

	if u.cache != nil && u.cache.Enabled() {
		lockKey := AssessmentLockKey(params.UserID, params.ChallengeID)
		token, ok, err := u.cache.AcquireLock(ctx, lockKey, submissionLockTTL)
		switch {
		case err != nil:
			u.logf("[Assess] submission lock unavailable user_id=%s err=%v", params.UserID, err)
		case !ok:
			return SubmissionResult{}, ErrAssessmentInProgress
		default:
			defer func() {
				_ = u.cache.ReleaseLock(context.WithoutCancel(ctx), lockKey, token)
			}()
		}
	}

	profile, err := u.profiles.FindUserProfile(ctx, params.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return SubmissionResult{}, ErrUserNotFound
		}
		u.logf("[Assess] profile load failed user_id=%s err=%v", params.UserID, err)
		return SubmissionResult{}, ErrInternal
	}
	if _, err := u.projects.FindByID(ctx, params.ProjectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return SubmissionResult{}, ErrProjectNotFound
		}
		u.logf("[Assess] project load failed project_id=%s err=%v", params.ProjectID, err)
		return SubmissionResult{}, ErrInternal
	}

	res := u.assessor.Assess(assessment.Submission{
		UserID:      params.UserID,
		ProjectID:   params.ProjectID,
		ChallengeID: params.ChallengeID,
		Code:        params.Code,
	})
	metrics.ObserveAssessment(res.Score, res.Passed)

	status := repository.AttemptStatusFailed
	if res.Passed {
		status = repository.AttemptStatusPassed
	}
	attemptID, err := u.attempts.Create(ctx, repository.ChallengeAttempt{
		UserID:        params.UserID,
		ProjectID:     params.ProjectID,
		ChallengeID:   params.ChallengeID,
		SubmittedCode: params.Code,
		Score:         res.Score,
		Status:        status,
		Feedback:      res.Feedback,
	})
	if err != nil {
		u.logf("[Assess] attempt insert failed user_id=%s err=%v", params.UserID, err)
		return SubmissionResult{}, ErrInternal
	}

	out := SubmissionResult{AttemptID: attemptID, Assessment: res}
	u.logf("[Assess] user_id=%s challenge_id=%s score=%d passed=%t", params.UserID, params.ChallengeID, res.Score, res.Passed)

	if !res.Passed {
		summary, err := u.attempts.FailureSummary(ctx, params.UserID)
		if err != nil {
			u.logf("[Assess] failure summary failed user_id=%s err=%v", params.UserID, err)
			return SubmissionResult{}, ErrInternal
		}
		out.FailedAttempts = summary.FailureCount

		if u.advisor.NeedsLearningSupport(summary.FailureCount) {
			support, err := u.issueLearningSupport(ctx, profile, summary)
			if err != nil {
				return SubmissionResult{}, err
			}
			out.LearningSupport = support
		}
	}

	u.publish(params.UserID, EventAssessmentCompleted, out)
	return out, nil
}

// issueLearningSupport derives, stores and announces learning recommendations.
func (u *Assessment) issueLearningSupport(ctx context.Context, profile matching.UserProfile, summary learning.FailureSummary) (*LearningSupport, error) {
	userID := profile.ID
	recs := u.advisor.RecommendLearningMaterials(profile, summary)
	stored, err := u.learning.CreateBatch(ctx, recs)
	if err != nil {
		u.logf("[Learning] store failed user_id=%s err=%v", userID, err)
		return nil, ErrInternal
	}
	metrics.LearningSupportTriggered.Inc()
	u.logf("[Learning] support issued user_id=%s failed_attempts=%d avg_score=%.1f recommendations=%d stored=%d",
		userID, summary.FailureCount, summary.AvgScore, len(recs), stored)

	support := &LearningSupport{Triggered: true, Recommendations: recs, Stored: stored}
	u.publish(userID, EventLearningSupportIssued, support)
	return support, nil
}

func (u *Assessment) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

func (u *Assessment) publish(userID uuid.UUID, event string, payload any) {
	if u.events != nil {
		u.events.Publish(userID, event, payload)
	}
}
