package dto

import (
	"techsync/internal/domain/assessment"
	"techsync/internal/domain/learning"

	"github.com/google/uuid"
)

type SubmitAssessmentRequest struct {
	UserID      uuid.UUID `json:"user_id" validate:"required"`
	ProjectID   uuid.UUID `json:"project_id" validate:"required"`
	ChallengeID uuid.UUID `json:"challenge_id" validate:"required"`
	Code        string    `json:"code" validate:"max=65536"`
}

func (r *SubmitAssessmentRequest) Validate() error {
	return validate.Struct(r)
}

// EvaluateRequest accepts a null code, which grades as empty.
type EvaluateRequest struct {
	Code *string `json:"code" validate:"omitempty,max=65536"`
}

func (r *EvaluateRequest) Validate() error {
	return validate.Struct(r)
}

func (r EvaluateRequest) CodeOrEmpty() string {
	if r.Code == nil {
		return ""
	}
	return *r.Code
}

type LearningSupportResponse struct {
	Triggered       bool                              `json:"triggered"`
	Recommendations []learning.LearningRecommendation `json:"recommendations"`
}

type AssessmentResponse struct {
	AttemptID       uuid.UUID                   `json:"attempt_id"`
	Result          assessment.AssessmentResult `json:"result"`
	FailedAttempts  int                         `json:"failed_attempts"`
	LearningSupport *LearningSupportResponse    `json:"learning_support,omitempty"`
}
