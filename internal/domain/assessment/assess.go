package assessment

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrInvalidPassingScore = errors.New("invalid minimum passing score")

const DefaultMinPassingScore = 70

type Submission struct {
	UserID      uuid.UUID
	ProjectID   uuid.UUID
	ChallengeID uuid.UUID
	Code        string
}

type AssessmentResult struct {
	Success        bool     `json:"success"`
	Score          int      `json:"score"`
	Passed         bool     `json:"passed"`
	Feedback       string   `json:"feedback"`
	CanJoinProject bool     `json:"can_join_project"`
	Tier           Tier     `json:"tier"`
	Signals        []Signal `json:"signals"`
}

// Assessor grades submissions against a fixed passing score.
type Assessor struct {
	minPassing int
}

func NewAssessor(minPassingScore int) (*Assessor, error) {
	if minPassingScore < 0 || minPassingScore > MaxScore {
		return nil, fmt.Errorf("%w: %d out of [0,%d]", ErrInvalidPassingScore, minPassingScore, MaxScore)
	}
	return &Assessor{minPassing: minPassingScore}, nil
}

func (a *Assessor) MinPassingScore() int {
	return a.minPassing
}

// Assess grades one submission. A low score is a normal outcome, not an error.
func (a *Assessor) Assess(sub Submission) AssessmentResult {
	score, signals := Evaluate(sub.Code)
	passed := score >= a.minPassing
	// Join eligibility is currently the same as passing.
	canJoin := passed
	return AssessmentResult{
		Success:        true,
		Score:          score,
		Passed:         passed,
		Feedback:       GenerateFeedback(score),
		CanJoinProject: canJoin,
		Tier:           TierFromScore(score),
		Signals:        signals,
	}
}
