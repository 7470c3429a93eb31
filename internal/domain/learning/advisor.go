package learning

import (
	"errors"
	"fmt"
	"strconv"

	"techsync/internal/domain/matching"

	"github.com/google/uuid"
)

var ErrInvalidMaxAttempts = errors.New("invalid max failed attempts")

const (
	DefaultMaxAttempts = 8

	// Languages below this tier get a language recommendation.
	competentLevel = matching.LevelAdvanced
	// Topics with an experience level below this get a topic recommendation.
	topicExperienceCutoff = 3

	fundamentalsCutoff = 40.0
	practiceCutoff     = 60.0
)

type Type string

const (
	TypeLanguage     Type = "language"
	TypeTopic        Type = "topic"
	TypeFundamentals Type = "fundamentals"
	TypePractice     Type = "practice"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

type LearningRecommendation struct {
	UserID       uuid.UUID  `json:"user_id"`
	Type         Type       `json:"type"`
	TargetSkill  string     `json:"target_skill"`
	CurrentLevel string     `json:"current_level"`
	TargetLevel  string     `json:"target_level"`
	Difficulty   Difficulty `json:"difficulty"`
	Reason       string     `json:"reason"`
}

// FailureSummary aggregates a user's failed challenge attempts.
type FailureSummary struct {
	AvgScore     float64 `json:"avg_score"`
	FailureCount int     `json:"failure_count"`
}

type Advisor struct {
	maxAttempts int
}

func NewAdvisor(maxAttempts int) (*Advisor, error) {
	if maxAttempts < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxAttempts, maxAttempts)
	}
	return &Advisor{maxAttempts: maxAttempts}, nil
}

func (a *Advisor) MaxAttempts() int {
	return a.maxAttempts
}

// NeedsLearningSupport reports whether failedAttempts has reached the threshold (inclusive).
func (a *Advisor) NeedsLearningSupport(failedAttempts int) bool {
	return failedAttempts >= a.maxAttempts
}

// RecommendLearningMaterials derives recommendations from the user's skill gaps
// and failure pattern. The result is never nil.
func (a *Advisor) RecommendLearningMaterials(user matching.UserProfile, summary FailureSummary) []LearningRecommendation {
	out := make([]LearningRecommendation, 0, len(user.Languages)+len(user.Topics)+1)

	for _, l := range user.Languages {
		if l.Proficiency >= competentLevel {
			continue
		}
		diff := DifficultyIntermediate
		if l.Proficiency <= matching.LevelBeginner {
			diff = DifficultyBeginner
		}
		out = append(out, LearningRecommendation{
			UserID:       user.ID,
			Type:         TypeLanguage,
			TargetSkill:  l.Name,
			CurrentLevel: l.Proficiency.String(),
			TargetLevel:  l.Proficiency.Next().String(),
			Difficulty:   diff,
			Reason:       fmt.Sprintf("raise %s proficiency from %s to %s", l.Name, l.Proficiency, l.Proficiency.Next()),
		})
	}

	for _, t := range user.Topics {
		if t.ExperienceLevel >= topicExperienceCutoff {
			continue
		}
		diff := DifficultyIntermediate
		if t.ExperienceLevel <= 1 {
			diff = DifficultyBeginner
		}
		out = append(out, LearningRecommendation{
			UserID:       user.ID,
			Type:         TypeTopic,
			TargetSkill:  t.Name,
			CurrentLevel: strconv.Itoa(t.ExperienceLevel),
			TargetLevel:  strconv.Itoa(t.ExperienceLevel + 1),
			Difficulty:   diff,
			Reason:       fmt.Sprintf("build experience in %s", t.Name),
		})
	}

	if rec, ok := failurePattern(user.ID, summary); ok {
		out = append(out, rec)
	}
	return out
}

// failurePattern yields at most one of fundamentals or practice.
func failurePattern(userID uuid.UUID, s FailureSummary) (LearningRecommendation, bool) {
	if s.FailureCount <= 0 {
		return LearningRecommendation{}, false
	}
	avg := strconv.FormatFloat(s.AvgScore, 'f', 1, 64)
	switch {
	case s.AvgScore < fundamentalsCutoff:
		return LearningRecommendation{
			UserID:       userID,
			Type:         TypeFundamentals,
			TargetSkill:  "programming fundamentals",
			CurrentLevel: matching.LevelBeginner.String(),
			TargetLevel:  matching.LevelIntermediate.String(),
			Difficulty:   DifficultyBeginner,
			Reason:       "average failed-attempt score " + avg + " is below " + strconv.Itoa(int(fundamentalsCutoff)),
		}, true
	case s.AvgScore < practiceCutoff:
		return LearningRecommendation{
			UserID:       userID,
			Type:         TypePractice,
			TargetSkill:  "coding practice",
			CurrentLevel: matching.LevelIntermediate.String(),
			TargetLevel:  matching.LevelAdvanced.String(),
			Difficulty:   DifficultyIntermediate,
			Reason:       "average failed-attempt score " + avg + " is close to passing",
		}, true
	default:
		return LearningRecommendation{}, false
	}
}
