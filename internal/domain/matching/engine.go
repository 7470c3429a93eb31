package matching

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/google/uuid"
)

var ErrInvalidThreshold = errors.New("invalid recommendation threshold")

const (
	DefaultRecommendationThreshold = 55.0
	DefaultRecommendationLimit     = 10
)

// Settings is fixed at startup; the engine copies it and never mutates it.
type Settings struct {
	Weights                 Weights
	RecommendationThreshold float64
	DefaultLimit            int
	MaxParallel             int
}

func DefaultSettings() Settings {
	return Settings{
		Weights:                 DefaultWeights(),
		RecommendationThreshold: DefaultRecommendationThreshold,
		DefaultLimit:            DefaultRecommendationLimit,
	}
}

func (s Settings) Validate() error {
	if err := s.Weights.Validate(); err != nil {
		return err
	}
	t := s.RecommendationThreshold
	if math.IsNaN(t) || t < 0 || t > 100 {
		return fmt.Errorf("%w: %v out of [0,100]", ErrInvalidThreshold, t)
	}
	if s.DefaultLimit < 0 {
		return fmt.Errorf("%w: default limit %d", ErrInvalidLimit, s.DefaultLimit)
	}
	return nil
}

type Engine struct {
	settings Settings
}

func NewEngine(s Settings) (*Engine, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.DefaultLimit == 0 {
		s.DefaultLimit = DefaultRecommendationLimit
	}
	if s.MaxParallel <= 0 {
		s.MaxParallel = runtime.GOMAXPROCS(0)
	}
	return &Engine{settings: s}, nil
}

func (e *Engine) Settings() Settings {
	return e.settings
}

type Breakdown struct {
	Topic      TopicScore    `json:"topic"`
	Language   LanguageScore `json:"language"`
	Difficulty float64       `json:"difficulty"`
}

type AggregateScoreResult struct {
	ProjectID    uuid.UUID    `json:"project_id"`
	Title        string       `json:"title"`
	Score        float64      `json:"score"`
	Breakdown    Breakdown    `json:"breakdown"`
	MatchFactors MatchFactors `json:"match_factors"`
}

// ScoreProject evaluates one (user, project) pair. It is pure and safe for concurrent use.
func (e *Engine) ScoreProject(user UserProfile, project ProjectProfile) AggregateScoreResult {
	topic := ScoreTopics(user.Topics, project.Topics)
	lang := ScoreLanguages(user.Languages, project.Languages)
	diff := ScoreDifficulty(user.YearsExperience, project.RequiredExperienceLevel)

	return AggregateScoreResult{
		ProjectID: project.ID,
		Title:     project.Title,
		Score:     Aggregate(e.settings.Weights, topic.Score, lang.Score, diff),
		Breakdown: Breakdown{
			Topic:      topic,
			Language:   lang,
			Difficulty: diff,
		},
		MatchFactors: BuildMatchFactors(user, project, topic, lang, diff),
	}
}
