package matching

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidWeights = errors.New("invalid scoring weights")

const weightTolerance = 1e-9

type Weights struct {
	TopicCoverage       float64 `json:"topic_coverage"`
	LanguageProficiency float64 `json:"language_proficiency"`
	DifficultyAlignment float64 `json:"difficulty_alignment"`
}

func DefaultWeights() Weights {
	return Weights{
		TopicCoverage:       0.4,
		LanguageProficiency: 0.4,
		DifficultyAlignment: 0.2,
	}
}

func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"topic_coverage":       w.TopicCoverage,
		"language_proficiency": w.LanguageProficiency,
		"difficulty_alignment": w.DifficultyAlignment,
	} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: %s=%v out of [0,1]", ErrInvalidWeights, name, v)
		}
	}
	sum := w.TopicCoverage + w.LanguageProficiency + w.DifficultyAlignment
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %v, want 1", ErrInvalidWeights, sum)
	}
	return nil
}

// Aggregate combines the three component scores into one weighted fitness score.
func Aggregate(w Weights, topic, language, difficulty float64) float64 {
	total := w.TopicCoverage*topic + w.LanguageProficiency*language + w.DifficultyAlignment*difficulty
	return roundScore(clampScore(total))
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
