package matching

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidLimit = errors.New("invalid limit")

type Recommendation struct {
	ProjectID    uuid.UUID    `json:"project_id"`
	Title        string       `json:"title"`
	Score        float64      `json:"score"`
	MatchFactors MatchFactors `json:"match_factors"`
	Technologies []string     `json:"technologies"`
}

// Recommend scores every candidate, drops those under the recommendation threshold,
// sorts by descending score (stable on input order) and truncates to limit.
// A zero limit means the configured default; a negative limit is rejected.
func (e *Engine) Recommend(user UserProfile, candidates []ProjectProfile, limit int) ([]Recommendation, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	if limit == 0 {
		limit = e.settings.DefaultLimit
	}
	if len(candidates) == 0 {
		return []Recommendation{}, nil
	}

	scored := make([]AggregateScoreResult, len(candidates))
	var g errgroup.Group
	g.SetLimit(e.settings.MaxParallel)
	for i := range candidates {
		g.Go(func() error {
			scored[i] = e.ScoreProject(user, candidates[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Recommendation, 0, len(candidates))
	for i, res := range scored {
		if res.Score < e.settings.RecommendationThreshold {
			continue
		}
		out = append(out, Recommendation{
			ProjectID:    res.ProjectID,
			Title:        res.Title,
			Score:        res.Score,
			MatchFactors: res.MatchFactors,
			Technologies: candidates[i].Technologies(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
