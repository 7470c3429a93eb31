package matching

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidDiversityWeight = errors.New("invalid diversity weight")

// RerankForDiversity reorders a relevance-sorted list with maximal marginal relevance:
// each step picks the candidate maximising
// (1-w)*relevance - w*overlap, where overlap is the share of the candidate's
// technology tags already covered by the selected items. w=0 keeps the input order.
func RerankForDiversity(recs []Recommendation, diversityWeight float64) ([]Recommendation, error) {
	if math.IsNaN(diversityWeight) || diversityWeight < 0 || diversityWeight > 1 {
		return nil, fmt.Errorf("%w: %v out of [0,1]", ErrInvalidDiversityWeight, diversityWeight)
	}
	out := make([]Recommendation, 0, len(recs))
	if len(recs) == 0 {
		return out, nil
	}
	if diversityWeight == 0 {
		return append(out, recs...), nil
	}

	remaining := make([]int, len(recs))
	for i := range recs {
		remaining[i] = i
	}
	selectedTags := make(map[string]struct{})

	for len(remaining) > 0 {
		bestPos := 0
		bestVal := math.Inf(-1)
		for pos, idx := range remaining {
			rel := recs[idx].Score / 100
			val := (1-diversityWeight)*rel - diversityWeight*overlapPenalty(recs[idx].Technologies, selectedTags)
			if val > bestVal {
				bestVal = val
				bestPos = pos
			}
		}

		picked := recs[remaining[bestPos]]
		out = append(out, picked)
		for _, tag := range picked.Technologies {
			selectedTags[CanonicalName(tag)] = struct{}{}
		}
		remaining = append(remaining[:bestPos], remaining[bestPos+1:]...)
	}
	return out, nil
}

func overlapPenalty(tags []string, selected map[string]struct{}) float64 {
	if len(tags) == 0 || len(selected) == 0 {
		return 0
	}
	var shared int
	for _, tag := range tags {
		if _, ok := selected[CanonicalName(tag)]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(tags))
}
