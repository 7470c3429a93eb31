package matching

const (
	primaryTopicWeight   = 85.0
	secondaryTopicWeight = 15.0
	// A matched secondary topic scores in [secondaryFloor, secondaryFloor+secondaryTopicWeight]
	// when no primary topic carries the project.
	secondaryFloor = 30.0
	neutralScore   = 50.0
)

type TopicMatch struct {
	Name            string `json:"name"`
	IsPrimary       bool   `json:"is_primary"`
	ExperienceLevel int    `json:"experience_level"`
	InterestLevel   int    `json:"interest_level"`
}

type TopicScore struct {
	Score    float64      `json:"score"`
	Matches  []TopicMatch `json:"matches"`
	Missing  []string     `json:"missing"`
	Coverage float64      `json:"coverage"`
}

// ScoreTopics scores how well the user's topics cover the project's topics.
// A matched primary topic dominates; secondary coverage alone stays in a modest band.
func ScoreTopics(userTopics []UserTopic, projectTopics []ProjectTopic) TopicScore {
	out := TopicScore{
		Matches: make([]TopicMatch, 0, len(projectTopics)),
		Missing: make([]string, 0),
	}
	if len(projectTopics) == 0 {
		out.Score = neutralScore
		return out
	}

	userByName := make(map[string]UserTopic, len(userTopics))
	for _, ut := range userTopics {
		name := CanonicalName(ut.Name)
		if name == "" {
			continue
		}
		userByName[name] = ut
	}

	var primaryTotal, primaryMatched, secondaryTotal, secondaryMatched int
	seen := make(map[string]struct{}, len(projectTopics))
	for _, pt := range projectTopics {
		name := CanonicalName(pt.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		if pt.IsPrimary {
			primaryTotal++
		} else {
			secondaryTotal++
		}

		ut, ok := userByName[name]
		if !ok {
			out.Missing = append(out.Missing, name)
			continue
		}
		if pt.IsPrimary {
			primaryMatched++
		} else {
			secondaryMatched++
		}
		out.Matches = append(out.Matches, TopicMatch{
			Name:            name,
			IsPrimary:       pt.IsPrimary,
			ExperienceLevel: ut.ExperienceLevel,
			InterestLevel:   ut.InterestLevel,
		})
	}

	total := primaryTotal + secondaryTotal
	if total == 0 {
		out.Score = neutralScore
		return out
	}
	out.Coverage = float64(primaryMatched+secondaryMatched) / float64(total)

	primaryFrac := ratio(primaryMatched, primaryTotal)
	secondaryFrac := ratio(secondaryMatched, secondaryTotal)

	var score float64
	if secondaryTotal == 0 {
		score = 100 * primaryFrac
	} else {
		score = primaryTopicWeight*primaryFrac + secondaryTopicWeight*secondaryFrac
		if secondaryMatched > 0 {
			score = max(score, secondaryFloor+secondaryTopicWeight*secondaryFrac)
		}
	}
	out.Score = clampScore(score)
	return out
}

func ratio(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / float64(d)
}
