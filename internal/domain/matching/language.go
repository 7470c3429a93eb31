package matching

const (
	primaryLanguageWeight   = 2.0
	secondaryLanguageWeight = 1.0
	shortfallCredit         = 0.5
)

type LanguageMatch struct {
	Name          string `json:"name"`
	IsPrimary     bool   `json:"is_primary"`
	UserLevel     Level  `json:"user_level"`
	RequiredLevel Level  `json:"required_level"`
}

type LanguageGap struct {
	Name          string `json:"name"`
	IsPrimary     bool   `json:"is_primary"`
	UserLevel     Level  `json:"user_level"`
	RequiredLevel Level  `json:"required_level"`
	Absent        bool   `json:"absent"`
}

type LanguageScore struct {
	Score    float64         `json:"score"`
	Matches  []LanguageMatch `json:"matches"`
	Gaps     []LanguageGap   `json:"gaps"`
	Coverage float64         `json:"coverage"`
}

// ScoreLanguages compares user proficiencies against the project's required languages.
// A requirement that is met earns full credit, a shortfall earns partial credit scaled by
// how close the user is, and an absent language earns nothing.
func ScoreLanguages(userLanguages []UserLanguage, reqs []ProjectLanguage) LanguageScore {
	out := LanguageScore{
		Matches: make([]LanguageMatch, 0, len(reqs)),
		Gaps:    make([]LanguageGap, 0),
	}
	if len(reqs) == 0 {
		out.Score = neutralScore
		return out
	}

	userByName := make(map[string]UserLanguage, len(userLanguages))
	for _, ul := range userLanguages {
		name := CanonicalName(ul.Name)
		if name == "" {
			continue
		}
		userByName[name] = ul
	}

	var weightTotal, creditTotal float64
	var required, possessed int
	seen := make(map[string]struct{}, len(reqs))
	for _, r := range reqs {
		name := CanonicalName(r.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		required++

		weight := secondaryLanguageWeight
		if r.IsPrimary {
			weight = primaryLanguageWeight
		}
		weightTotal += weight

		reqLvl := clampLevel(r.RequiredLevel, LevelBeginner, LevelExpert)
		ul, ok := userByName[name]
		usrLvl := LevelNone
		if ok {
			usrLvl = clampLevel(ul.Proficiency, LevelNone, LevelExpert)
		}
		if usrLvl > LevelNone {
			possessed++
		}

		switch {
		case usrLvl == LevelNone:
			out.Gaps = append(out.Gaps, LanguageGap{Name: name, IsPrimary: r.IsPrimary, RequiredLevel: reqLvl, Absent: true})
		case usrLvl >= reqLvl:
			creditTotal += weight
			out.Matches = append(out.Matches, LanguageMatch{Name: name, IsPrimary: r.IsPrimary, UserLevel: usrLvl, RequiredLevel: reqLvl})
		default:
			creditTotal += weight * shortfallCredit * (float64(usrLvl) / float64(reqLvl))
			out.Gaps = append(out.Gaps, LanguageGap{Name: name, IsPrimary: r.IsPrimary, UserLevel: usrLvl, RequiredLevel: reqLvl})
		}
	}

	if required == 0 || weightTotal == 0 {
		out.Score = neutralScore
		return out
	}
	out.Coverage = float64(possessed) / float64(required)
	out.Score = clampScore(100 * creditTotal / weightTotal)
	return out
}

func clampLevel(v, minV, maxV Level) Level {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
