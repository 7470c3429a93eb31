package matching

type TopicFactors struct {
	Matches []string `json:"matches"`
	Gaps    []string `json:"gaps"`
}

type LanguageFactors struct {
	Matches []string `json:"matches"`
	Gaps    []string `json:"gaps"`
}

type ExperienceFactors struct {
	UserYears        float64 `json:"user_years"`
	RequiredLevel    string  `json:"required_level"`
	RequiredYears    float64 `json:"required_years"`
	MeetsRequirement bool    `json:"meets_requirement"`
	Score            float64 `json:"score"`
}

// MatchFactors explains a score. All three sections are always present.
type MatchFactors struct {
	Topics     TopicFactors      `json:"topics"`
	Languages  LanguageFactors   `json:"languages"`
	Experience ExperienceFactors `json:"experience"`
}

func BuildMatchFactors(user UserProfile, project ProjectProfile, topic TopicScore, lang LanguageScore, difficulty float64) MatchFactors {
	out := MatchFactors{
		Topics: TopicFactors{
			Matches: make([]string, 0, len(topic.Matches)),
			Gaps:    make([]string, 0, len(topic.Missing)),
		},
		Languages: LanguageFactors{
			Matches: make([]string, 0, len(lang.Matches)),
			Gaps:    make([]string, 0, len(lang.Gaps)),
		},
	}
	for _, m := range topic.Matches {
		out.Topics.Matches = append(out.Topics.Matches, m.Name)
	}
	out.Topics.Gaps = append(out.Topics.Gaps, topic.Missing...)
	for _, m := range lang.Matches {
		out.Languages.Matches = append(out.Languages.Matches, m.Name)
	}
	for _, g := range lang.Gaps {
		out.Languages.Gaps = append(out.Languages.Gaps, g.Name)
	}

	reqLvl := clampLevel(project.RequiredExperienceLevel, LevelBeginner, LevelExpert)
	reqYears := RequiredYears(reqLvl)
	out.Experience = ExperienceFactors{
		UserYears:        user.YearsExperience,
		RequiredLevel:    reqLvl.String(),
		RequiredYears:    reqYears,
		MeetsRequirement: user.YearsExperience >= reqYears,
		Score:            difficulty,
	}
	return out
}
