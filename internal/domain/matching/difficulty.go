package matching

const difficultyFloor = 30.0

var requiredYearsByLevel = map[Level]float64{
	LevelBeginner:     0,
	LevelIntermediate: 2,
	LevelAdvanced:     5,
	LevelExpert:       8,
}

// RequiredYears returns the years of experience a project tier expects.
func RequiredYears(level Level) float64 {
	return requiredYearsByLevel[clampLevel(level, LevelBeginner, LevelExpert)]
}

// ScoreDifficulty returns 100 when the user meets the tier's experience threshold.
// Below it the score degrades linearly towards a floor instead of collapsing to zero.
func ScoreDifficulty(userYears float64, required Level) float64 {
	threshold := RequiredYears(required)
	if userYears < 0 {
		userYears = 0
	}
	if threshold <= 0 || userYears >= threshold {
		return 100
	}
	return clampScore(difficultyFloor + (100-difficultyFloor)*(userYears/threshold))
}
