package assessment

const (
	excellentCutoff = 90
	goodCutoff      = 75
	basicCutoff     = 60
)

type Tier string

const (
	TierExcellent        Tier = "excellent"
	TierGood             Tier = "good"
	TierBasic            Tier = "basic"
	TierNeedsImprovement Tier = "needs_improvement"
)

func TierFromScore(score int) Tier {
	switch {
	case score >= excellentCutoff:
		return TierExcellent
	case score >= goodCutoff:
		return TierGood
	case score >= basicCutoff:
		return TierBasic
	default:
		return TierNeedsImprovement
	}
}

var feedbackByTier = map[Tier]string{
	TierExcellent:        "Excellent work! Your solution is well structured and covers every part of the challenge.",
	TierGood:             "Good job. The solution is solid; tightening its structure and control flow would make it stronger.",
	TierBasic:            "You have the basics in place. Keep practicing functions, branching and loops to build on them.",
	TierNeedsImprovement: "This submission needs improvement. Review the fundamentals and try the challenge again.",
}

// GenerateFeedback never returns an empty message, including for out-of-range scores.
func GenerateFeedback(score int) string {
	return feedbackByTier[TierFromScore(score)]
}
