package learning

import (
	"testing"

	"techsync/internal/domain/matching"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdvisor(t *testing.T) *Advisor {
	t.Helper()
	a, err := NewAdvisor(DefaultMaxAttempts)
	require.NoError(t, err)
	return a
}

func TestNewAdvisor_Validation(t *testing.T) {
	_, err := NewAdvisor(0)
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestNeedsLearningSupport_InclusiveThreshold(t *testing.T) {
	a := newAdvisor(t)
	assert.False(t, a.NeedsLearningSupport(0))
	assert.False(t, a.NeedsLearningSupport(7))
	assert.True(t, a.NeedsLearningSupport(8))
	assert.True(t, a.NeedsLearningSupport(9))
}

func TestRecommendLearningMaterials_SkillGaps(t *testing.T) {
	a := newAdvisor(t)
	user, err := matching.NewUserProfile(uuid.New(), 1,
		[]matching.UserTopic{
			{Name: "web development", ExperienceLevel: 1},
			{Name: "databases", ExperienceLevel: 2},
			{Name: "devops", ExperienceLevel: 4},
		},
		[]matching.UserLanguage{
			{Name: "python", Proficiency: matching.LevelBeginner},
			{Name: "go", Proficiency: matching.LevelIntermediate},
			{Name: "javascript", Proficiency: matching.LevelExpert},
		},
	)
	require.NoError(t, err)

	recs := a.RecommendLearningMaterials(user, FailureSummary{AvgScore: 75, FailureCount: 8})
	require.Len(t, recs, 4)

	byType := map[Type][]LearningRecommendation{}
	for _, r := range recs {
		assert.Equal(t, user.ID, r.UserID)
		assert.NotEmpty(t, r.Reason)
		byType[r.Type] = append(byType[r.Type], r)
	}

	langs := byType[TypeLanguage]
	require.Len(t, langs, 2)
	assert.Equal(t, "python", langs[0].TargetSkill)
	assert.Equal(t, "beginner", langs[0].CurrentLevel)
	assert.Equal(t, "intermediate", langs[0].TargetLevel)
	assert.Equal(t, DifficultyBeginner, langs[0].Difficulty)
	assert.Equal(t, "go", langs[1].TargetSkill)
	assert.Equal(t, "advanced", langs[1].TargetLevel)
	assert.Equal(t, DifficultyIntermediate, langs[1].Difficulty)

	topics := byType[TypeTopic]
	require.Len(t, topics, 2)
	assert.Equal(t, DifficultyBeginner, topics[0].Difficulty)
	assert.Equal(t, "2", topics[0].TargetLevel)
	assert.Equal(t, DifficultyIntermediate, topics[1].Difficulty)
}

func TestRecommendLearningMaterials_FailurePatternIsExclusive(t *testing.T) {
	a := newAdvisor(t)
	user, err := matching.NewUserProfile(uuid.New(), 0, nil, nil)
	require.NoError(t, err)

	tests := []struct {
		name string
		sum  FailureSummary
		want []Type
	}{
		{name: "low average", sum: FailureSummary{AvgScore: 25, FailureCount: 9}, want: []Type{TypeFundamentals}},
		{name: "boundary at 40", sum: FailureSummary{AvgScore: 40, FailureCount: 9}, want: []Type{TypePractice}},
		{name: "mid average", sum: FailureSummary{AvgScore: 55, FailureCount: 9}, want: []Type{TypePractice}},
		{name: "at practice cutoff", sum: FailureSummary{AvgScore: 60, FailureCount: 9}, want: []Type{}},
		{name: "no failures", sum: FailureSummary{}, want: []Type{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := a.RecommendLearningMaterials(user, tt.sum)
			require.NotNil(t, recs)
			got := make([]Type, 0, len(recs))
			for _, r := range recs {
				got = append(got, r.Type)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
