package matching

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(title string, score float64, tags ...string) Recommendation {
	return Recommendation{ProjectID: uuid.New(), Title: title, Score: score, Technologies: tags}
}

func titles(recs []Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Title)
	}
	return out
}

func TestRerankForDiversity_ZeroWeightKeepsOrder(t *testing.T) {
	in := []Recommendation{
		rec("a", 90, "go", "web development"),
		rec("b", 88, "go", "web development"),
		rec("c", 80, "python", "machine learning"),
	}
	out, err := RerankForDiversity(in, 0)
	require.NoError(t, err)
	assert.Equal(t, titles(in), titles(out))
}

func TestRerankForDiversity_PromotesDifferentStack(t *testing.T) {
	in := []Recommendation{
		rec("a", 90, "go", "web development"),
		rec("b", 88, "go", "web development"),
		rec("c", 80, "python", "machine learning"),
	}
	out, err := RerankForDiversity(in, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, titles(out))
	assert.NotEqual(t, titles(in), titles(out))
	assert.Len(t, out, len(in))
}

func TestRerankForDiversity_EmptyAndInvalid(t *testing.T) {
	out, err := RerankForDiversity(nil, 0.7)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = RerankForDiversity([]Recommendation{rec("a", 90)}, 1.5)
	assert.ErrorIs(t, err, ErrInvalidDiversityWeight)
	_, err = RerankForDiversity([]Recommendation{rec("a", 90)}, -0.1)
	assert.ErrorIs(t, err, ErrInvalidDiversityWeight)
}

func TestRerankForDiversity_DoesNotMutateInput(t *testing.T) {
	in := []Recommendation{
		rec("a", 90, "go"),
		rec("b", 89, "go"),
		rec("c", 70, "rust"),
	}
	_, err := RerankForDiversity(in, 0.9)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, titles(in))
}
