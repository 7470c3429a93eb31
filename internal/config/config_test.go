package config

import (
	"testing"
	"time"

	"techsync/internal/domain/assessment"
	"techsync/internal/domain/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("APP_NAME", "techsync")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	_, err := Load()
	require.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, matching.DefaultWeights(), cfg.Scoring.Weights)
	assert.Equal(t, 55.0, cfg.Scoring.RecommendationThreshold)
	assert.Equal(t, 10, cfg.Scoring.DefaultLimit)
	assert.Equal(t, 50, cfg.Scoring.MaxLimit)
	assert.Equal(t, 70, cfg.Scoring.MinPassingScore)
	assert.Equal(t, 8, cfg.Scoring.MaxFailedAttempts)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SCORING_WEIGHT_TOPIC", "0.5")
	t.Setenv("SCORING_WEIGHT_LANGUAGE", "0.3")
	t.Setenv("SCORING_WEIGHT_DIFFICULTY", "0.2")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_TTL", "90s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Scoring.Weights.TopicCoverage)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.Equal(t, 90*time.Second, cfg.Redis.TTL)
}

func TestLoad_RejectsBadScoring(t *testing.T) {
	setRequired(t)
	t.Setenv("SCORING_WEIGHT_TOPIC", "0.9")

	_, err := Load()
	assert.ErrorIs(t, err, matching.ErrInvalidWeights)
}

func TestLoad_RejectsUnparsable(t *testing.T) {
	setRequired(t)
	t.Setenv("MIN_PASSING_SCORE", "seventy")

	_, err := Load()
	require.ErrorIs(t, err, errInvalidEnv)
	assert.Contains(t, err.Error(), "MIN_PASSING_SCORE")
}

func TestLoad_RejectsNaNDiversityWeight(t *testing.T) {
	setRequired(t)
	t.Setenv("DIVERSITY_WEIGHT", "NaN")

	_, err := Load()
	assert.ErrorIs(t, err, matching.ErrInvalidDiversityWeight)
}

func TestLoadScoring_NeedsNoServerSettings(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("MIN_PASSING_SCORE", "80")

	sc, err := LoadScoring()
	require.NoError(t, err)
	assert.Equal(t, 80, sc.MinPassingScore)

	t.Setenv("MIN_PASSING_SCORE", "101")
	_, err = LoadScoring()
	assert.ErrorIs(t, err, assessment.ErrInvalidPassingScore)
}
