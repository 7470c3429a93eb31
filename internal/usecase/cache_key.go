package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
)

type recommendationCacheKeyInput struct {
	Limit     int    `json:"limit"`
	Diversity string `json:"diversity"`
}

// RecommendationCacheKey is scoped per user so UserCachePatterns can drop every variant.
func RecommendationCacheKey(userID uuid.UUID, limit int, diversity float64) string {
	in := recommendationCacheKeyInput{
		Limit:     limit,
		Diversity: strconv.FormatFloat(diversity, 'f', 4, 64),
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "recs:" + userID.String() + ":" + hex.EncodeToString(sum[:])
}

func ProjectScoreCacheKey(userID, projectID uuid.UUID) string {
	return "score:" + userID.String() + ":" + projectID.String()
}

func AssessmentLockKey(userID, challengeID uuid.UUID) string {
	return "assess:lock:" + userID.String() + ":" + challengeID.String()
}

func UserCachePatterns(userID uuid.UUID) []string {
	return []string{
		"recs:" + userID.String() + ":*",
		"score:" + userID.String() + ":*",
	}
}
