package dto

import (
	"time"

	"techsync/internal/domain/matching"

	"github.com/google/uuid"
)

type RecommendationListResponse struct {
	UserID          uuid.UUID                 `json:"user_id"`
	Items           []matching.Recommendation `json:"items"`
	Total           int                       `json:"total"`
	Limit           int                       `json:"limit"`
	DiversityWeight float64                   `json:"diversity_weight"`
	Threshold       float64                   `json:"threshold"`
	Cached          bool                      `json:"cached"`
	GeneratedAt     time.Time                 `json:"generated_at"`
}

type ProjectScoreResponse struct {
	UserID       uuid.UUID             `json:"user_id"`
	ProjectID    uuid.UUID             `json:"project_id"`
	Title        string                `json:"title"`
	Score        float64               `json:"score"`
	Recommended  bool                  `json:"recommended"`
	Breakdown    matching.Breakdown    `json:"breakdown"`
	MatchFactors matching.MatchFactors `json:"match_factors"`
}
