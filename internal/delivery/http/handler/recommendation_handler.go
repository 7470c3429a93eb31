package handler

import (
	"strconv"

	"techsync/internal/delivery/http/dto"
	"techsync/internal/delivery/http/middleware"
	"techsync/internal/pkg/response"
	"techsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendationHandler struct {
	recs  usecase.RecommendationUsecase
	score usecase.ProjectScoreUsecase
}

func NewRecommendationHandler(recs usecase.RecommendationUsecase, score usecase.ProjectScoreUsecase) *RecommendationHandler {
	return &RecommendationHandler{recs: recs, score: score}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/users/:user_id")
	grp.Get("/recommendations", h.GetRecommendations)
	grp.Get("/projects/:project_id/score", h.GetProjectScore)
}

func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return err
	}

	var params usecase.RecommendationParams
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
		}
		params.Limit = limit
	}
	if raw := c.Query("diversity"); raw != "" {
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid diversity", nil, err)
		}
		params.DiversityWeight = &w
	}

	res, err := h.recs.GetRecommendations(c.Context(), userID, params)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.RecommendationListResponse{
		UserID:          res.UserID,
		Items:           res.Recommendations,
		Total:           len(res.Recommendations),
		Limit:           res.Limit,
		DiversityWeight: res.DiversityWeight,
		Threshold:       res.Threshold,
		Cached:          res.Cached,
		GeneratedAt:     res.GeneratedAt,
	})
}

func (h *RecommendationHandler) GetProjectScore(c fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return err
	}
	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		return err
	}

	res, err := h.score.ScoreProject(c.Context(), userID, projectID)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ProjectScoreResponse{
		UserID:       userID,
		ProjectID:    res.ProjectID,
		Title:        res.Title,
		Score:        res.Score,
		Recommended:  res.Recommended,
		Breakdown:    res.Breakdown,
		MatchFactors: res.MatchFactors,
	})
}
