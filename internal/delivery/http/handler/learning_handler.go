package handler

import (
	"techsync/internal/pkg/response"
	"techsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type LearningHandler struct {
	uc usecase.LearningUsecase
}

func NewLearningHandler(uc usecase.LearningUsecase) *LearningHandler {
	return &LearningHandler{uc: uc}
}

func (h *LearningHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/users/:user_id/learning-support", h.GetLearningSupport)
}

func (h *LearningHandler) GetLearningSupport(c fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return err
	}

	res, err := h.uc.GetLearningSupport(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
