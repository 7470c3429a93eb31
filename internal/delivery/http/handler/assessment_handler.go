package handler

import (
	"techsync/internal/delivery/http/dto"
	"techsync/internal/delivery/http/middleware"
	"techsync/internal/pkg/response"
	"techsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AssessmentHandler struct {
	uc usecase.AssessmentUsecase
}

func NewAssessmentHandler(uc usecase.AssessmentUsecase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

func (h *AssessmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/assessments")
	grp.Post("/", h.Submit)
	grp.Post("/evaluate", h.Evaluate)
}

func (h *AssessmentHandler) Submit(c fiber.Ctx) error {
	var req dto.SubmitAssessmentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := req.Validate(); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", dto.FieldErrors(err), err)
	}

	res, err := h.uc.Submit(c.Context(), usecase.SubmitParams{
		UserID:      req.UserID,
		ProjectID:   req.ProjectID,
		ChallengeID: req.ChallengeID,
		Code:        req.Code,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	out := dto.AssessmentResponse{
		AttemptID:      res.AttemptID,
		Result:         res.Assessment,
		FailedAttempts: res.FailedAttempts,
	}
	if res.LearningSupport != nil {
		out.LearningSupport = &dto.LearningSupportResponse{
			Triggered:       res.LearningSupport.Triggered,
			Recommendations: res.LearningSupport.Recommendations,
		}
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, out)
}

func (h *AssessmentHandler) Evaluate(c fiber.Ctx) error {
	var req dto.EvaluateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := req.Validate(); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", dto.FieldErrors(err), err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, h.uc.Evaluate(req.CodeOrEmpty()))
}
