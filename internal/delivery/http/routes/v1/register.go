package v1

import (
	"techsync/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, recs *handler.RecommendationHandler, assess *handler.AssessmentHandler, learning *handler.LearningHandler) {
	if r == nil {
		return
	}

	if recs != nil {
		recs.RegisterRoutes(r)
	}
	if assess != nil {
		assess.RegisterRoutes(r)
	}
	if learning != nil {
		learning.RegisterRoutes(r)
	}
}
