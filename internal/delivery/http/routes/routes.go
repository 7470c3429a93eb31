package routes

import (
	"net/http"

	"techsync/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

type Handlers struct {
	Health         *handler.HealthHandler
	Recommendation *handler.RecommendationHandler
	Assessment     *handler.AssessmentHandler
	Learning       *handler.LearningHandler
	// Events serves the websocket endpoint; nil leaves /ws/events unregistered.
	Events fiber.Handler
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
}

type Registry struct {
	h Handlers
}

func NewRegistry(h Handlers) *Registry {
	if h.Health == nil {
		h.Health = handler.NewHealthHandler(nil, nil)
	}
	return &Registry{h: h}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerOps(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.h.Health.RegisterRoutes(app)
}

func (r *Registry) registerOps(app *fiber.App) {
	if r.h.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(r.h.Metrics))
	}
	if r.h.Events != nil {
		app.Get("/ws/events", r.h.Events)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.h)
}
