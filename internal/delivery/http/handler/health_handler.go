package handler

import (
	"context"
	"time"

	"techsync/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler accepts nil pingers; a nil dependency is reported as "disabled".
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{
		"database": check(ctx, h.db),
		"cache":    check(ctx, h.cache),
	}
	if checks["database"] == "down" {
		return response.Error(c, fiber.StatusServiceUnavailable, "unhealthy", checks)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, checks)
}

func check(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
