package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"techsync/internal/config"
	"techsync/internal/database/migration"
	"techsync/internal/delivery/http/handler"
	"techsync/internal/delivery/http/middleware"
	"techsync/internal/delivery/http/routes"
	"techsync/internal/metrics"
	"techsync/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: 1 << 20,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f}
}

// Bootstrap builds the container, applies pending migrations and starts the websocket hub.
// The returned cleanup stops the hub and releases connections.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	if err := (migration.Runner{Logger: c.Logger}).Run(migCtx, c.DB.SQLDB()); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migration failed: %w", err)
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	app.Use(accessMw.Middleware())

	errMw := middleware.NewErrorMiddleware(c.Logger)
	app.Use(errMw.Middleware())

	if rl := c.Config.RateLimit; rl.Enabled {
		rateMw := middleware.NewRateLimitMiddleware(rl.RPS, rl.Burst)
		app.Use(rateMw.Middleware())
	}
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	var cachePinger handler.Pinger
	if c.Cache != nil && c.Cache.Enabled() {
		cachePinger = c.Cache
	}

	routes.NewRegistry(routes.Handlers{
		Health:         handler.NewHealthHandler(c.DB, cachePinger),
		Recommendation: handler.NewRecommendationHandler(c.Usecases.Recommendation, c.Usecases.ProjectScore),
		Assessment:     handler.NewAssessmentHandler(c.Usecases.Assessment),
		Learning:       handler.NewLearningHandler(c.Usecases.Learning),
		Events:         ws.NewHandler(c.Hub, c.Logger).HandleEvents,
		Metrics:        metrics.Handler(),
	}).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
