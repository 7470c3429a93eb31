package middleware

import (
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() *log.Logger { return log.New(io.Discard, "", 0) }

func TestErrorMiddleware_HidesInternalCause(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(quiet()).Middleware())
	app.Get("/boom", func(fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password leaked", nil, errors.New("pq: secret"))
	})
	app.Get("/panic", func(fiber.Ctx) error { panic("oops") })
	app.Get("/bad", func(fiber.Ctx) error {
		return NewAppError(fiber.StatusBadRequest, "Bad request", map[string]string{"limit": "min"}, nil)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, string(body), "secret")
	assert.NotContains(t, string(body), "leaked")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/bad", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), `"limit":"min"`)
}

func TestErrorMiddleware_ServiceUnavailableKeepsStatus(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(quiet()).Middleware())
	app.Get("/down", func(fiber.Ctx) error {
		return NewAppError(fiber.StatusServiceUnavailable, "redis at 10.0.0.5 refused", nil, errors.New("dial tcp"))
	})
	app.Get("/missing", func(fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/down", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(body), `"message":"service unavailable"`)
	assert.NotContains(t, string(body), "10.0.0.5")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), `"message":"not found"`)
}

func TestAccessLog_PropagatesRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(quiet()).Middleware())
	app.Get("/ping", func(c fiber.Ctx) error { return c.SendString("pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "rid-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "rid-123", resp.Header.Get(HeaderRequestID))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))
}

func TestRateLimit_PerIP(t *testing.T) {
	m := NewRateLimitMiddleware(1, 2)
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	assert.True(t, m.allow("10.0.0.1"))
	assert.True(t, m.allow("10.0.0.1"))
	assert.False(t, m.allow("10.0.0.1"))
	assert.True(t, m.allow("10.0.0.2"))

	fixed = fixed.Add(time.Second)
	assert.True(t, m.allow("10.0.0.1"))
}

func TestRateLimit_SweepsIdleVisitors(t *testing.T) {
	m := NewRateLimitMiddleware(5, 5)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m.allow("a")
	now = now.Add(2 * limiterIdleTTL)
	m.allow("b")

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.NotContains(t, m.visitors, "a")
	assert.Contains(t, m.visitors, "b")
}

func TestRateLimit_Returns429(t *testing.T) {
	app := fiber.New()
	app.Use(NewRateLimitMiddleware(0.001, 1).Middleware())
	app.Get("/", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))
}
