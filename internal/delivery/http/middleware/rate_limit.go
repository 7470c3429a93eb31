package middleware

import (
	"sync"
	"time"

	"techsync/internal/metrics"
	"techsync/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware applies a token bucket per client IP.
type RateLimitMiddleware struct {
	rps   rate.Limit
	burst int

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimitMiddleware(rps float64, burst int) *RateLimitMiddleware {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitMiddleware{
		rps:      rate.Limit(rps),
		burst:    burst,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

func (m *RateLimitMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil || m.rps <= 0 {
			return c.Next()
		}
		if !m.allow(c.IP()) {
			metrics.RateLimited.Inc()
			c.Set(fiber.HeaderRetryAfter, "1")
			return response.Error(c, fiber.StatusTooManyRequests, "Too many requests", nil)
		}
		return c.Next()
	}
}

func (m *RateLimitMiddleware) allow(key string) bool {
	now := m.now()

	m.mu.Lock()
	v, ok := m.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(m.rps, m.burst)}
		m.visitors[key] = v
	}
	v.lastSeen = now
	if now.Sub(m.lastSweep) > limiterIdleTTL {
		m.sweep(now)
	}
	m.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// sweep drops idle visitors. Caller holds m.mu.
func (m *RateLimitMiddleware) sweep(now time.Time) {
	for k, v := range m.visitors {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(m.visitors, k)
		}
	}
	m.lastSweep = now
}
