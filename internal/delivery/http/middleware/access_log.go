package middleware

import (
	"log"
	"time"

	"techsync/internal/metrics"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		dur := time.Since(start)
		status := c.Response().StatusCode()
		method := c.Method()

		// Route patterns keep the metric label cardinality bounded.
		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(method, route, status, start)

		ip := c.IP()
		path := c.OriginalURL()
		ua := c.Get("User-Agent")
		respBytes := len(c.Response().Body())

		if m != nil && m.logger != nil {
			m.logger.Printf(
				"HTTP access | rid=%s ip=%s method=%s path=%s route=%s status=%d latency=%s resp_bytes=%d ua=%q",
				rid, ip, method, path, route, status, dur, respBytes, ua,
			)
		}

		return err
	}
}
