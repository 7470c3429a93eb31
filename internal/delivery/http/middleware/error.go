package middleware

import (
	"errors"
	"log"
	"runtime/debug"

	"techsync/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       any
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data any, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

type ErrorMiddleware struct {
	logger *log.Logger
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Printf("[HTTP] panic recovered rid=%s method=%s path=%s panic=%v\n%s",
					requestID(c), c.Method(), c.Path(), r, debug.Stack())
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := normalizeError(err)
		if status >= 500 {
			m.logger.Printf("[HTTP] request failed rid=%s method=%s path=%s status=%d err=%v",
				requestID(c), c.Method(), c.Path(), status, err)
		}
		return response.Error(c, status, msg, data)
	}
}

// requestID reads the ID the access log middleware echoed on the response.
func requestID(c fiber.Ctx) string {
	if rid := c.GetRespHeader(HeaderRequestID); rid != "" {
		return rid
	}
	return c.Get(HeaderRequestID)
}

// normalizeError maps err to a response. Server-side causes never reach the
// client; 503 keeps its own message so callers can tell it from a crash.
func normalizeError(err error) (int, string, any) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return sanitize(appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return sanitize(fiberErr.Code, fiberErr.Message, nil)
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}

func sanitize(status int, msg string, data any) (int, string, any) {
	switch {
	case status <= 0:
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	case status == fiber.StatusServiceUnavailable:
		return status, response.MessageServiceUnavailable, nil
	case status >= 500:
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	}
	if msg == "" {
		msg = response.DefaultMessage(status)
	}
	return status, msg, data
}
