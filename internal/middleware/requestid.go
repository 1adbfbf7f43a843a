package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/squeaknode/squeakweb/internal/logging"
)

const requestIDHeader = "X-Request-ID"

// RequestID ensures each request has a stable request identifier and carries a
// logger tagged with it in the request context.
func RequestID(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(requestIDHeader, reqID)
		c.Locals(requestIDHeader, reqID)

		if logger != nil {
			c.SetUserContext(logging.IntoContext(c.UserContext(), logger.With("request_id", reqID)))
		}

		return c.Next()
	}
}

// RequestIDFrom returns the id RequestID assigned to c.
func RequestIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDHeader).(string)
	return id
}
