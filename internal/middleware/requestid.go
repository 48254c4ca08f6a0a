package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id echoed on every response.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns a fresh UUID to requests that arrive without one and
// echoes it back so clients and logs can correlate.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(RequestIDHeader, id)
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}
