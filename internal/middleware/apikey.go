package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/GowthamBk/student-management-api/internal/errors"
)

// APIKeyHeader is the header carrying the static client application secret.
const APIKeyHeader = "X-API-Key"

// RequireAPIKey rejects requests whose X-API-Key header is absent (401) or
// does not match the configured key (403). The comparison is constant-time.
func RequireAPIKey(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provided := c.Get(APIKeyHeader)
		if provided == "" {
			return apperrors.NewUnauthorized(apperrors.MsgMissingAPIKey)
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			return apperrors.NewForbidden(apperrors.MsgInvalidAPIKey)
		}
		return c.Next()
	}
}
