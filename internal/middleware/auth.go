package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/GowthamBk/student-management-api/internal/auth/domain"
	"github.com/GowthamBk/student-management-api/internal/auth/service"
	apperrors "github.com/GowthamBk/student-management-api/internal/errors"
)

// CurrentUserKey is the request-local key the resolved *domain.User is
// stored under.
const CurrentUserKey = "currentUser"

// RequireUser verifies the bearer token and re-resolves its subject against
// the user store. A structurally valid token whose user has since been
// deleted is treated as not found, never as authenticated.
func RequireUser(tokens service.TokenGenerator, users domain.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return apperrors.NewUnauthorized(apperrors.MsgInvalidToken)
		}

		username, err := tokens.VerifySession(token)
		if err != nil {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			return apperrors.NewUnauthorized(apperrors.MsgInvalidToken)
		}

		user, err := users.GetByUsername(c.Context(), username)
		if err != nil {
			return apperrors.NewDatabase(apperrors.MsgDatabaseError)
		}
		if user == nil {
			return apperrors.NewNotFound(apperrors.MsgUserNotFound)
		}

		c.Locals(CurrentUserKey, user)
		return c.Next()
	}
}

// UserFromCtx returns the user resolved by RequireUser, or nil when the
// route is not bearer-gated.
func UserFromCtx(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(CurrentUserKey).(*domain.User)
	return user
}
