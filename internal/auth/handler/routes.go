package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the auth endpoints. Forgot/reset-password are
// API-key gated; /me additionally requires a bearer token.
func RegisterRoutes(router fiber.Router, h *AuthHandler, requireAPIKey, requireUser fiber.Handler) {
	auth := router.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/forgot-password", requireAPIKey, h.ForgotPassword)
	auth.Post("/reset-password", requireAPIKey, h.ResetPassword)
	auth.Get("/me", requireAPIKey, requireUser, h.Me)
}
