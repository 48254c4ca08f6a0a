package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the student CRUD endpoints. Every route is API-key
// gated and requires a bearer token resolving to an existing user.
func RegisterRoutes(router fiber.Router, h *StudentHandler, requireAPIKey, requireUser fiber.Handler) {
	students := router.Group("/students", requireAPIKey, requireUser)
	students.Post("/", h.Create)
	students.Get("/", h.List)
	students.Get("/:id", h.Get)
	students.Put("/:id", h.Update)
	students.Delete("/:id", h.Delete)
}
