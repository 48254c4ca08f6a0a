// Package middleware holds the cross-cutting request pipeline: rate
// limiting, security headers, API-key and bearer-token checks. Ordering is
// decided in cmd/main.go; each stage documents what it may reject and what it
// always does.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/GowthamBk/student-management-api/internal/errors"
	"github.com/GowthamBk/student-management-api/internal/ratelimit"
)

// ClientID derives the rate-limiting identity for a request: the left-most
// X-Forwarded-For entry when present, else the peer address. The header is
// spoofable; it is only trustworthy behind a reverse proxy that overwrites it.
func ClientID(c *fiber.Ctx) string {
	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	return c.IP()
}

// RateLimit rejects requests over the sliding-window budget with 429 before
// any credential checking runs. Rejected attempts are not counted against the
// window.
func RateLimit(limiter *ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !limiter.Allow(ClientID(c)) {
			return apperrors.NewRateLimited()
		}
		return c.Next()
	}
}
