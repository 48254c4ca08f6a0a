package errors

import (
	"context"
	goerrors "errors"

	"github.com/gofiber/fiber/v2"

	"github.com/GowthamBk/student-management-api/internal/logging"
)

// Detail is one entry of the structured error body.
type Detail struct {
	Loc   []string `json:"loc"`
	Msg   string   `json:"msg"`
	Type  string   `json:"type"`
	Input any      `json:"input,omitempty"`
}

// ErrorResponse is the JSON body for every non-2xx outcome.
type ErrorResponse struct {
	Detail []Detail `json:"detail"`
}

func errorType(statusCode int) string {
	switch statusCode {
	case fiber.StatusUnauthorized, fiber.StatusForbidden:
		return "auth_error"
	case fiber.StatusNotFound:
		return "not_found"
	case fiber.StatusTooManyRequests:
		return "rate_limited"
	case fiber.StatusInternalServerError:
		return "server_error"
	default:
		return "validation_error"
	}
}

// NewDetail builds the body entry for an AppError. The location starts at
// "body" and is extended with the detail field names; the first scalar detail
// value is echoed back as the offending input.
func NewDetail(err *AppError) Detail {
	detail := Detail{
		Loc:  []string{"body"},
		Msg:  err.Message,
		Type: errorType(err.StatusCode),
	}
	for key, value := range err.Details {
		detail.Loc = append(detail.Loc, key)
		switch value.(type) {
		case string, int, int64, float64, bool:
			detail.Input = value
		}
	}
	return detail
}

// NewFiberHandler returns the application-wide Fiber error handler. It
// translates AppError values into the structured body, attaches the fixed
// security headers to every error response, and sets Retry-After on 429.
// Unexpected errors are logged and surfaced as a generic 500.
func NewFiberHandler(log logging.Logger, securityHeaders map[string]string) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		for key, value := range securityHeaders {
			c.Set(key, value)
		}

		var appErr *AppError
		if goerrors.As(err, &appErr) {
			if appErr.StatusCode == fiber.StatusTooManyRequests {
				c.Set(fiber.HeaderRetryAfter, "60")
			}
			if appErr.StatusCode == fiber.StatusInternalServerError {
				log.Error(context.Background(), "internal error", "path", c.Path(), "error", err)
			}
			return c.Status(appErr.StatusCode).JSON(ErrorResponse{Detail: []Detail{NewDetail(appErr)}})
		}

		var fiberErr *fiber.Error
		if goerrors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorResponse{Detail: []Detail{{
				Loc:  []string{"body"},
				Msg:  fiberErr.Message,
				Type: errorType(fiberErr.Code),
			}}})
		}

		log.Error(context.Background(), "unhandled error", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Detail: []Detail{{
			Loc:  []string{"body"},
			Msg:  MsgDatabaseError,
			Type: "server_error",
		}}})
	}
}
