// Package errors defines the application error taxonomy and the structured
// JSON error body returned by every endpoint.
package errors

import "github.com/gofiber/fiber/v2"

// Common error messages used throughout the application.
const (
	MsgInvalidID          = "Invalid ID format"
	MsgStudentNotFound    = "Student not found"
	MsgNoValidStudents    = "No valid students found"
	MsgInvalidAge         = "Age must be greater than 0 and less than 150"
	MsgInvalidEmail       = "Invalid email format"
	MsgEmailExists        = "Student with this email already exists"
	MsgNoUpdateData       = "No data provided for update"
	MsgUpdateFailed       = "Failed to update student"
	MsgCreateFailed       = "Failed to create student"
	MsgDeleteFailed       = "Failed to delete student"
	MsgDatabaseError      = "Database operation failed"
	MsgUserNotFound       = "User not found"
	MsgInvalidCredentials = "Invalid username or password"
	MsgInvalidToken       = "Invalid or expired token"
	MsgInvalidAPIKey      = "Invalid API Key"
	MsgMissingAPIKey      = "Missing API Key"
	MsgPasswordTooShort   = "Password must be at least 8 characters long"
	MsgInvalidUsername    = "Username must be between 3 and 50 characters"
	MsgInvalidFullName    = "Full name must be between 1 and 100 characters"
	MsgUsernameExists     = "Username already exists"
	MsgUserEmailExists    = "User with this email already exists"
	MsgInvalidResetToken  = "Invalid or expired reset token"
	MsgEmailSendFailed    = "Failed to send email"
	MsgTooManyRequests    = "Too many requests. Please try again later."
	MsgInvalidBody        = "Invalid request body"
)

// AppError is the base error type for the application. Details map a field
// location to the offending input value.
type AppError struct {
	Message    string
	StatusCode int
	Details    map[string]any
}

func (e *AppError) Error() string {
	return e.Message
}

func newAppError(message string, statusCode int, details []map[string]any) *AppError {
	err := &AppError{Message: message, StatusCode: statusCode}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// NewValidation reports bad input or a conflicting unique field (400).
func NewValidation(message string, details ...map[string]any) *AppError {
	return newAppError(message, fiber.StatusBadRequest, details)
}

// NewUnauthorized reports a missing or unverifiable credential (401).
func NewUnauthorized(message string, details ...map[string]any) *AppError {
	return newAppError(message, fiber.StatusUnauthorized, details)
}

// NewForbidden reports a credential that is present but wrong (403).
func NewForbidden(message string, details ...map[string]any) *AppError {
	return newAppError(message, fiber.StatusForbidden, details)
}

// NewNotFound reports a missing resource (404).
func NewNotFound(message string, details ...map[string]any) *AppError {
	return newAppError(message, fiber.StatusNotFound, details)
}

// NewRateLimited reports a request rejected by the rate limiter (429).
func NewRateLimited() *AppError {
	return newAppError(MsgTooManyRequests, fiber.StatusTooManyRequests, nil)
}

// NewDatabase reports a persistence or delivery failure (500). The message is
// always one of the generic catalog entries; raw driver errors stay in logs.
func NewDatabase(message string) *AppError {
	return newAppError(message, fiber.StatusInternalServerError, nil)
}
