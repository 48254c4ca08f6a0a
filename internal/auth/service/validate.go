package service

import (
	"regexp"
	"strings"
	"unicode"

	apperrors "github.com/GowthamBk/student-management-api/internal/errors"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const passwordSpecials = "!@#$%^&*()_+-=[]{}|;:,.<>?"

// ValidateEmail checks the address against the same pattern the API has
// always advertised.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return apperrors.NewValidation(apperrors.MsgInvalidEmail, map[string]any{"email": email})
	}
	return nil
}

// ValidatePassword enforces minimum length and one character from each of
// the upper, lower, digit and special classes.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.NewValidation(apperrors.MsgPasswordTooShort)
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}
	if !hasUpper {
		return apperrors.NewValidation("Password must contain at least one uppercase letter")
	}
	if !hasLower {
		return apperrors.NewValidation("Password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return apperrors.NewValidation("Password must contain at least one number")
	}
	if !hasSpecial {
		return apperrors.NewValidation("Password must contain at least one special character")
	}
	return nil
}

func validateUsername(username string) error {
	if len(username) < 3 || len(username) > 50 {
		return apperrors.NewValidation(apperrors.MsgInvalidUsername, map[string]any{"username": username})
	}
	return nil
}

func validateFullName(fullName string) error {
	if len(fullName) < 1 || len(fullName) > 100 {
		return apperrors.NewValidation(apperrors.MsgInvalidFullName)
	}
	return nil
}
