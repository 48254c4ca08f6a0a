package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GowthamBk/student-management-api/internal/auth/dto"
	"github.com/GowthamBk/student-management-api/internal/auth/service"
	apperrors "github.com/GowthamBk/student-management-api/internal/errors"
	"github.com/GowthamBk/student-management-api/internal/middleware"
)

// resetRequestedMessage is returned whether or not the email exists, so the
// endpoint cannot be used to enumerate accounts.
const resetRequestedMessage = "If your email is registered, you will receive a password reset link."

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return apperrors.NewValidation(apperrors.MsgInvalidBody)
	}

	user, err := h.userService.Register(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewUserOutput(user))
}

// Login accepts form-encoded username/password and returns a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	input := dto.LoginInput{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
	}
	if input.Username == "" || input.Password == "" {
		return apperrors.NewValidation(apperrors.MsgInvalidBody)
	}

	tokens, err := h.userService.Login(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(tokens)
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input dto.ForgotPasswordInput
	if err := c.BodyParser(&input); err != nil || input.Email == "" {
		return apperrors.NewValidation(apperrors.MsgInvalidBody)
	}

	if err := h.userService.ForgotPassword(c.Context(), input.Email); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(dto.PasswordResetResponse{Message: resetRequestedMessage})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input dto.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil || input.Token == "" {
		return apperrors.NewValidation(apperrors.MsgInvalidBody)
	}

	if err := h.userService.ResetPassword(c.Context(), input); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(dto.PasswordResetResponse{Message: "Password has been reset successfully."})
}

// Me returns the user resolved by the bearer-token middleware.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.UserFromCtx(c)
	if user == nil {
		return apperrors.NewNotFound(apperrors.MsgUserNotFound)
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewUserOutput(user))
}
