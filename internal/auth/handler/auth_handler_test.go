package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/GowthamBk/student-management-api/internal/auth/domain"
	"github.com/GowthamBk/student-management-api/internal/auth/dto"
	"github.com/GowthamBk/student-management-api/internal/auth/handler"
	"github.com/GowthamBk/student-management-api/internal/auth/service"
	apperrors "github.com/GowthamBk/student-management-api/internal/errors"
	"github.com/GowthamBk/student-management-api/internal/logging"
	"github.com/GowthamBk/student-management-api/internal/mailer"
	"github.com/GowthamBk/student-management-api/internal/middleware"
	"github.com/GowthamBk/student-management-api/internal/mocks"
)

const testAPIKey = "test-api-key"

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newTestApp wires the auth routes with the same error handler and gate
// middleware the real app uses.
func newTestApp(repo domain.UserRepository, tokens service.TokenGenerator, mail mailer.Sender) *fiber.App {
	log := testLogger()
	userService := service.NewUserService(repo, tokens, mail, log)
	h := handler.NewAuthHandler(userService)

	app := fiber.New(fiber.Config{
		ErrorHandler: apperrors.NewFiberHandler(log, middleware.SecurityHeaderSet(31536000, "default-src 'self'")),
	})
	api := app.Group("/api/v1")
	handler.RegisterRoutes(api, h, middleware.RequireAPIKey(testAPIKey), middleware.RequireUser(tokens, repo))
	return app
}

func decodeErrorBody(t *testing.T, resp io.Reader) apperrors.ErrorResponse {
	t.Helper()
	var body apperrors.ErrorResponse
	require.NoError(t, json.NewDecoder(resp).Decode(&body))
	require.NotEmpty(t, body.Detail)
	return body
}

func TestRegister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockUserRepository(ctrl)
		app := newTestApp(mockRepo, nil, nil)

		input := dto.RegisterInput{
			Username: "johndoe",
			Email:    "john@example.com",
			FullName: "John Doe",
			Password: "Str0ngPass!",
		}
		mockRepo.EXPECT().GetByUsername(gomock.Any(), input.Username).Return(nil, nil)
		mockRepo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		body, _ := json.Marshal(input)
		req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var out dto.UserOutput
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "johndoe", out.Username)
		assert.Equal(t, "john@example.com", out.Email)
		assert.True(t, out.IsActive)
	})

	t.Run("malformed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		app := newTestApp(mocks.NewMockUserRepository(ctrl), nil, nil)

		req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader("{not-json"))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("duplicate username returns structured conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockUserRepository(ctrl)
		app := newTestApp(mockRepo, nil, nil)

		input := dto.RegisterInput{
			Username: "johndoe",
			Email:    "john@example.com",
			FullName: "John Doe",
			Password: "Str0ngPass!",
		}
		mockRepo.EXPECT().GetByUsername(gomock.Any(), input.Username).
			Return(&domain.User{Username: input.Username}, nil)

		body, _ := json.Marshal(input)
		req := httptest.NewRequest("POST", "/api/v1/auth/register", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		errBody := decodeErrorBody(t, resp.Body)
		assert.Equal(t, apperrors.MsgUsernameExists, errBody.Detail[0].Msg)
		assert.Equal(t, []string{"body", "username"}, errBody.Detail[0].Loc)
		assert.Equal(t, "johndoe", errBody.Detail[0].Input)
	})
}

func TestLogin(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Str0ngPass!"), bcrypt.DefaultCost)
	require.NoError(t, err)
	storedUser := &domain.User{
		ID:           primitive.NewObjectID(),
		Username:     "johndoe",
		PasswordHash: string(hashed),
	}

	t.Run("success with form-encoded credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockUserRepository(ctrl)
		mockTokens := mocks.NewMockTokenGenerator(ctrl)
		app := newTestApp(mockRepo, mockTokens, nil)

		mockRepo.EXPECT().GetByUsername(gomock.Any(), "johndoe").Return(storedUser, nil)
		mockTokens.EXPECT().GenerateSession("johndoe").Return("signed-token", nil)

		form := url.Values{"username": {"johndoe"}, "password": {"Str0ngPass!"}}
		req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var tokens dto.TokenResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&tokens))
		assert.Equal(t, "signed-token", tokens.AccessToken)
		assert.Equal(t, "bearer", tokens.TokenType)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockUserRepository(ctrl)
		app := newTestApp(mockRepo, nil, nil)

		mockRepo.EXPECT().GetByUsername(gomock.Any(), "johndoe").Return(storedUser, nil)

		form := url.Values{"username": {"johndoe"}, "password": {"wrong"}}
		req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		errBody := decodeErrorBody(t, resp.Body)
		assert.Equal(t, apperrors.MsgInvalidCredentials, errBody.Detail[0].Msg)
	})

	t.Run("missing fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		app := newTestApp(mocks.NewMockUserRepository(ctrl), nil, nil)

		req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(""))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestForgotPassword(t *testing.T) {
	t.Run("requires API key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		app := newTestApp(mocks.NewMockUserRepository(ctrl), nil, nil)

		body, _ := json.Marshal(dto.ForgotPasswordInput{Email: "john@example.com"})
		req := httptest.NewRequest("POST", "/api/v1/auth/forgot-password", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong API key is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		app := newTestApp(mocks.NewMockUserRepository(ctrl), nil, nil)

		body, _ := json.Marshal(dto.ForgotPasswordInput{Email: "john@example.com"})
		req := httptest.NewRequest("POST", "/api/v1/auth/forgot-password", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", "wrong-key")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown email still gets the generic message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockUserRepository(ctrl)
		app := newTestApp(mockRepo, nil, nil)

		mockRepo.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(nil, nil)

		body, _ := json.Marshal(dto.ForgotPasswordInput{Email: "ghost@example.com"})
		req := httptest.NewRequest("POST", "/api/v1/auth/forgot-password", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", testAPIKey)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out dto.PasswordResetResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Contains(t, out.Message, "If your email is registered")
	})

	t.Run("known email triggers the mail and gets the same message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockUserRepository(ctrl)
		mockTokens := mocks.NewMockTokenGenerator(ctrl)
		mockMail := mocks.NewMockSender(ctrl)
		app := newTestApp(mockRepo, mockTokens, mockMail)

		user := &domain.User{ID: primitive.NewObjectID(), Email: "john@example.com"}
		expiresAt := time.Now().Add(time.Hour)
		mockRepo.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)
		mockTokens.EXPECT().GenerateReset(user.ID.Hex()).Return("reset-token", expiresAt, nil)
		mockRepo.EXPECT().SetResetToken(gomock.Any(), user.ID, "reset-token", expiresAt).Return(nil)
		mockMail.EXPECT().SendPasswordReset(gomock.Any(), user.Email, "reset-token").Return(nil)

		body, _ := json.Marshal(dto.ForgotPasswordInput{Email: user.Email})
		req := httptest.NewRequest("POST", "/api/v1/auth/forgot-password", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", testAPIKey)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out dto.PasswordResetResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Contains(t, out.Message, "If your email is registered")
	})
}

func TestResetPassword(t *testing.T) {
	t.Run("invalid token is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockUserRepository(ctrl)
		mockTokens := mocks.NewMockTokenGenerator(ctrl)
		app := newTestApp(mockRepo, mockTokens, nil)

		mockTokens.EXPECT().DecodeReset("bad-token").Return("", errors.New("token signature is invalid"))

		body, _ := json.Marshal(dto.ResetPasswordInput{Token: "bad-token", NewPassword: "N3wStr0ng!"})
		req := httptest.NewRequest("POST", "/api/v1/auth/reset-password", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", testAPIKey)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		errBody := decodeErrorBody(t, resp.Body)
		assert.Equal(t, apperrors.MsgInvalidResetToken, errBody.Detail[0].Msg)
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockUserRepository(ctrl)
		mockTokens := mocks.NewMockTokenGenerator(ctrl)
		app := newTestApp(mockRepo, mockTokens, nil)

		userID := primitive.NewObjectID()
		user := &domain.User{
			ID:                userID,
			ResetToken:        "reset-token",
			ResetTokenExpires: time.Now().Add(30 * time.Minute),
		}
		mockTokens.EXPECT().DecodeReset("reset-token").Return(userID.Hex(), nil)
		mockRepo.EXPECT().GetByID(gomock.Any(), userID).Return(user, nil)
		mockRepo.EXPECT().UpdatePassword(gomock.Any(), userID, gomock.Any()).Return(nil)

		body, _ := json.Marshal(dto.ResetPasswordInput{Token: "reset-token", NewPassword: "N3wStr0ng!"})
		req := httptest.NewRequest("POST", "/api/v1/auth/reset-password", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", testAPIKey)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestMe(t *testing.T) {
	user := &domain.User{
		ID:       primitive.NewObjectID(),
		Username: "johndoe",
		Email:    "john@example.com",
		FullName: "John Doe",
		IsActive: true,
	}

	t.Run("returns the resolved user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockUserRepository(ctrl)
		mockTokens := mocks.NewMockTokenGenerator(ctrl)
		app := newTestApp(mockRepo, mockTokens, nil)

		mockTokens.EXPECT().VerifySession("valid-token").Return("johndoe", nil)
		mockRepo.EXPECT().GetByUsername(gomock.Any(), "johndoe").Return(user, nil)

		req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
		req.Header.Set("X-API-Key", testAPIKey)
		req.Header.Set("Authorization", "Bearer valid-token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out dto.UserOutput
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "johndoe", out.Username)
	})

	t.Run("missing bearer token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		app := newTestApp(mocks.NewMockUserRepository(ctrl), mocks.NewMockTokenGenerator(ctrl), nil)

		req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
		req.Header.Set("X-API-Key", testAPIKey)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
	})

	t.Run("valid token for a deleted user is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockUserRepository(ctrl)
		mockTokens := mocks.NewMockTokenGenerator(ctrl)
		app := newTestApp(mockRepo, mockTokens, nil)

		mockTokens.EXPECT().VerifySession("valid-token").Return("ghost", nil)
		mockRepo.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, nil)

		req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
		req.Header.Set("X-API-Key", testAPIKey)
		req.Header.Set("Authorization", "Bearer valid-token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
