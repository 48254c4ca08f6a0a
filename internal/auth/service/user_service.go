package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/GowthamBk/student-management-api/internal/auth/domain"
	"github.com/GowthamBk/student-management-api/internal/auth/dto"
	apperrors "github.com/GowthamBk/student-management-api/internal/errors"
	"github.com/GowthamBk/student-management-api/internal/logging"
	"github.com/GowthamBk/student-management-api/internal/mailer"
)

type UserService struct {
	repo   domain.UserRepository
	tokens TokenGenerator
	mail   mailer.Sender
	log    logging.Logger
}

func NewUserService(repo domain.UserRepository, tokens TokenGenerator, mail mailer.Sender, log logging.Logger) *UserService {
	return &UserService{
		repo:   repo,
		tokens: tokens,
		mail:   mail,
		log:    log,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	if err := validateUsername(input.Username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := validateFullName(input.FullName); err != nil {
		return nil, err
	}
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, s.databaseError(ctx, "get user by username", err)
	}
	if existing != nil {
		return nil, apperrors.NewValidation(apperrors.MsgUsernameExists, map[string]any{"username": input.Username})
	}

	existing, err = s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, s.databaseError(ctx, "get user by email", err)
	}
	if existing != nil {
		return nil, apperrors.NewValidation(apperrors.MsgUserEmailExists, map[string]any{"email": input.Email})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, s.databaseError(ctx, "hash password", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           primitive.NewObjectID(),
		Username:     input.Username,
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: string(hashed),
		IsActive:     true,
		IsSuperuser:  false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, s.databaseError(ctx, "create user", err)
	}

	return user, nil
}

// Login authenticates the username/password pair and issues a session token.
// Missing user and wrong password produce the same error so the response
// never reveals which one it was.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	user, err := s.repo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, s.databaseError(ctx, "get user by username", err)
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		s.log.Warn(ctx, "login rejected", "username", input.Username)
		return nil, apperrors.NewUnauthorized(apperrors.MsgInvalidCredentials)
	}

	token, err := s.tokens.GenerateSession(user.Username)
	if err != nil {
		return nil, s.databaseError(ctx, "generate session token", err)
	}

	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// ForgotPassword issues a reset token, persists its shadow copy and mails the
// reset link. An unknown email is not an error: the caller responds with the
// same generic message either way to avoid account enumeration.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return s.databaseError(ctx, "get user by email", err)
	}
	if user == nil {
		return nil
	}

	token, expiresAt, err := s.tokens.GenerateReset(user.ID.Hex())
	if err != nil {
		return s.databaseError(ctx, "generate reset token", err)
	}

	if err := s.repo.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return s.databaseError(ctx, "store reset token", err)
	}

	if err := s.mail.SendPasswordReset(ctx, user.Email, token); err != nil {
		s.log.Error(ctx, "failed to send password reset email", "error", err)
		return apperrors.NewDatabase(apperrors.MsgEmailSendFailed)
	}

	return nil
}

// ResetPassword consumes a reset token. The token must carry a valid
// signature and unelapsed expiry, AND match the copy persisted on the user
// record: resetting the password or issuing a new token invalidates any
// outstanding one even before its signed expiry.
func (s *UserService) ResetPassword(ctx context.Context, input dto.ResetPasswordInput) error {
	if err := ValidatePassword(input.NewPassword); err != nil {
		return err
	}

	userID, err := s.tokens.DecodeReset(input.Token)
	if err != nil {
		return apperrors.NewValidation(apperrors.MsgInvalidResetToken)
	}

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return apperrors.NewValidation(apperrors.MsgInvalidResetToken)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return s.databaseError(ctx, "get user by id", err)
	}
	if user == nil || user.ResetToken != input.Token || !user.ResetTokenExpires.After(time.Now()) {
		return apperrors.NewValidation(apperrors.MsgInvalidResetToken)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return s.databaseError(ctx, "hash password", err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		return s.databaseError(ctx, "update password", err)
	}

	return nil
}

func (s *UserService) databaseError(ctx context.Context, op string, err error) error {
	s.log.Error(ctx, "user store operation failed", "op", op, "error", err)
	return apperrors.NewDatabase(apperrors.MsgDatabaseError)
}
