package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/GowthamBk/student-management-api/internal/auth/domain UserRepository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository is the users-collection contract. Missing records come back
// as (nil, nil), never as an error.
type UserRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	// SetResetToken stores the persisted copy of a reset token; issuing a new
	// token invalidates any outstanding one.
	SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expires time.Time) error
	// UpdatePassword replaces the password hash and clears the reset-token
	// fields, consuming the token.
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
}
