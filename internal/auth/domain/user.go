package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Username          string             `bson:"username"`
	Email             string             `bson:"email"`
	FullName          string             `bson:"full_name"`
	PasswordHash      string             `bson:"password"`
	IsActive          bool               `bson:"is_active"`
	IsSuperuser       bool               `bson:"is_superuser"`
	ResetToken        string             `bson:"reset_token,omitempty"`
	ResetTokenExpires time.Time          `bson:"reset_token_expires,omitempty"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}
