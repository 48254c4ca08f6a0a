package dto

import (
	"time"

	"github.com/GowthamBk/student-management-api/internal/auth/domain"
)

type UserOutput struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
}

func NewUserOutput(user *domain.User) UserOutput {
	return UserOutput{
		ID:          user.ID.Hex(),
		Username:    user.Username,
		Email:       user.Email,
		FullName:    user.FullName,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
		IsActive:    user.IsActive,
		IsSuperuser: user.IsSuperuser,
	}
}
