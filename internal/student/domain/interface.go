package domain

//go:generate mockgen -destination=../../mocks/mock_student_repository.go -package=mocks github.com/GowthamBk/student-management-api/internal/student/domain StudentRepository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudentRepository is the students-collection contract. Missing records
// come back as (nil, nil), never as an error. The search term matches name
// or email case-insensitively.
type StudentRepository interface {
	Create(ctx context.Context, student *Student) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Student, error)
	GetByEmail(ctx context.Context, email string) (*Student, error)
	List(ctx context.Context, skip, limit int64, search string) ([]Student, error)
	Count(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}
