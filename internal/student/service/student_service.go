package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	authservice "github.com/GowthamBk/student-management-api/internal/auth/service"
	apperrors "github.com/GowthamBk/student-management-api/internal/errors"
	"github.com/GowthamBk/student-management-api/internal/logging"
	"github.com/GowthamBk/student-management-api/internal/student/domain"
	"github.com/GowthamBk/student-management-api/internal/student/dto"
)

type StudentService struct {
	repo domain.StudentRepository
	log  logging.Logger
}

func NewStudentService(repo domain.StudentRepository, log logging.Logger) *StudentService {
	return &StudentService{repo: repo, log: log}
}

func validateAge(age int) error {
	if age <= 0 || age >= 150 {
		return apperrors.NewValidation(apperrors.MsgInvalidAge, map[string]any{"age": age})
	}
	return nil
}

func validateName(name string) error {
	if len(name) < 2 || len(name) > 50 {
		return apperrors.NewValidation("Name must be between 2 and 50 characters", map[string]any{"name": name})
	}
	return nil
}

func validateGrade(grade string) error {
	if len(grade) < 1 || len(grade) > 10 {
		return apperrors.NewValidation("Grade must be between 1 and 10 characters", map[string]any{"grade": grade})
	}
	return nil
}

func parseID(studentID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(studentID)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewValidation(apperrors.MsgInvalidID, map[string]any{"student_id": studentID})
	}
	return id, nil
}

func (s *StudentService) Create(ctx context.Context, input dto.StudentCreate) (*domain.Student, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}
	if err := validateAge(input.Age); err != nil {
		return nil, err
	}
	if err := validateGrade(input.Grade); err != nil {
		return nil, err
	}
	if err := authservice.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, s.databaseError(ctx, "get student by email", err)
	}
	if existing != nil {
		return nil, apperrors.NewValidation(apperrors.MsgEmailExists, map[string]any{"email": input.Email})
	}

	student := &domain.Student{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Age:       input.Age,
		Grade:     input.Grade,
		Email:     input.Email,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, student); err != nil {
		return nil, s.databaseError(ctx, "create student", err)
	}

	return student, nil
}

// List returns one page of students with pagination metadata and optional
// case-insensitive search over name and email. An empty page is reported as
// not found.
func (s *StudentService) List(ctx context.Context, page, pageSize int, search string) (*dto.StudentListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	skip := int64((page - 1) * pageSize)

	total, err := s.repo.Count(ctx, search)
	if err != nil {
		return nil, s.databaseError(ctx, "count students", err)
	}

	students, err := s.repo.List(ctx, skip, int64(pageSize), search)
	if err != nil {
		return nil, s.databaseError(ctx, "list students", err)
	}
	if len(students) == 0 {
		return nil, apperrors.NewNotFound(apperrors.MsgNoValidStudents)
	}

	data := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		data = append(data, dto.NewStudentResponse(&students[i]))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	response := &dto.StudentListResponse{
		Data: data,
		Pagination: dto.PaginationInfo{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
			HasNext:    int64(page) < totalPages,
			HasPrev:    page > 1,
		},
	}
	if search != "" {
		response.Search = &dto.SearchInfo{Term: search}
	}
	return response, nil
}

func (s *StudentService) Get(ctx context.Context, studentID string) (*domain.Student, error) {
	id, err := parseID(studentID)
	if err != nil {
		return nil, err
	}

	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.databaseError(ctx, "get student by id", err)
	}
	if student == nil {
		return nil, apperrors.NewNotFound(apperrors.MsgStudentNotFound, map[string]any{"student_id": studentID})
	}
	return student, nil
}

func (s *StudentService) Update(ctx context.Context, studentID string, input dto.StudentUpdate) (*domain.Student, error) {
	id, err := parseID(studentID)
	if err != nil {
		return nil, err
	}
	if input.Empty() {
		return nil, apperrors.NewValidation(apperrors.MsgNoUpdateData)
	}

	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.databaseError(ctx, "get student by id", err)
	}
	if student == nil {
		return nil, apperrors.NewNotFound(apperrors.MsgStudentNotFound, map[string]any{"student_id": studentID})
	}

	fields := map[string]any{}
	if input.Name != nil {
		if err := validateName(*input.Name); err != nil {
			return nil, err
		}
		fields["name"] = *input.Name
	}
	if input.Age != nil {
		if err := validateAge(*input.Age); err != nil {
			return nil, err
		}
		fields["age"] = *input.Age
	}
	if input.Grade != nil {
		if err := validateGrade(*input.Grade); err != nil {
			return nil, err
		}
		fields["grade"] = *input.Grade
	}
	if input.Email != nil {
		if err := authservice.ValidateEmail(*input.Email); err != nil {
			return nil, err
		}
		existing, err := s.repo.GetByEmail(ctx, *input.Email)
		if err != nil {
			return nil, s.databaseError(ctx, "get student by email", err)
		}
		if existing != nil && existing.ID != id {
			return nil, apperrors.NewValidation(apperrors.MsgEmailExists, map[string]any{"email": *input.Email})
		}
		fields["email"] = *input.Email
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, s.databaseError(ctx, "update student", err)
	}
	if !updated {
		return nil, apperrors.NewDatabase(apperrors.MsgUpdateFailed)
	}

	refreshed, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.databaseError(ctx, "get student by id", err)
	}
	return refreshed, nil
}

func (s *StudentService) Delete(ctx context.Context, studentID string) error {
	id, err := parseID(studentID)
	if err != nil {
		return err
	}

	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return s.databaseError(ctx, "get student by id", err)
	}
	if student == nil {
		return apperrors.NewNotFound(apperrors.MsgStudentNotFound, map[string]any{"student_id": studentID})
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return s.databaseError(ctx, "delete student", err)
	}
	if !deleted {
		return apperrors.NewDatabase(apperrors.MsgDeleteFailed)
	}
	return nil
}

func (s *StudentService) databaseError(ctx context.Context, op string, err error) error {
	s.log.Error(ctx, "student store operation failed", "op", op, "error", err)
	return apperrors.NewDatabase(apperrors.MsgDatabaseError)
}
