package dto

import (
	"time"

	"github.com/GowthamBk/student-management-api/internal/student/domain"
)

type StudentCreate struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Grade string `json:"grade"`
	Email string `json:"email"`
}

// StudentUpdate carries a partial field set; nil means "leave unchanged".
type StudentUpdate struct {
	Name  *string `json:"name"`
	Age   *int    `json:"age"`
	Grade *string `json:"grade"`
	Email *string `json:"email"`
}

// Empty reports whether no field was provided at all.
func (u StudentUpdate) Empty() bool {
	return u.Name == nil && u.Age == nil && u.Grade == nil && u.Email == nil
}

type StudentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Grade     string    `json:"grade"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewStudentResponse(student *domain.Student) StudentResponse {
	return StudentResponse{
		ID:        student.ID.Hex(),
		Name:      student.Name,
		Age:       student.Age,
		Grade:     student.Grade,
		Email:     student.Email,
		CreatedAt: student.CreatedAt,
	}
}

type PaginationInfo struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

type SearchInfo struct {
	Term string `json:"term"`
}

type StudentListResponse struct {
	Data       []StudentResponse `json:"data"`
	Pagination PaginationInfo    `json:"pagination"`
	Search     *SearchInfo       `json:"search,omitempty"`
}
