package dto

import (
	"fmt"
	"time"

	"github.com/yigit/coursemanager/internal/app/models"
)

// StudentRequest represents student create and update data
type StudentRequest struct {
	Code         string `json:"code,omitempty" binding:"omitempty,code" example:"S001"`
	FullName     string `json:"fullName" binding:"max=200" example:"John Doe"`
	Email        string `json:"email,omitempty" binding:"omitempty,email" example:"john@school.edu"`
	DepartmentID *int64 `json:"departmentId" example:"1"`
	DateOfBirth  string `json:"dateOfBirth,omitempty" binding:"omitempty,datetime=2006-01-02" example:"2000-01-15"`
	IsActive     *bool  `json:"isActive,omitempty" example:"true"`
}

// ToModel converts the request into a student with the given ID
func (r *StudentRequest) ToModel(id int64) (*models.Student, error) {
	student := models.NewStudent()
	student.ID = id
	if err := r.ApplyTo(student); err != nil {
		return nil, err
	}
	return student, nil
}

// ApplyTo copies the fields present in the request onto student. Empty
// strings and missing values leave the current value in place.
func (r *StudentRequest) ApplyTo(student *models.Student) error {
	if r.Code != "" {
		student.Code = r.Code
	}
	if r.FullName != "" {
		student.FullName = r.FullName
	}
	if r.Email != "" {
		student.Email = r.Email
	}
	if r.DepartmentID != nil {
		student.DepartmentID = r.DepartmentID
	}
	if r.IsActive != nil {
		student.IsActive = *r.IsActive
	}

	if r.DateOfBirth != "" {
		dob, err := time.Parse(models.DateLayout, r.DateOfBirth)
		if err != nil {
			return fmt.Errorf("invalid dateOfBirth: %w", err)
		}
		student.DateOfBirth = &dob
	}
	return nil
}

// StudentResponse represents a student with its birth date as a calendar date
type StudentResponse struct {
	ID           int64  `json:"id" example:"1"`
	Code         string `json:"code,omitempty" example:"S001"`
	FullName     string `json:"fullName" example:"John Doe"`
	Email        string `json:"email,omitempty" example:"john@school.edu"`
	DepartmentID *int64 `json:"departmentId" example:"1"`
	DateOfBirth  string `json:"dateOfBirth,omitempty" example:"2000-01-15"`
	IsActive     bool   `json:"isActive" example:"true"`
}

// NewStudentResponse converts a student model
func NewStudentResponse(s *models.Student) StudentResponse {
	resp := StudentResponse{
		ID:           s.ID,
		Code:         s.Code,
		FullName:     s.FullName,
		Email:        s.Email,
		DepartmentID: s.DepartmentID,
		IsActive:     s.IsActive,
	}
	if s.DateOfBirth != nil {
		resp.DateOfBirth = s.DateOfBirth.Format(models.DateLayout)
	}
	return resp
}

// NewStudentResponses converts a list of student models
func NewStudentResponses(students []*models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentResponse(s))
	}
	return out
}
