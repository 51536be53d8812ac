package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID           int64      `json:"id" db:"id" example:"1"`
	Code         string     `json:"code,omitempty" db:"code" example:"S001"` // Optional, unique case-insensitive
	FullName     string     `json:"fullName" db:"full_name" example:"John Doe"`
	Email        string     `json:"email,omitempty" db:"email" example:"john@school.edu"` // Optional, unique case-insensitive
	DepartmentID *int64     `json:"departmentId" db:"department_id" example:"1"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	IsActive     bool       `json:"isActive" db:"is_active" example:"true"`
}

// NewStudent returns a student with the storage defaults applied.
func NewStudent() *Student {
	return &Student{IsActive: true}
}
