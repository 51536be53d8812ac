package models

// Course represents a course offered by a department.
type Course struct {
	ID           int64  `json:"id" db:"id" example:"1"`
	Code         string `json:"code,omitempty" db:"code" example:"CS101"` // Optional, unique case-insensitive
	Title        string `json:"title" db:"title" example:"Programming"`
	Credits      *int   `json:"credits" db:"credits" example:"3"`              // Nullable in storage
	DepartmentID *int64 `json:"departmentId" db:"department_id" example:"1"` // Nullable in storage
	IsActive     bool   `json:"isActive" db:"is_active" example:"true"`
	IsArchived   bool   `json:"isArchived" db:"is_archived" example:"false"`
}

// NewCourse returns a course with the storage defaults applied.
func NewCourse() *Course {
	return &Course{IsActive: true}
}
