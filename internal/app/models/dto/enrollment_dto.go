package dto

import (
	"time"

	"github.com/yigit/coursemanager/internal/app/models"
)

// EnrollRequest represents an enrollment. An empty enrollDate means today.
type EnrollRequest struct {
	StudentID  int64  `json:"studentId" binding:"required,gt=0" example:"1"`
	CourseID   int64  `json:"courseId" binding:"required,gt=0" example:"1"`
	EnrollDate string `json:"enrollDate,omitempty" binding:"omitempty,datetime=2006-01-02" example:"2026-03-10"`
}

// Date returns the requested enrollment date, or now when none was given
func (r *EnrollRequest) Date(now time.Time) time.Time {
	if r.EnrollDate == "" {
		return now
	}
	// Format already checked by the datetime binding
	date, err := time.Parse(models.DateLayout, r.EnrollDate)
	if err != nil {
		return now
	}
	return date
}

// GradeRequest represents a grade assignment or revision
type GradeRequest struct {
	Grade *float64 `json:"grade" binding:"required" example:"8.5"`
}

// EnrollmentResponse represents an enrollment with its date as a calendar date
type EnrollmentResponse struct {
	StudentID   int64    `json:"studentId" example:"1"`
	CourseID    int64    `json:"courseId" example:"1"`
	EnrollDate  string   `json:"enrollDate" example:"2026-03-10"`
	Grade       *float64 `json:"grade,omitempty" example:"8.5"`
	IsFinalized bool     `json:"isFinalized" example:"false"`
}

// NewEnrollmentResponses converts a list of enrollment models
func NewEnrollmentResponses(enrollments []*models.Enrollment) []EnrollmentResponse {
	out := make([]EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		out = append(out, EnrollmentResponse{
			StudentID:   e.StudentID,
			CourseID:    e.CourseID,
			EnrollDate:  e.EnrollDate.Format(models.DateLayout),
			Grade:       e.Grade,
			IsFinalized: e.IsFinalized,
		})
	}
	return out
}
