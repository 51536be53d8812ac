// Package services holds the business rules of the course manager.
//
// Services defined in this package:
// - DepartmentService: department naming and deletion rules
// - CourseService: course code, credit and lifecycle rules
// - StudentService: student identity and deletion rules
// - EnrollmentService: enrollment and grading engine
//
// Every write operation returns a Result. Rule violations and persistence
// faults are both reported through it; no error escapes to the caller.
package services

import (
	"time"

	"github.com/yigit/coursemanager/internal/pkg/apperrors"
)

// Business rule limits
const (
	MinNameLength        = 3
	MinCourseCredits     = 1
	MaxCourseCredits     = 6
	MinCreditsToEnroll   = 1
	MinEnrollmentAge     = 18
	MaxCoursesPerStudent = 5
	GradingPeriodDays    = 30
	MinGrade             = 0.0
	MaxGrade             = 10.0
)

// Result is the outcome of a write operation. Message is never empty; Code is
// set on failure.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Clock returns the current time. Date rules use its calendar date as today.
type Clock func() time.Time

func succeeded(message string) Result {
	return Result{Success: true, Message: message}
}

func rejected(v *apperrors.RuleViolation) Result {
	return Result{Success: false, Message: v.Message, Code: v.Code}
}
