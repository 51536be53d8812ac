package models

import "time"

// Enrollment links a student to a course. The pair (StudentID, CourseID) is
// the key; there is at most one enrollment per pair.
type Enrollment struct {
	StudentID   int64     `json:"studentId" db:"student_id" example:"1"`
	CourseID    int64     `json:"courseId" db:"course_id" example:"1"`
	EnrollDate  time.Time `json:"enrollDate" db:"enroll_date"`
	Grade       *float64  `json:"grade,omitempty" db:"grade" example:"8.5"` // Null until assigned
	IsFinalized bool      `json:"isFinalized" db:"is_finalized" example:"false"`
}

// EnrollmentKey identifies an enrollment.
type EnrollmentKey struct {
	StudentID int64
	CourseID  int64
}

// Key returns the composite key of the enrollment.
func (e *Enrollment) Key() EnrollmentKey {
	return EnrollmentKey{StudentID: e.StudentID, CourseID: e.CourseID}
}
