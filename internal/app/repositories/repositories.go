package repositories

import (
	"context"
	"errors"

	"github.com/yigit/coursemanager/internal/app/models"
)

// Store error types
var (
	ErrNotFound                = errors.New("record not found")
	ErrConflict                = errors.New("record conflicts with an existing record")
	ErrTransactionsUnsupported = errors.New("store does not support transactions")
	ErrTxDone                  = errors.New("transaction has already been committed or rolled back")
)

// DepartmentRepository reads departments and stages department writes.
type DepartmentRepository interface {
	FindDepartment(ctx context.Context, id int64) (*models.Department, error)
	ListDepartments(ctx context.Context) ([]*models.Department, error)
	AddDepartment(department *models.Department)
	UpdateDepartment(department *models.Department)
	DeleteDepartment(id int64)
}

// CourseRepository reads courses and stages course writes.
type CourseRepository interface {
	FindCourse(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context) ([]*models.Course, error)
	AddCourse(course *models.Course)
	UpdateCourse(course *models.Course)
	DeleteCourse(id int64)
}

// StudentRepository reads students and stages student writes.
type StudentRepository interface {
	FindStudent(ctx context.Context, id int64) (*models.Student, error)
	ListStudents(ctx context.Context) ([]*models.Student, error)
	AddStudent(student *models.Student)
	UpdateStudent(student *models.Student)
	DeleteStudent(id int64)
}

// EnrollmentRepository reads enrollments and stages enrollment writes.
type EnrollmentRepository interface {
	FindEnrollment(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	ListEnrollments(ctx context.Context) ([]*models.Enrollment, error)
	AddEnrollment(enrollment *models.Enrollment)
	UpdateEnrollment(enrollment *models.Enrollment)
	DeleteEnrollment(studentID, courseID int64)
}

// Repository is the unit of work seen by the services. Reads return persisted
// state; Add/Update/Delete only stage changes until Save flushes them. Save
// applies every staged change or none of them and reports how many records
// were affected. Generated IDs are written back to staged entities.
type Repository interface {
	DepartmentRepository
	CourseRepository
	StudentRepository
	EnrollmentRepository
	Save(ctx context.Context) (int, error)
}

// Store is a Repository that may also open transactions.
type Store interface {
	Repository
	// SupportsTransactions reports whether Begin can be used. Stores that
	// return false must return ErrTransactionsUnsupported from Begin.
	SupportsTransactions() bool
	Begin(ctx context.Context) (Tx, error)
	Close() error
}

// Tx is a Repository scoped to one transaction.
type Tx interface {
	Repository
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
