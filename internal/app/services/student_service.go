package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/coursemanager/internal/app/models"
	"github.com/yigit/coursemanager/internal/app/repositories"
	"github.com/yigit/coursemanager/internal/pkg/apperrors"
	"github.com/yigit/coursemanager/internal/pkg/validation"
)

// StudentService handles student-related operations
type StudentService struct {
	uow *UnitOfWork
}

// NewStudentService creates a new student service instance
func NewStudentService(uow *UnitOfWork) *StudentService {
	return &StudentService{uow: uow}
}

func findStudent(ctx context.Context, repo repositories.Repository, id int64) (*models.Student, error) {
	student, err := repo.FindStudent(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

// validateStudent runs the rules shared by create and update in order: name
// present, name length, department reference, code and email uniqueness.
func validateStudent(ctx context.Context, repo repositories.Repository, student *models.Student) error {
	name := validation.NewStringValidation(student.FullName)
	if name.IsBlank() {
		return apperrors.ErrStudentNameRequired
	}
	if !name.WithMinLength(MinNameLength).Validate() {
		return apperrors.ErrStudentNameTooShort
	}

	if student.DepartmentID == nil {
		return apperrors.ErrStudentDepartmentNeeded
	}
	if _, err := findDepartment(ctx, repo, *student.DepartmentID); err != nil {
		return err
	}

	if student.Code == "" && student.Email == "" {
		return nil
	}

	students, err := repo.ListStudents(ctx)
	if err != nil {
		return err
	}
	for _, st := range students {
		if st.ID != student.ID && validation.SameText(st.Code, student.Code) {
			return apperrors.ErrStudentCodeTaken
		}
	}
	for _, st := range students {
		if st.ID != student.ID && validation.SameText(st.Email, student.Email) {
			return apperrors.ErrStudentEmailTaken
		}
	}
	return nil
}

func normalizeStudent(student *models.Student) {
	student.FullName = strings.TrimSpace(student.FullName)
	student.Code = strings.TrimSpace(student.Code)
	student.Email = strings.TrimSpace(student.Email)
	if student.DateOfBirth != nil {
		dob := models.DateOnly(*student.DateOfBirth)
		student.DateOfBirth = &dob
	}
}

// Create creates a new student. On success student.ID holds the new ID.
func (s *StudentService) Create(ctx context.Context, student *models.Student) Result {
	op := operation{name: "student.create", verb: "creating", entity: "student", success: "Student created successfully."}
	return s.uow.execute(ctx, op, func(repo repositories.Repository) error {
		student.ID = 0
		normalizeStudent(student)
		if err := validateStudent(ctx, repo, student); err != nil {
			return err
		}

		repo.AddStudent(student)
		return save(ctx, repo, apperrors.ErrStudentCodeTaken)
	})
}

// Update replaces an existing student
func (s *StudentService) Update(ctx context.Context, student *models.Student) Result {
	op := operation{name: "student.update", verb: "updating", entity: "student", success: "Student updated successfully."}
	return s.uow.execute(ctx, op, func(repo repositories.Repository) error {
		if _, err := findStudent(ctx, repo, student.ID); err != nil {
			return err
		}

		normalizeStudent(student)
		if err := validateStudent(ctx, repo, student); err != nil {
			return err
		}

		repo.UpdateStudent(student)
		return save(ctx, repo, apperrors.ErrStudentCodeTaken)
	})
}

// Delete deletes a student without enrollments
func (s *StudentService) Delete(ctx context.Context, id int64) Result {
	op := operation{name: "student.delete", verb: "deleting", entity: "student", success: "Student deleted successfully."}
	return s.uow.execute(ctx, op, func(repo repositories.Repository) error {
		if _, err := findStudent(ctx, repo, id); err != nil {
			return err
		}

		enrollments, err := repo.ListEnrollments(ctx)
		if err != nil {
			return err
		}
		for _, e := range enrollments {
			if e.StudentID == id {
				return apperrors.ErrStudentHasEnrollments
			}
		}

		repo.DeleteStudent(id)
		return save(ctx, repo, nil)
	})
}

// GetAll retrieves all students
func (s *StudentService) GetAll(ctx context.Context) ([]*models.Student, error) {
	students, err := s.uow.Store().ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// GetByID retrieves a student by ID
func (s *StudentService) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return findStudent(ctx, s.uow.Store(), id)
}
