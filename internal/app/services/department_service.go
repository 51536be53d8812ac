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

// DepartmentService handles department-related operations
type DepartmentService struct {
	uow *UnitOfWork
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(uow *UnitOfWork) *DepartmentService {
	return &DepartmentService{uow: uow}
}

// validateDepartmentName checks the length rule and that no other department uses the
// name. excludeID is the department being updated, 0 on create.
func validateDepartmentName(ctx context.Context, repo repositories.Repository, name string, excludeID int64) error {
	if !validation.NewStringValidation(name).WithMinLength(MinNameLength).Validate() {
		return apperrors.ErrDepartmentNameInvalid
	}

	departments, err := repo.ListDepartments(ctx)
	if err != nil {
		return err
	}
	for _, d := range departments {
		if d.ID != excludeID && validation.SameText(d.Name, name) {
			return apperrors.ErrDepartmentNameTaken
		}
	}
	return nil
}

// findDepartment loads a department, mapping a miss to the rule violation.
func findDepartment(ctx context.Context, repo repositories.Repository, id int64) (*models.Department, error) {
	department, err := repo.FindDepartment(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, err
	}
	return department, nil
}

// Create creates a new department. On success department.ID holds the new ID.
func (s *DepartmentService) Create(ctx context.Context, department *models.Department) Result {
	op := operation{name: "department.create", verb: "creating", entity: "department", success: "Department created successfully."}
	return s.uow.execute(ctx, op, func(repo repositories.Repository) error {
		department.Name = strings.TrimSpace(department.Name)
		if err := validateDepartmentName(ctx, repo, department.Name, 0); err != nil {
			return err
		}

		repo.AddDepartment(department)
		return save(ctx, repo, apperrors.ErrDepartmentNameTaken)
	})
}

// Update updates an existing department
func (s *DepartmentService) Update(ctx context.Context, department *models.Department) Result {
	op := operation{name: "department.update", verb: "updating", entity: "department", success: "Department updated successfully."}
	return s.uow.execute(ctx, op, func(repo repositories.Repository) error {
		if _, err := findDepartment(ctx, repo, department.ID); err != nil {
			return err
		}

		department.Name = strings.TrimSpace(department.Name)
		if err := validateDepartmentName(ctx, repo, department.Name, department.ID); err != nil {
			return err
		}

		repo.UpdateDepartment(department)
		return save(ctx, repo, apperrors.ErrDepartmentNameTaken)
	})
}

// Delete deletes a department that no student or course references
func (s *DepartmentService) Delete(ctx context.Context, id int64) Result {
	op := operation{name: "department.delete", verb: "deleting", entity: "department", success: "Department deleted successfully."}
	return s.uow.execute(ctx, op, func(repo repositories.Repository) error {
		if _, err := findDepartment(ctx, repo, id); err != nil {
			return err
		}

		students, err := repo.ListStudents(ctx)
		if err != nil {
			return err
		}
		for _, st := range students {
			if st.DepartmentID != nil && *st.DepartmentID == id {
				return apperrors.ErrDepartmentHasStudents
			}
		}

		courses, err := repo.ListCourses(ctx)
		if err != nil {
			return err
		}
		for _, c := range courses {
			if c.DepartmentID != nil && *c.DepartmentID == id {
				return apperrors.ErrDepartmentHasCourses
			}
		}

		repo.DeleteDepartment(id)
		return save(ctx, repo, nil)
	})
}

// GetAll retrieves all departments
func (s *DepartmentService) GetAll(ctx context.Context) ([]*models.Department, error) {
	departments, err := s.uow.Store().ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving departments: %w", err)
	}
	return departments, nil
}

// GetByID retrieves a department by ID
func (s *DepartmentService) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	return findDepartment(ctx, s.uow.Store(), id)
}

// FindByName returns the department with the given name, compared
// case-insensitively, or nil when there is none.
func (s *DepartmentService) FindByName(ctx context.Context, name string) (*models.Department, error) {
	departments, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range departments {
		if validation.SameText(d.Name, name) {
			return d, nil
		}
	}
	return nil, nil
}
