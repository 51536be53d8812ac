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

// CourseService handles course-related operations
type CourseService struct {
	uow *UnitOfWork
}

// NewCourseService creates a new course service instance
func NewCourseService(uow *UnitOfWork) *CourseService {
	return &CourseService{uow: uow}
}

func findCourse(ctx context.Context, repo repositories.Repository, id int64) (*models.Course, error) {
	course, err := repo.FindCourse(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// validateCourse runs the rules shared by create and update: department
// reference, code uniqueness and credit bounds, in that order.
func validateCourse(ctx context.Context, repo repositories.Repository, course *models.Course) error {
	if course.DepartmentID == nil {
		return apperrors.ErrCourseDepartmentNeeded
	}
	if _, err := findDepartment(ctx, repo, *course.DepartmentID); err != nil {
		return err
	}

	if course.Code != "" {
		courses, err := repo.ListCourses(ctx)
		if err != nil {
			return err
		}
		for _, c := range courses {
			if c.ID != course.ID && validation.SameText(c.Code, course.Code) {
				return apperrors.ErrCourseCodeTaken
			}
		}
	}

	credits := validation.NewNumericValidation(course.Credits).
		WithMin(MinCourseCredits).
		WithMax(MaxCourseCredits)
	if !credits.Validate() {
		return apperrors.ErrCourseCreditsInvalid
	}
	return nil
}

// Create creates a new course. On success course.ID holds the new ID.
func (s *CourseService) Create(ctx context.Context, course *models.Course) Result {
	op := operation{name: "course.create", verb: "creating", entity: "course", success: "Course created successfully."}
	return s.uow.execute(ctx, op, func(repo repositories.Repository) error {
		course.ID = 0
		course.Code = strings.TrimSpace(course.Code)
		if err := validateCourse(ctx, repo, course); err != nil {
			return err
		}

		repo.AddCourse(course)
		return save(ctx, repo, apperrors.ErrCourseCodeTaken)
	})
}

// Update replaces an existing course that is still active and not archived
func (s *CourseService) Update(ctx context.Context, course *models.Course) Result {
	op := operation{name: "course.update", verb: "updating", entity: "course", success: "Course updated successfully."}
	return s.uow.execute(ctx, op, func(repo repositories.Repository) error {
		existing, err := findCourse(ctx, repo, course.ID)
		if err != nil {
			return err
		}
		if !existing.IsActive || existing.IsArchived {
			return apperrors.ErrCourseLocked
		}

		course.Code = strings.TrimSpace(course.Code)
		if err := validateCourse(ctx, repo, course); err != nil {
			return err
		}

		repo.UpdateCourse(course)
		return save(ctx, repo, apperrors.ErrCourseCodeTaken)
	})
}

// Delete deletes a course nobody is enrolled in
func (s *CourseService) Delete(ctx context.Context, id int64) Result {
	op := operation{name: "course.delete", verb: "deleting", entity: "course", success: "Course deleted successfully."}
	return s.uow.execute(ctx, op, func(repo repositories.Repository) error {
		if _, err := findCourse(ctx, repo, id); err != nil {
			return err
		}

		enrollments, err := repo.ListEnrollments(ctx)
		if err != nil {
			return err
		}
		for _, e := range enrollments {
			if e.CourseID == id {
				return apperrors.ErrCourseHasEnrollments
			}
		}

		repo.DeleteCourse(id)
		return save(ctx, repo, nil)
	})
}

// GetAll retrieves all courses
func (s *CourseService) GetAll(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.uow.Store().ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// GetByID retrieves a course by ID
func (s *CourseService) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return findCourse(ctx, s.uow.Store(), id)
}
