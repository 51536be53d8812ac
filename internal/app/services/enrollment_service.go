package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/yigit/coursemanager/internal/app/models"
	"github.com/yigit/coursemanager/internal/app/repositories"
	"github.com/yigit/coursemanager/internal/pkg/apperrors"
	"github.com/yigit/coursemanager/internal/pkg/validation"
)

// EnrollmentService validates and commits enrollments and grades.
//
// Operations on the same student are serialized, so two concurrent calls can
// not both pass the duplicate or course-limit checks. Enrollments of a
// student are the only records these checks count.
type EnrollmentService struct {
	uow      *UnitOfWork
	now      Clock
	students *keyedMutex
}

// NewEnrollmentService creates the enrollment engine. A nil clock means
// time.Now.
func NewEnrollmentService(uow *UnitOfWork, clock Clock) *EnrollmentService {
	if clock == nil {
		clock = time.Now
	}
	return &EnrollmentService{
		uow:      uow,
		now:      clock,
		students: newKeyedMutex(),
	}
}

func (s *EnrollmentService) today() time.Time {
	return models.DateOnly(s.now())
}

// ageAt returns the whole years between dob and at, one less when the
// birthday has not yet occurred in at's year.
func ageAt(dob, at time.Time) int {
	age := at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		age--
	}
	return age
}

// withinGradingPeriod reports whether today is at most GradingPeriodDays
// calendar days after the enrollment date.
func withinGradingPeriod(enrollDate, today time.Time) bool {
	days := int(today.Sub(models.DateOnly(enrollDate)).Hours() / 24)
	return days <= GradingPeriodDays
}

// roundGrade keeps two decimals, the precision every store can hold.
func roundGrade(grade float64) float64 {
	return math.Round(grade*100) / 100
}

func findEnrollment(ctx context.Context, repo repositories.Repository, studentID, courseID int64) (*models.Enrollment, error) {
	enrollment, err := repo.FindEnrollment(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, err
	}
	return enrollment, nil
}

// Enroll enrolls a student in a course on enrollDate. The checks run in a
// fixed order and the first failing one decides the result.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID int64, enrollDate time.Time) Result {
	unlock := s.students.Lock(studentID)
	defer unlock()

	op := operation{name: "enrollment.enroll", verb: "enrolling", entity: "student", success: "Student enrolled successfully."}
	return s.uow.execute(ctx, op, func(repo repositories.Repository) error {
		date := models.DateOnly(enrollDate)

		student, err := findStudent(ctx, repo, studentID)
		if err != nil {
			return err
		}
		course, err := findCourse(ctx, repo, courseID)
		if err != nil {
			return err
		}

		if !student.IsActive {
			return apperrors.ErrStudentInactive
		}

		if student.DateOfBirth == nil {
			return apperrors.ErrStudentBirthDateMissing
		}
		if ageAt(*student.DateOfBirth, date) < MinEnrollmentAge {
			return apperrors.ErrStudentUnderage
		}

		if !course.IsActive {
			return apperrors.ErrCourseInactive
		}
		if course.Credits == nil || *course.Credits < MinCreditsToEnroll {
			return apperrors.ErrCourseNoCredits
		}

		enrollments, err := repo.ListEnrollments(ctx)
		if err != nil {
			return err
		}
		taken := 0
		for _, e := range enrollments {
			if e.StudentID != studentID {
				continue
			}
			if e.CourseID == courseID {
				return apperrors.ErrDuplicateEnrollment
			}
			taken++
		}
		if taken >= MaxCoursesPerStudent {
			return apperrors.ErrMaxCoursesExceeded
		}

		if date.Before(s.today()) {
			return apperrors.ErrPastEnrollDate
		}

		if student.DepartmentID == nil || course.DepartmentID == nil || *student.DepartmentID != *course.DepartmentID {
			return apperrors.ErrDepartmentMismatch
		}

		repo.AddEnrollment(&models.Enrollment{
			StudentID:  studentID,
			CourseID:   courseID,
			EnrollDate: date,
		})
		return save(ctx, repo, apperrors.ErrDuplicateEnrollment)
	})
}

// checkGradable runs the grade checks shared by AssignGrade and UpdateGrade:
// existence, range, finalized, grading window.
func (s *EnrollmentService) checkGradable(ctx context.Context, repo repositories.Repository, studentID, courseID int64, grade float64) (*models.Enrollment, error) {
	enrollment, err := findEnrollment(ctx, repo, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if !validation.InRange(grade, MinGrade, MaxGrade) {
		return nil, apperrors.ErrGradeOutOfRange
	}
	if enrollment.IsFinalized {
		return nil, apperrors.ErrGradeFinalized
	}
	if !withinGradingPeriod(enrollment.EnrollDate, s.today()) {
		return nil, apperrors.ErrGradingWindowExpired
	}
	return enrollment, nil
}

func (s *EnrollmentService) setGrade(ctx context.Context, op operation, studentID, courseID int64, grade float64) Result {
	unlock := s.students.Lock(studentID)
	defer unlock()

	return s.uow.execute(ctx, op, func(repo repositories.Repository) error {
		enrollment, err := s.checkGradable(ctx, repo, studentID, courseID, grade)
		if err != nil {
			return err
		}

		rounded := roundGrade(grade)
		enrollment.Grade = &rounded
		repo.UpdateEnrollment(enrollment)
		return save(ctx, repo, nil)
	})
}

// AssignGrade sets the first grade of an enrollment
func (s *EnrollmentService) AssignGrade(ctx context.Context, studentID, courseID int64, grade float64) Result {
	op := operation{name: "enrollment.assign_grade", verb: "assigning", entity: "grade", success: "Grade assigned successfully."}
	return s.setGrade(ctx, op, studentID, courseID, grade)
}

// UpdateGrade revises the grade of an enrollment. The rules are the same as
// for AssignGrade.
func (s *EnrollmentService) UpdateGrade(ctx context.Context, studentID, courseID int64, grade float64) Result {
	op := operation{name: "enrollment.update_grade", verb: "updating", entity: "grade", success: "Grade updated successfully."}
	return s.setGrade(ctx, op, studentID, courseID, grade)
}

// FinalizeGrade locks the grade of an enrollment
func (s *EnrollmentService) FinalizeGrade(ctx context.Context, studentID, courseID int64) Result {
	unlock := s.students.Lock(studentID)
	defer unlock()

	op := operation{name: "enrollment.finalize_grade", verb: "finalizing", entity: "grade", success: "Grade finalized successfully."}
	return s.uow.execute(ctx, op, func(repo repositories.Repository) error {
		enrollment, err := findEnrollment(ctx, repo, studentID, courseID)
		if err != nil {
			return err
		}
		if enrollment.Grade == nil {
			return apperrors.ErrGradeNotAssigned
		}
		if enrollment.IsFinalized {
			return apperrors.ErrGradeFinalized
		}

		enrollment.IsFinalized = true
		repo.UpdateEnrollment(enrollment)
		return save(ctx, repo, nil)
	})
}

// expiredUnfinalized reports whether e is graded, not yet final and past its
// grading period.
func expiredUnfinalized(e *models.Enrollment, today time.Time) bool {
	return !e.IsFinalized && e.Grade != nil && !withinGradingPeriod(e.EnrollDate, today)
}

// FinalizeExpired finalizes every graded enrollment whose grading period has
// ended and returns how many were finalized. Each student is handled under
// its own lock so a grade change in flight is never overwritten.
func (s *EnrollmentService) FinalizeExpired(ctx context.Context) (int, error) {
	enrollments, err := s.uow.Store().ListEnrollments(ctx)
	if err != nil {
		return 0, fmt.Errorf("error retrieving enrollments: %w", err)
	}

	today := s.today()
	var studentIDs []int64
	seen := make(map[int64]bool)
	for _, e := range enrollments {
		if expiredUnfinalized(e, today) && !seen[e.StudentID] {
			seen[e.StudentID] = true
			studentIDs = append(studentIDs, e.StudentID)
		}
	}

	total := 0
	var errs []error
	for _, studentID := range studentIDs {
		n, err := s.finalizeExpiredFor(ctx, studentID, today)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		total += n
	}
	return total, errors.Join(errs...)
}

// finalizeExpiredFor re-reads one student's enrollments under the student
// lock and finalizes the expired ones.
func (s *EnrollmentService) finalizeExpiredFor(ctx context.Context, studentID int64, today time.Time) (int, error) {
	unlock := s.students.Lock(studentID)
	defer unlock()

	op := operation{name: "enrollment.finalize_expired", verb: "finalizing", entity: "grades", success: "Expired grades finalized."}

	finalized := 0
	result := s.uow.execute(ctx, op, func(repo repositories.Repository) error {
		finalized = 0
		enrollments, err := repo.ListEnrollments(ctx)
		if err != nil {
			return err
		}

		for _, e := range enrollments {
			if e.StudentID != studentID || !expiredUnfinalized(e, today) {
				continue
			}
			e.IsFinalized = true
			repo.UpdateEnrollment(e)
			finalized++
		}
		if finalized == 0 {
			return nil
		}
		return save(ctx, repo, nil)
	})
	if !result.Success {
		return 0, fmt.Errorf("student %d: %s", studentID, result.Message)
	}
	return finalized, nil
}

// GetAll retrieves all enrollments
func (s *EnrollmentService) GetAll(ctx context.Context) ([]*models.Enrollment, error) {
	enrollments, err := s.uow.Store().ListEnrollments(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments: %w", err)
	}
	return enrollments, nil
}

// GetByStudent retrieves the enrollments of one student
func (s *EnrollmentService) GetByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	enrollments, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]*models.Enrollment, 0)
	for _, e := range enrollments {
		if e.StudentID == studentID {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}
