package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursemanager/internal/app/models"
	"github.com/yigit/coursemanager/internal/pkg/apperrors"
)

func TestDepartmentRules(t *testing.T) {
	for kind, newStore := range storeKinds() {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(newStore(t))
			it := f.department(t, "Information Technology")

			tests := []struct {
				name string
				dept *models.Department
				want *apperrors.RuleViolation
			}{
				{"empty name", &models.Department{Name: "  "}, apperrors.ErrDepartmentNameInvalid},
				{"short name", &models.Department{Name: "IT"}, apperrors.ErrDepartmentNameInvalid},
				{"duplicate name any case", &models.Department{Name: "information technology"}, apperrors.ErrDepartmentNameTaken},
			}
			for _, tt := range tests {
				res := f.departments.Create(ctx, tt.dept)
				assert.False(t, res.Success, tt.name)
				assert.Equal(t, tt.want.Message, res.Message, tt.name)
				assert.Equal(t, tt.want.Code, res.Code, tt.name)
			}

			res := f.departments.Update(ctx, &models.Department{ID: 999, Name: "Physics"})
			assert.Equal(t, apperrors.ErrDepartmentNotFound.Message, res.Message)

			// Renaming to its own name in another case is allowed
			res = f.departments.Update(ctx, &models.Department{ID: it.ID, Name: "INFORMATION TECHNOLOGY"})
			require.True(t, res.Success, res.Message)
			assert.Equal(t, "Department updated successfully.", res.Message)

			all, err := f.departments.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestDepartmentDeleteBlockedByReferences(t *testing.T) {
	for kind, newStore := range storeKinds() {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(newStore(t))

			withStudent := f.department(t, "Information Technology")
			f.adultStudent(t, "Ada Lovelace", withStudent.ID)
			res := f.departments.Delete(ctx, withStudent.ID)
			assert.False(t, res.Success)
			assert.Equal(t, "A department cannot be deleted if it has students.", res.Message)

			withCourse := f.department(t, "Business Administration")
			f.course(t, "BA101", 3, withCourse.ID)
			res = f.departments.Delete(ctx, withCourse.ID)
			assert.Equal(t, "A department cannot be deleted if it has courses.", res.Message)

			res = f.departments.Delete(ctx, 12345)
			assert.Equal(t, "Department not found.", res.Message)

			empty := f.department(t, "Law School")
			res = f.departments.Delete(ctx, empty.ID)
			assert.True(t, res.Success, res.Message)

			all, err := f.departments.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 2)
		})
	}
}

func TestCourseCreateRules(t *testing.T) {
	for kind, newStore := range storeKinds() {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(newStore(t))
			it := f.department(t, "Information Technology")
			original := f.course(t, "CS101", 3, it.ID)

			tests := []struct {
				name   string
				course *models.Course
				want   *apperrors.RuleViolation
			}{
				{"no department", &models.Course{Code: "X1", Credits: intPtr(3)}, apperrors.ErrCourseDepartmentNeeded},
				{"unknown department", &models.Course{Code: "X1", Credits: intPtr(3), DepartmentID: int64Ptr(999)}, apperrors.ErrDepartmentNotFound},
				{"duplicate code before credits", &models.Course{Code: "cs101", Credits: intPtr(9), DepartmentID: int64Ptr(it.ID)}, apperrors.ErrCourseCodeTaken},
				{"no credits", &models.Course{Code: "X1", DepartmentID: int64Ptr(it.ID)}, apperrors.ErrCourseCreditsInvalid},
				{"zero credits", &models.Course{Code: "X1", Credits: intPtr(0), DepartmentID: int64Ptr(it.ID)}, apperrors.ErrCourseCreditsInvalid},
				{"seven credits", &models.Course{Code: "X1", Credits: intPtr(7), DepartmentID: int64Ptr(it.ID)}, apperrors.ErrCourseCreditsInvalid},
			}
			for _, tt := range tests {
				res := f.courses.Create(ctx, tt.course)
				assert.False(t, res.Success, tt.name)
				assert.Equal(t, tt.want.Message, res.Message, tt.name)
			}

			// Original course is unaffected
			got, err := f.courses.GetByID(ctx, original.ID)
			require.NoError(t, err)
			assert.Equal(t, "CS101", got.Code)
			assert.Equal(t, 3, *got.Credits)

			all, err := f.courses.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)

			// Codes are optional and may repeat when blank
			f.course(t, "", 1, it.ID)
			f.course(t, "", 6, it.ID)
		})
	}
}

func TestCourseUpdateRules(t *testing.T) {
	for kind, newStore := range storeKinds() {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(newStore(t))
			it := f.department(t, "Information Technology")
			c1 := f.course(t, "CS101", 3, it.ID)
			c2 := f.course(t, "CS102", 3, it.ID)

			res := f.courses.Update(ctx, &models.Course{ID: 999, Code: "Z", Credits: intPtr(3), DepartmentID: int64Ptr(it.ID)})
			assert.Equal(t, apperrors.ErrCourseNotFound.Message, res.Message)

			update := *c2
			update.Code = "CS101"
			res = f.courses.Update(ctx, &update)
			assert.Equal(t, apperrors.ErrCourseCodeTaken.Message, res.Message)

			// Keeping its own code is fine
			update = *c1
			update.Title = "Intro to Programming"
			update.Credits = intPtr(4)
			res = f.courses.Update(ctx, &update)
			require.True(t, res.Success, res.Message)

			// Deactivate, then any further update is rejected
			update.IsActive = false
			res = f.courses.Update(ctx, &update)
			require.True(t, res.Success, res.Message)

			update.Title = "Again"
			res = f.courses.Update(ctx, &update)
			assert.Equal(t, "A course cannot be updated if it is inactive or archived.", res.Message)

			archived := *c2
			archived.IsArchived = true
			require.True(t, f.courses.Update(ctx, &archived).Success)
			assert.Equal(t, apperrors.CodeCourseLocked, f.courses.Update(ctx, &archived).Code)
		})
	}
}

func TestCourseDeleteBlockedByEnrollments(t *testing.T) {
	for kind, newStore := range storeKinds() {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(newStore(t))
			it := f.department(t, "Information Technology")
			course := f.course(t, "CS101", 3, it.ID)
			student := f.adultStudent(t, "Ada Lovelace", it.ID)
			insertEnrollment(t, f.store, &models.Enrollment{StudentID: student.ID, CourseID: course.ID, EnrollDate: today})

			res := f.courses.Delete(ctx, course.ID)
			assert.Equal(t, "A course cannot be deleted if students are enrolled.", res.Message)

			_, err := f.courses.GetByID(ctx, course.ID)
			assert.NoError(t, err)
			assert.Equal(t, 1, countEnrollments(t, f.store))

			res = f.courses.Delete(ctx, 999)
			assert.Equal(t, "Course not found.", res.Message)
		})
	}
}

func TestStudentRules(t *testing.T) {
	for kind, newStore := range storeKinds() {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(newStore(t))
			it := f.department(t, "Information Technology")

			ada := models.NewStudent()
			ada.Code = "S001"
			ada.Email = "ada@example.com"
			ada.FullName = "Ada Lovelace"
			ada.DepartmentID = int64Ptr(it.ID)
			require.True(t, f.students.Create(ctx, ada).Success)

			tests := []struct {
				name    string
				student *models.Student
				want    *apperrors.RuleViolation
			}{
				{"blank name", &models.Student{FullName: " ", DepartmentID: int64Ptr(it.ID)}, apperrors.ErrStudentNameRequired},
				{"short name", &models.Student{FullName: "Al", DepartmentID: int64Ptr(it.ID)}, apperrors.ErrStudentNameTooShort},
				{"no department", &models.Student{FullName: "Alan Turing"}, apperrors.ErrStudentDepartmentNeeded},
				{"unknown department", &models.Student{FullName: "Alan Turing", DepartmentID: int64Ptr(77)}, apperrors.ErrDepartmentNotFound},
				{"code taken", &models.Student{FullName: "Alan Turing", Code: "s001", Email: "ada@example.com", DepartmentID: int64Ptr(it.ID)}, apperrors.ErrStudentCodeTaken},
				{"email taken", &models.Student{FullName: "Alan Turing", Email: "ADA@example.com", DepartmentID: int64Ptr(it.ID)}, apperrors.ErrStudentEmailTaken},
			}
			for _, tt := range tests {
				res := f.students.Create(ctx, tt.student)
				assert.False(t, res.Success, tt.name)
				assert.Equal(t, tt.want.Message, res.Message, tt.name)
			}

			res := f.students.Update(ctx, &models.Student{ID: 404, FullName: "Nobody Here", DepartmentID: int64Ptr(it.ID)})
			assert.Equal(t, "Student not found.", res.Message)

			renamed := *ada
			renamed.FullName = "Ada King"
			res = f.students.Update(ctx, &renamed)
			require.True(t, res.Success, res.Message)
			assert.Equal(t, "Student updated successfully.", res.Message)

			got, err := f.students.GetByID(ctx, ada.ID)
			require.NoError(t, err)
			assert.Equal(t, "Ada King", got.FullName)
			assert.Equal(t, "S001", got.Code)
		})
	}
}

func TestStudentDeleteBlockedByEnrollments(t *testing.T) {
	for kind, newStore := range storeKinds() {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(newStore(t))
			it := f.department(t, "Information Technology")
			course := f.course(t, "CS101", 3, it.ID)
			enrolled := f.adultStudent(t, "Ada Lovelace", it.ID)
			free := f.adultStudent(t, "Alan Turing", it.ID)
			insertEnrollment(t, f.store, &models.Enrollment{StudentID: enrolled.ID, CourseID: course.ID, EnrollDate: today})

			res := f.students.Delete(ctx, enrolled.ID)
			assert.Equal(t, "A student cannot be deleted if the student has enrollments.", res.Message)

			res = f.students.Delete(ctx, free.ID)
			assert.True(t, res.Success, res.Message)

			all, err := f.students.GetAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, enrolled.ID, all[0].ID)
		})
	}
}

func TestPersistenceFaultBecomesResult(t *testing.T) {
	for kind, newStore := range storeKinds() {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			store := &failingStore{Store: newStore(t), failAfter: 1}
			f := newFixture(store)
			it := f.department(t, "Information Technology")

			res := f.departments.Create(ctx, &models.Department{Name: "Physics"})
			assert.False(t, res.Success)
			assert.Equal(t, "Error creating department: disk full", res.Message)
			assert.Equal(t, apperrors.CodePersistence, res.Code)

			res = f.departments.Delete(ctx, it.ID)
			assert.Equal(t, "Error deleting department: disk full", res.Message)

			all, err := f.departments.GetAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}
