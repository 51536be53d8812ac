package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/yigit/coursemanager/internal/app/migrations"
	"github.com/yigit/coursemanager/internal/app/models"
	"github.com/yigit/coursemanager/internal/app/repositories"
)

var errDiskFull = errors.New("disk full")

// today is the fixed "now" of every service test
var today = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return today }

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }

func floatPtr(v float64) *float64 { return &v }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

var dbSeq atomic.Int64

func newSQLiteStore(t *testing.T) repositories.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", dbSeq.Add(1))
	database, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	require.NoError(t, migrations.NewMigrator(database, repositories.DialectSQLite).Migrate(context.Background()))

	store := repositories.NewSQLStore(database, repositories.DialectSQLite)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// storeKinds runs service tests against a store without transactions and one
// with them.
func storeKinds() map[string]func(t *testing.T) repositories.Store {
	return map[string]func(t *testing.T) repositories.Store{
		"memory": func(*testing.T) repositories.Store { return repositories.NewMemoryStore() },
		"sqlite": newSQLiteStore,
	}
}

// failingStore fails every Save after failAfter successful ones.
type failingStore struct {
	repositories.Store
	failAfter int
	saves     int
}

func (f *failingStore) shouldFail() bool {
	f.saves++
	return f.saves > f.failAfter
}

func (f *failingStore) Save(ctx context.Context) (int, error) {
	if f.shouldFail() {
		if m, ok := f.Store.(*repositories.MemoryStore); ok {
			m.Discard()
		}
		return 0, errDiskFull
	}
	return f.Store.Save(ctx)
}

func (f *failingStore) Begin(ctx context.Context) (repositories.Tx, error) {
	tx, err := f.Store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &failingTx{Tx: tx, parent: f}, nil
}

type failingTx struct {
	repositories.Tx
	parent *failingStore
}

func (f *failingTx) Save(ctx context.Context) (int, error) {
	if f.parent.shouldFail() {
		return 0, errDiskFull
	}
	return f.Tx.Save(ctx)
}

// fixture bundles the services over one store
type fixture struct {
	store       repositories.Store
	departments *DepartmentService
	courses     *CourseService
	students    *StudentService
	enrollments *EnrollmentService
}

func newFixture(store repositories.Store) *fixture {
	uow := NewUnitOfWork(store, zerolog.Nop())
	return &fixture{
		store:       store,
		departments: NewDepartmentService(uow),
		courses:     NewCourseService(uow),
		students:    NewStudentService(uow),
		enrollments: NewEnrollmentService(uow, fixedClock),
	}
}

func (f *fixture) department(t *testing.T, name string) *models.Department {
	t.Helper()
	d := &models.Department{Name: name}
	res := f.departments.Create(context.Background(), d)
	require.True(t, res.Success, res.Message)
	return d
}

func (f *fixture) course(t *testing.T, code string, credits int, deptID int64) *models.Course {
	t.Helper()
	c := models.NewCourse()
	c.Code = code
	c.Title = "Course " + code
	c.Credits = intPtr(credits)
	c.DepartmentID = int64Ptr(deptID)
	res := f.courses.Create(context.Background(), c)
	require.True(t, res.Success, res.Message)
	return c
}

func (f *fixture) student(t *testing.T, name string, deptID int64, dob *time.Time) *models.Student {
	t.Helper()
	s := models.NewStudent()
	s.FullName = name
	s.DepartmentID = int64Ptr(deptID)
	s.DateOfBirth = dob
	res := f.students.Create(context.Background(), s)
	require.True(t, res.Success, res.Message)
	return s
}

// adultStudent is 26 on the test day
func (f *fixture) adultStudent(t *testing.T, name string, deptID int64) *models.Student {
	return f.student(t, name, deptID, datePtr(2000, time.January, 15))
}

// insertEnrollment writes an enrollment directly, bypassing the rules.
func insertEnrollment(t *testing.T, store repositories.Store, e *models.Enrollment) {
	t.Helper()
	store.AddEnrollment(e)
	_, err := store.Save(context.Background())
	require.NoError(t, err)
}

func countEnrollments(t *testing.T, store repositories.Store) int {
	t.Helper()
	all, err := store.ListEnrollments(context.Background())
	require.NoError(t, err)
	return len(all)
}
