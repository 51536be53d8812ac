package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/yigit/coursemanager/internal/app/models"
	"github.com/yigit/coursemanager/internal/pkg/dberrors"
	"github.com/yigit/coursemanager/internal/pkg/helpers"
)

// Dialect selects placeholder and value conventions of the SQL backend.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

var (
	_ Store = (*SQLStore)(nil)
	_ Tx    = (*sqlTx)(nil)
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqlChange is a staged write executed by Save.
type sqlChange func(ctx context.Context, q queryer) (int, error)

// sqlRepository implements Repository on top of a queryer. run decides the
// transactional scope in which staged changes are flushed.
type sqlRepository struct {
	q       queryer
	dialect Dialect
	run     func(ctx context.Context, fn func(q queryer) error) error

	mu      sync.Mutex
	pending []sqlChange
}

// SQLStore is a Store backed by PostgreSQL or SQLite through database/sql.
type SQLStore struct {
	*sqlRepository
	db *sql.DB
}

// NewSQLStore creates a store over an open database. The schema must already
// be migrated.
func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	s := &SQLStore{db: db}
	s.sqlRepository = &sqlRepository{
		q:       db,
		dialect: dialect,
		run:     s.withTransaction,
	}
	return s
}

// SupportsTransactions reports true; both SQL backends are transactional.
func (s *SQLStore) SupportsTransactions() bool { return true }

// Begin opens a transaction. Reads through the returned Tx observe its own
// flushed writes.
func (s *SQLStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	t := &sqlTx{tx: tx}
	t.sqlRepository = &sqlRepository{
		q:       tx,
		dialect: s.dialect,
		run: func(ctx context.Context, fn func(q queryer) error) error {
			if t.done {
				return ErrTxDone
			}
			return fn(tx)
		},
	}
	return t, nil
}

// Close closes the underlying database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// withTransaction runs fn within a short-lived transaction of its own.
func (s *SQLStore) withTransaction(ctx context.Context, fn func(q queryer) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type sqlTx struct {
	*sqlRepository
	tx   *sql.Tx
	done bool
}

// Commit commits the transaction. Unsaved staged changes are discarded.
func (t *sqlTx) Commit(context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	t.discard()
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback aborts the transaction and discards staged changes.
func (t *sqlTx) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.discard()
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

func (r *sqlRepository) stage(change sqlChange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, change)
}

func (r *sqlRepository) discard() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = nil
}

// Save flushes staged changes in order and returns the affected row count.
func (r *sqlRepository) Save(ctx context.Context) (int, error) {
	r.mu.Lock()
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	if len(pending) == 0 {
		return 0, nil
	}

	affected := 0
	err := r.run(ctx, func(q queryer) error {
		for _, change := range pending {
			n, err := change(ctx, q)
			if err != nil {
				return err
			}
			affected += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// rebind converts '?' placeholders into the dialect's form.
func (r *sqlRepository) rebind(query string) string {
	if r.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// dateArg encodes a calendar date for the dialect.
func (r *sqlRepository) dateArg(t time.Time) any {
	if r.dialect == DialectSQLite {
		return models.DateOnly(t).Format(models.DateLayout)
	}
	return models.DateOnly(t)
}

func (r *sqlRepository) nullDateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return r.dateArg(*t)
}

func (r *sqlRepository) exec(ctx context.Context, q queryer, query string, args ...any) (int, error) {
	res, err := q.ExecContext(ctx, r.rebind(query), args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *sqlRepository) insertReturningID(ctx context.Context, q queryer, query string, args ...any) (int64, error) {
	var id int64
	if err := q.QueryRowContext(ctx, r.rebind(query), args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return 0, err
	}
	return id, nil
}

// requireRow turns a zero-row update into ErrNotFound.
func requireRow(what string, n int, err error) (int, error) {
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return n, nil
}

// --- Departments ---

const departmentColumns = `id, name, description`

func scanDepartment(row interface{ Scan(...any) error }) (*models.Department, error) {
	var d models.Department
	var description sql.NullString
	if err := row.Scan(&d.ID, &d.Name, &description); err != nil {
		return nil, err
	}
	if description.Valid {
		d.Description = &description.String
	}
	return &d, nil
}

// FindDepartment retrieves a department by ID
func (r *sqlRepository) FindDepartment(ctx context.Context, id int64) (*models.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments WHERE id = ?`
	d, err := scanDepartment(r.q.QueryRowContext(ctx, r.rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("department %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}
	return d, nil
}

// ListDepartments retrieves all departments
func (r *sqlRepository) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments ORDER BY id`
	rows, err := r.q.QueryContext(ctx, r.rebind(query))
	if err != nil {
		return nil, fmt.Errorf("error retrieving departments: %w", err)
	}
	defer rows.Close()

	departments := make([]*models.Department, 0)
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// AddDepartment stages a department insert
func (r *sqlRepository) AddDepartment(department *models.Department) {
	r.stage(func(ctx context.Context, q queryer) (int, error) {
		id, err := r.insertReturningID(ctx, q,
			`INSERT INTO departments (name, description) VALUES (?, ?) RETURNING id`,
			department.Name, helpers.GetNullString(department.Description))
		if err != nil {
			return 0, fmt.Errorf("error inserting department: %w", err)
		}
		department.ID = id
		return 1, nil
	})
}

// UpdateDepartment stages a department update
func (r *sqlRepository) UpdateDepartment(department *models.Department) {
	d := *department
	r.stage(func(ctx context.Context, q queryer) (int, error) {
		n, err := r.exec(ctx, q,
			`UPDATE departments SET name = ?, description = ? WHERE id = ?`,
			d.Name, helpers.GetNullString(d.Description), d.ID)
		return requireRow(fmt.Sprintf("department %d", d.ID), n, err)
	})
}

// DeleteDepartment stages a department delete
func (r *sqlRepository) DeleteDepartment(id int64) {
	r.stage(func(ctx context.Context, q queryer) (int, error) {
		return r.exec(ctx, q, `DELETE FROM departments WHERE id = ?`, id)
	})
}

// --- Courses ---

const courseColumns = `id, code, title, credits, department_id, is_active, is_archived`

func scanCourse(row interface{ Scan(...any) error }) (*models.Course, error) {
	var c models.Course
	var code, title sql.NullString
	var credits, departmentID sql.NullInt64
	if err := row.Scan(&c.ID, &code, &title, &credits, &departmentID, &c.IsActive, &c.IsArchived); err != nil {
		return nil, err
	}
	c.Code = code.String
	c.Title = title.String
	if credits.Valid {
		v := int(credits.Int64)
		c.Credits = &v
	}
	if departmentID.Valid {
		c.DepartmentID = &departmentID.Int64
	}
	return &c, nil
}

func courseArgs(c *models.Course) []any {
	return []any{helpers.GetContentNullString(c.Code), c.Title, helpers.GetNullInt(c.Credits), helpers.GetNullInt64(c.DepartmentID), c.IsActive, c.IsArchived}
}

// FindCourse retrieves a course by ID
func (r *sqlRepository) FindCourse(ctx context.Context, id int64) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = ?`
	c, err := scanCourse(r.q.QueryRowContext(ctx, r.rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("course %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return c, nil
}

// ListCourses retrieves all courses
func (r *sqlRepository) ListCourses(ctx context.Context) ([]*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY id`
	rows, err := r.q.QueryContext(ctx, r.rebind(query))
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// AddCourse stages a course insert
func (r *sqlRepository) AddCourse(course *models.Course) {
	r.stage(func(ctx context.Context, q queryer) (int, error) {
		id, err := r.insertReturningID(ctx, q,
			`INSERT INTO courses (code, title, credits, department_id, is_active, is_archived)
			VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
			courseArgs(course)...)
		if err != nil {
			return 0, fmt.Errorf("error inserting course: %w", err)
		}
		course.ID = id
		return 1, nil
	})
}

// UpdateCourse stages a course update
func (r *sqlRepository) UpdateCourse(course *models.Course) {
	c := *course
	r.stage(func(ctx context.Context, q queryer) (int, error) {
		args := append(courseArgs(&c), c.ID)
		n, err := r.exec(ctx, q,
			`UPDATE courses
			SET code = ?, title = ?, credits = ?, department_id = ?, is_active = ?, is_archived = ?
			WHERE id = ?`,
			args...)
		return requireRow(fmt.Sprintf("course %d", c.ID), n, err)
	})
}

// DeleteCourse stages a course delete
func (r *sqlRepository) DeleteCourse(id int64) {
	r.stage(func(ctx context.Context, q queryer) (int, error) {
		return r.exec(ctx, q, `DELETE FROM courses WHERE id = ?`, id)
	})
}

// --- Students ---

const studentColumns = `id, code, full_name, email, department_id, date_of_birth, is_active`

func scanStudent(row interface{ Scan(...any) error }) (*models.Student, error) {
	var st models.Student
	var code, fullName, email sql.NullString
	var departmentID sql.NullInt64
	var dob nullDate
	if err := row.Scan(&st.ID, &code, &fullName, &email, &departmentID, &dob, &st.IsActive); err != nil {
		return nil, err
	}
	st.Code = code.String
	st.FullName = fullName.String
	st.Email = email.String
	if departmentID.Valid {
		st.DepartmentID = &departmentID.Int64
	}
	if dob.Valid {
		st.DateOfBirth = &dob.Time
	}
	return &st, nil
}

func (r *sqlRepository) studentArgs(st *models.Student) []any {
	return []any{helpers.GetContentNullString(st.Code), st.FullName, helpers.GetContentNullString(st.Email), helpers.GetNullInt64(st.DepartmentID), r.nullDateArg(st.DateOfBirth), st.IsActive}
}

// FindStudent retrieves a student by ID
func (r *sqlRepository) FindStudent(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = ?`
	st, err := scanStudent(r.q.QueryRowContext(ctx, r.rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("student %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return st, nil
}

// ListStudents retrieves all students
func (r *sqlRepository) ListStudents(ctx context.Context) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY id`
	rows, err := r.q.QueryContext(ctx, r.rebind(query))
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, st)
	}
	return students, rows.Err()
}

// AddStudent stages a student insert
func (r *sqlRepository) AddStudent(student *models.Student) {
	r.stage(func(ctx context.Context, q queryer) (int, error) {
		id, err := r.insertReturningID(ctx, q,
			`INSERT INTO students (code, full_name, email, department_id, date_of_birth, is_active)
			VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
			r.studentArgs(student)...)
		if err != nil {
			return 0, fmt.Errorf("error inserting student: %w", err)
		}
		student.ID = id
		return 1, nil
	})
}

// UpdateStudent stages a student update
func (r *sqlRepository) UpdateStudent(student *models.Student) {
	st := *student
	r.stage(func(ctx context.Context, q queryer) (int, error) {
		args := append(r.studentArgs(&st), st.ID)
		n, err := r.exec(ctx, q,
			`UPDATE students
			SET code = ?, full_name = ?, email = ?, department_id = ?, date_of_birth = ?, is_active = ?
			WHERE id = ?`,
			args...)
		return requireRow(fmt.Sprintf("student %d", st.ID), n, err)
	})
}

// DeleteStudent stages a student delete
func (r *sqlRepository) DeleteStudent(id int64) {
	r.stage(func(ctx context.Context, q queryer) (int, error) {
		return r.exec(ctx, q, `DELETE FROM students WHERE id = ?`, id)
	})
}

// --- Enrollments ---

const enrollmentColumns = `student_id, course_id, enroll_date, grade, is_finalized`

func scanEnrollment(row interface{ Scan(...any) error }) (*models.Enrollment, error) {
	var e models.Enrollment
	var enrollDate nullDate
	var grade sql.NullFloat64
	if err := row.Scan(&e.StudentID, &e.CourseID, &enrollDate, &grade, &e.IsFinalized); err != nil {
		return nil, err
	}
	e.EnrollDate = enrollDate.Time
	if grade.Valid {
		e.Grade = &grade.Float64
	}
	return &e, nil
}

// FindEnrollment retrieves the enrollment of a student in a course
func (r *sqlRepository) FindEnrollment(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE student_id = ? AND course_id = ?`
	e, err := scanEnrollment(r.q.QueryRowContext(ctx, r.rebind(query), studentID, courseID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("enrollment (%d, %d): %w", studentID, courseID, ErrNotFound)
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return e, nil
}

// ListEnrollments retrieves all enrollments
func (r *sqlRepository) ListEnrollments(ctx context.Context) ([]*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments ORDER BY student_id, course_id`
	rows, err := r.q.QueryContext(ctx, r.rebind(query))
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := make([]*models.Enrollment, 0)
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// AddEnrollment stages an enrollment insert
func (r *sqlRepository) AddEnrollment(enrollment *models.Enrollment) {
	e := *enrollment
	r.stage(func(ctx context.Context, q queryer) (int, error) {
		n, err := r.exec(ctx, q,
			`INSERT INTO enrollments (student_id, course_id, enroll_date, grade, is_finalized)
			VALUES (?, ?, ?, ?, ?)`,
			e.StudentID, e.CourseID, r.dateArg(e.EnrollDate), helpers.GetNullFloat64(e.Grade), e.IsFinalized)
		if err != nil {
			return 0, fmt.Errorf("error inserting enrollment: %w", err)
		}
		return n, nil
	})
}

// UpdateEnrollment stages an enrollment update
func (r *sqlRepository) UpdateEnrollment(enrollment *models.Enrollment) {
	e := *enrollment
	r.stage(func(ctx context.Context, q queryer) (int, error) {
		n, err := r.exec(ctx, q,
			`UPDATE enrollments SET enroll_date = ?, grade = ?, is_finalized = ?
			WHERE student_id = ? AND course_id = ?`,
			r.dateArg(e.EnrollDate), helpers.GetNullFloat64(e.Grade), e.IsFinalized, e.StudentID, e.CourseID)
		return requireRow(fmt.Sprintf("enrollment (%d, %d)", e.StudentID, e.CourseID), n, err)
	})
}

// DeleteEnrollment stages an enrollment delete
func (r *sqlRepository) DeleteEnrollment(studentID, courseID int64) {
	r.stage(func(ctx context.Context, q queryer) (int, error) {
		return r.exec(ctx, q, `DELETE FROM enrollments WHERE student_id = ? AND course_id = ?`, studentID, courseID)
	})
}

// nullDate scans DATE columns from either driver: pgx yields time.Time while
// SQLite may hand back the stored text.
type nullDate struct {
	Time  time.Time
	Valid bool
}

// Scan implements sql.Scanner.
func (d *nullDate) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		d.Time, d.Valid = time.Time{}, false
		return nil
	case time.Time:
		d.Time, d.Valid = models.DateOnly(v), true
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into date", value)
	}
}

func (d *nullDate) parse(s string) error {
	if len(s) > len(models.DateLayout) {
		s = s[:len(models.DateLayout)]
	}
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time, d.Valid = t, true
	return nil
}
