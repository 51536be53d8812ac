package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yigit/coursemanager/internal/app/models"
)

var _ Store = (*MemoryStore)(nil)

type memoryState struct {
	departments map[int64]models.Department
	courses     map[int64]models.Course
	students    map[int64]models.Student
	enrollments map[models.EnrollmentKey]models.Enrollment

	lastDepartmentID int64
	lastCourseID     int64
	lastStudentID    int64
}

func newMemoryState() *memoryState {
	return &memoryState{
		departments: make(map[int64]models.Department),
		courses:     make(map[int64]models.Course),
		students:    make(map[int64]models.Student),
		enrollments: make(map[models.EnrollmentKey]models.Enrollment),
	}
}

func (s *memoryState) clone() *memoryState {
	c := newMemoryState()
	for k, v := range s.departments {
		c.departments[k] = v
	}
	for k, v := range s.courses {
		c.courses[k] = v
	}
	for k, v := range s.students {
		c.students[k] = v
	}
	for k, v := range s.enrollments {
		c.enrollments[k] = v
	}
	c.lastDepartmentID = s.lastDepartmentID
	c.lastCourseID = s.lastCourseID
	c.lastStudentID = s.lastStudentID
	return c
}

// memoryChange is a staged write applied to a scratch copy of the state.
type memoryChange func(state *memoryState) (int, error)

// MemoryStore keeps every record in process memory. It has no transaction
// support; staged writes are applied by Save all at once or not at all.
type MemoryStore struct {
	mu      sync.RWMutex
	state   *memoryState
	pending []memoryChange
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: newMemoryState()}
}

// SupportsTransactions always reports false for the memory store.
func (m *MemoryStore) SupportsTransactions() bool { return false }

// Begin is not supported by the memory store.
func (m *MemoryStore) Begin(context.Context) (Tx, error) {
	return nil, ErrTransactionsUnsupported
}

// Close drops staged changes.
func (m *MemoryStore) Close() error {
	m.Discard()
	return nil
}

// Discard drops staged changes without applying them.
func (m *MemoryStore) Discard() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = nil
}

func (m *MemoryStore) stage(change memoryChange) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, change)
}

// Save applies the staged changes atomically. Staged changes are discarded
// whether or not they could be applied.
func (m *MemoryStore) Save(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pending := m.pending
	m.pending = nil

	scratch := m.state.clone()
	affected := 0
	for _, change := range pending {
		n, err := change(scratch)
		if err != nil {
			return 0, err
		}
		affected += n
	}
	m.state = scratch
	return affected, nil
}

// --- Departments ---

// FindDepartment returns a copy of the department with the given ID.
func (m *MemoryStore) FindDepartment(_ context.Context, id int64) (*models.Department, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.state.departments[id]
	if !ok {
		return nil, fmt.Errorf("department %d: %w", id, ErrNotFound)
	}
	return copyDepartment(d), nil
}

// ListDepartments returns every department ordered by ID.
func (m *MemoryStore) ListDepartments(context.Context) ([]*models.Department, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	departments := make([]*models.Department, 0, len(m.state.departments))
	for _, d := range m.state.departments {
		departments = append(departments, copyDepartment(d))
	}
	sort.Slice(departments, func(i, j int) bool { return departments[i].ID < departments[j].ID })
	return departments, nil
}

// AddDepartment stages a new department; its ID is assigned on Save.
func (m *MemoryStore) AddDepartment(department *models.Department) {
	m.stage(func(s *memoryState) (int, error) {
		s.lastDepartmentID++
		department.ID = s.lastDepartmentID
		s.departments[department.ID] = *copyDepartment(*department)
		return 1, nil
	})
}

// UpdateDepartment stages an update of an existing department.
func (m *MemoryStore) UpdateDepartment(department *models.Department) {
	d := *copyDepartment(*department)
	m.stage(func(s *memoryState) (int, error) {
		if _, ok := s.departments[d.ID]; !ok {
			return 0, fmt.Errorf("department %d: %w", d.ID, ErrNotFound)
		}
		s.departments[d.ID] = d
		return 1, nil
	})
}

// DeleteDepartment stages a delete. Deleting a missing department is a no-op.
func (m *MemoryStore) DeleteDepartment(id int64) {
	m.stage(func(s *memoryState) (int, error) {
		if _, ok := s.departments[id]; !ok {
			return 0, nil
		}
		delete(s.departments, id)
		return 1, nil
	})
}

// --- Courses ---

// FindCourse returns a copy of the course with the given ID.
func (m *MemoryStore) FindCourse(_ context.Context, id int64) (*models.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.state.courses[id]
	if !ok {
		return nil, fmt.Errorf("course %d: %w", id, ErrNotFound)
	}
	return copyCourse(c), nil
}

// ListCourses returns every course ordered by ID.
func (m *MemoryStore) ListCourses(context.Context) ([]*models.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	courses := make([]*models.Course, 0, len(m.state.courses))
	for _, c := range m.state.courses {
		courses = append(courses, copyCourse(c))
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

// AddCourse stages a new course; its ID is assigned on Save.
func (m *MemoryStore) AddCourse(course *models.Course) {
	m.stage(func(s *memoryState) (int, error) {
		s.lastCourseID++
		course.ID = s.lastCourseID
		s.courses[course.ID] = *copyCourse(*course)
		return 1, nil
	})
}

// UpdateCourse stages an update of an existing course.
func (m *MemoryStore) UpdateCourse(course *models.Course) {
	c := *copyCourse(*course)
	m.stage(func(s *memoryState) (int, error) {
		if _, ok := s.courses[c.ID]; !ok {
			return 0, fmt.Errorf("course %d: %w", c.ID, ErrNotFound)
		}
		s.courses[c.ID] = c
		return 1, nil
	})
}

// DeleteCourse stages a delete. Deleting a missing course is a no-op.
func (m *MemoryStore) DeleteCourse(id int64) {
	m.stage(func(s *memoryState) (int, error) {
		if _, ok := s.courses[id]; !ok {
			return 0, nil
		}
		delete(s.courses, id)
		return 1, nil
	})
}

// --- Students ---

// FindStudent returns a copy of the student with the given ID.
func (m *MemoryStore) FindStudent(_ context.Context, id int64) (*models.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st, ok := m.state.students[id]
	if !ok {
		return nil, fmt.Errorf("student %d: %w", id, ErrNotFound)
	}
	return copyStudent(st), nil
}

// ListStudents returns every student ordered by ID.
func (m *MemoryStore) ListStudents(context.Context) ([]*models.Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	students := make([]*models.Student, 0, len(m.state.students))
	for _, st := range m.state.students {
		students = append(students, copyStudent(st))
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

// AddStudent stages a new student; its ID is assigned on Save.
func (m *MemoryStore) AddStudent(student *models.Student) {
	m.stage(func(s *memoryState) (int, error) {
		s.lastStudentID++
		student.ID = s.lastStudentID
		s.students[student.ID] = *copyStudent(*student)
		return 1, nil
	})
}

// UpdateStudent stages an update of an existing student.
func (m *MemoryStore) UpdateStudent(student *models.Student) {
	st := *copyStudent(*student)
	m.stage(func(s *memoryState) (int, error) {
		if _, ok := s.students[st.ID]; !ok {
			return 0, fmt.Errorf("student %d: %w", st.ID, ErrNotFound)
		}
		s.students[st.ID] = st
		return 1, nil
	})
}

// DeleteStudent stages a delete. Deleting a missing student is a no-op.
func (m *MemoryStore) DeleteStudent(id int64) {
	m.stage(func(s *memoryState) (int, error) {
		if _, ok := s.students[id]; !ok {
			return 0, nil
		}
		delete(s.students, id)
		return 1, nil
	})
}

// --- Enrollments ---

// FindEnrollment returns a copy of the enrollment for the pair.
func (m *MemoryStore) FindEnrollment(_ context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.state.enrollments[models.EnrollmentKey{StudentID: studentID, CourseID: courseID}]
	if !ok {
		return nil, fmt.Errorf("enrollment (%d, %d): %w", studentID, courseID, ErrNotFound)
	}
	return copyEnrollment(e), nil
}

// ListEnrollments returns every enrollment ordered by student then course.
func (m *MemoryStore) ListEnrollments(context.Context) ([]*models.Enrollment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	enrollments := make([]*models.Enrollment, 0, len(m.state.enrollments))
	for _, e := range m.state.enrollments {
		enrollments = append(enrollments, copyEnrollment(e))
	}
	sort.Slice(enrollments, func(i, j int) bool {
		if enrollments[i].StudentID != enrollments[j].StudentID {
			return enrollments[i].StudentID < enrollments[j].StudentID
		}
		return enrollments[i].CourseID < enrollments[j].CourseID
	})
	return enrollments, nil
}

// AddEnrollment stages a new enrollment. Save fails with ErrConflict when the
// pair is already enrolled.
func (m *MemoryStore) AddEnrollment(enrollment *models.Enrollment) {
	e := *copyEnrollment(*enrollment)
	m.stage(func(s *memoryState) (int, error) {
		if _, ok := s.enrollments[e.Key()]; ok {
			return 0, fmt.Errorf("enrollment (%d, %d): %w", e.StudentID, e.CourseID, ErrConflict)
		}
		s.enrollments[e.Key()] = e
		return 1, nil
	})
}

// UpdateEnrollment stages an update of an existing enrollment.
func (m *MemoryStore) UpdateEnrollment(enrollment *models.Enrollment) {
	e := *copyEnrollment(*enrollment)
	m.stage(func(s *memoryState) (int, error) {
		if _, ok := s.enrollments[e.Key()]; !ok {
			return 0, fmt.Errorf("enrollment (%d, %d): %w", e.StudentID, e.CourseID, ErrNotFound)
		}
		s.enrollments[e.Key()] = e
		return 1, nil
	})
}

// DeleteEnrollment stages a delete. Deleting a missing enrollment is a no-op.
func (m *MemoryStore) DeleteEnrollment(studentID, courseID int64) {
	key := models.EnrollmentKey{StudentID: studentID, CourseID: courseID}
	m.stage(func(s *memoryState) (int, error) {
		if _, ok := s.enrollments[key]; !ok {
			return 0, nil
		}
		delete(s.enrollments, key)
		return 1, nil
	})
}

func copyDepartment(d models.Department) *models.Department {
	if d.Description != nil {
		desc := *d.Description
		d.Description = &desc
	}
	return &d
}

func copyCourse(c models.Course) *models.Course {
	if c.Credits != nil {
		credits := *c.Credits
		c.Credits = &credits
	}
	if c.DepartmentID != nil {
		deptID := *c.DepartmentID
		c.DepartmentID = &deptID
	}
	return &c
}

func copyStudent(st models.Student) *models.Student {
	if st.DepartmentID != nil {
		deptID := *st.DepartmentID
		st.DepartmentID = &deptID
	}
	if st.DateOfBirth != nil {
		dob := *st.DateOfBirth
		st.DateOfBirth = &dob
	}
	return &st
}

func copyEnrollment(e models.Enrollment) *models.Enrollment {
	if e.Grade != nil {
		grade := *e.Grade
		e.Grade = &grade
	}
	return &e
}
