package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursemanager/internal/app/repositories"
	"github.com/yigit/coursemanager/internal/bootstrap"
)

var today = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func init() {
	color.NoColor = true
}

func newServices() *bootstrap.Services {
	return bootstrap.NewServices(repositories.NewMemoryStore(), zerolog.Nop(), func() time.Time { return today })
}

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func run(t *testing.T, svc *bootstrap.Services, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	c := New(script(lines...), &out, svc, func() time.Time { return today })
	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

func TestConsoleFullFlow(t *testing.T) {
	svc := newServices()

	out := run(t, svc,
		"4", "Information Technology",
		"5", "S001", "Ada Lovelace", "ada@example.com", "2000-01-15", "1",
		"6", "CS101", "Programming", "3", "1",
		"7", "1", "1",
		"8", "1", "1", "8,5",
		"11", "1", "1", "9",
		"12", "1", "1",
		"8", "1", "1", "7",
		"0",
	)

	assert.Contains(t, out, "=== COURSE MANAGEMENT SYSTEM ===")
	assert.Contains(t, out, "Success: Department created successfully.")
	assert.Contains(t, out, "Success: Student created successfully.")
	assert.Contains(t, out, "Success: Course created successfully.")
	assert.Contains(t, out, "Success: Student enrolled successfully.")
	assert.Contains(t, out, "Success: Grade assigned successfully.")
	assert.Contains(t, out, "Success: Grade updated successfully.")
	assert.Contains(t, out, "Success: Grade finalized successfully.")
	assert.Contains(t, out, "Error: Grade cannot be updated once it is finalized.")
	assert.Contains(t, out, "Goodbye!")

	enrollments, err := svc.Enrollments.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.Equal(t, 9.0, *enrollments[0].Grade)
	assert.True(t, enrollments[0].IsFinalized)
	assert.Equal(t, "2026-03-10", enrollments[0].EnrollDate.Format("2006-01-02"))
}

func TestConsoleListsRenderTables(t *testing.T) {
	svc := newServices()

	out := run(t, svc,
		"4", "Information Technology",
		"5", "", "Alan Turing", "", "", "1",
		"3",
		"1",
		"2",
		"13",
		"0",
	)

	assert.Contains(t, out, "--- Department List ---")
	assert.Contains(t, out, "Information Technology")
	assert.Contains(t, out, "--- Student List ---")
	assert.Contains(t, out, "Alan Turing")
	assert.Contains(t, out, "--- Course List ---")
	assert.Contains(t, out, "--- Enrollment List ---")
}

func TestConsoleInvalidInput(t *testing.T) {
	svc := newServices()

	out := run(t, svc,
		"99",
		"abc",
		"5", "", "Ada Lovelace", "", "15/01/2000",
		"5", "", "Ada Lovelace", "", "", "x",
		"6", "", "Programming", "three",
		"7", "one",
		"7", "1", "two",
		"8", "1", "1", "high",
		"10", "?",
		"0",
	)

	assert.Equal(t, 2, strings.Count(out, "Invalid choice. Please try again."))
	assert.Contains(t, out, "Invalid Date of Birth.")
	assert.Contains(t, out, "Invalid Department ID.")
	assert.Contains(t, out, "Invalid Credits.")
	assert.Contains(t, out, "Invalid Student ID.")
	assert.Contains(t, out, "Invalid Course ID.")
	assert.Contains(t, out, "Invalid Grade.")

	students, err := svc.Students.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestConsoleRuleViolationsAreReported(t *testing.T) {
	svc := newServices()

	out := run(t, svc,
		"4", "IT",
		"4", "Information Technology",
		"5", "", "Ada Lovelace", "", "2015-06-01", "1",
		"6", "CS101", "Programming", "3", "1",
		"7", "1", "1",
		"9", "1", "Al",
		"9", "42",
		"10", "1",
		"0",
	)

	assert.Contains(t, out, "Error: Department name cannot be empty or shorter than 3 characters.")
	assert.Contains(t, out, "Error: Student must be at least 18 years old at enrollment.")
	assert.Contains(t, out, "Error: Student full name must be at least 3 characters.")
	assert.Contains(t, out, "Error: Student not found.")
	assert.Contains(t, out, "Success: Course deleted successfully.")
}

func TestConsoleStopsAtEndOfInput(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("3\n"), &out, newServices(), nil)
	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "--- Department List ---")
}

func TestConsoleStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	c := New(script("3", "0"), &out, newServices(), nil)
	assert.ErrorIs(t, c.Run(ctx), context.Canceled)
	assert.Empty(t, out.String())
}
