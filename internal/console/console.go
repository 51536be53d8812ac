// Package console is an interactive numbered menu over the course services.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/yigit/coursemanager/internal/app/models"
	"github.com/yigit/coursemanager/internal/app/services"
	"github.com/yigit/coursemanager/internal/bootstrap"
	"github.com/yigit/coursemanager/internal/pkg/helpers"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	headingColor = color.New(color.FgYellow)
)

// Console reads menu choices from in and writes tables and results to out
type Console struct {
	in       *bufio.Scanner
	out      io.Writer
	services *bootstrap.Services
	now      services.Clock
}

// New creates a console. A nil clock means time.Now.
func New(in io.Reader, out io.Writer, svc *bootstrap.Services, clock services.Clock) *Console {
	if clock == nil {
		clock = time.Now
	}
	return &Console{
		in:       bufio.NewScanner(in),
		out:      out,
		services: svc,
		now:      clock,
	}
}

type menuItem struct {
	label  string
	action func(ctx context.Context)
}

func (c *Console) menu() []menuItem {
	return []menuItem{
		{"List All Students", c.listStudents},
		{"List All Courses", c.listCourses},
		{"List All Departments", c.listDepartments},
		{"Create Department", c.createDepartment},
		{"Create Student", c.createStudent},
		{"Create Course", c.createCourse},
		{"Enroll Student into Course", c.enroll},
		{"Assign Grade to Student", c.assignGrade},
		{"Update Student Information", c.updateStudentName},
		{"Delete a Course", c.deleteCourse},
		{"Update Grade", c.updateGrade},
		{"Finalize Grade", c.finalizeGrade},
		{"List Enrollments", c.listEnrollments},
	}
}

// Run shows the menu until the user picks 0, input ends or ctx is done
func (c *Console) Run(ctx context.Context) error {
	items := c.menu()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.printMenu(items)
		choice, ok := c.readLine()
		if !ok {
			fmt.Fprintln(c.out)
			return c.in.Err()
		}

		if choice == "0" {
			successColor.Fprintln(c.out, "Goodbye!")
			return nil
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(items) {
			errorColor.Fprintln(c.out, "Invalid choice. Please try again.")
			continue
		}
		items[n-1].action(ctx)
	}
}

func (c *Console) printMenu(items []menuItem) {
	titleColor.Fprintln(c.out, "\n=== COURSE MANAGEMENT SYSTEM ===")
	for i, item := range items {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, item.label)
	}
	fmt.Fprintln(c.out, "0. Exit")
	fmt.Fprint(c.out, "Choose an option: ")
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) prompt(label string) string {
	fmt.Fprint(c.out, label)
	line, _ := c.readLine()
	return line
}

func (c *Console) promptID(label, invalid string) (int64, bool) {
	id, err := strconv.ParseInt(c.prompt(label), 10, 64)
	if err != nil {
		errorColor.Fprintln(c.out, invalid)
		return 0, false
	}
	return id, true
}

func (c *Console) report(res services.Result) {
	if res.Success {
		successColor.Fprintf(c.out, "Success: %s\n", res.Message)
		return
	}
	errorColor.Fprintf(c.out, "Error: %s\n", res.Message)
}

func (c *Console) fail(err error) {
	errorColor.Fprintf(c.out, "Error: %v\n", err)
}

func (c *Console) table(title string, header []string, rows [][]string) {
	headingColor.Fprintf(c.out, "\n--- %s ---\n", title)
	table := tablewriter.NewWriter(c.out)
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.Render()
}

func optional[T any](v *T, format func(T) string) string {
	if v == nil {
		return "-"
	}
	return format(*v)
}

func formatID(v int64) string { return strconv.FormatInt(v, 10) }

func (c *Console) listStudents(ctx context.Context) {
	students, err := c.services.Students.GetAll(ctx)
	if err != nil {
		c.fail(err)
		return
	}

	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, []string{
			formatID(s.ID), s.Code, s.FullName, s.Email,
			optional(s.DepartmentID, formatID),
			optional(s.DateOfBirth, func(t time.Time) string { return t.Format(models.DateLayout) }),
			strconv.FormatBool(s.IsActive),
		})
	}
	c.table("Student List", []string{"ID", "Code", "Name", "Email", "Department", "Born", "Active"}, rows)
}

func (c *Console) listCourses(ctx context.Context) {
	courses, err := c.services.Courses.GetAll(ctx)
	if err != nil {
		c.fail(err)
		return
	}

	rows := make([][]string, 0, len(courses))
	for _, course := range courses {
		rows = append(rows, []string{
			formatID(course.ID), course.Code, course.Title,
			optional(course.Credits, strconv.Itoa),
			optional(course.DepartmentID, formatID),
			strconv.FormatBool(course.IsActive),
			strconv.FormatBool(course.IsArchived),
		})
	}
	c.table("Course List", []string{"ID", "Code", "Title", "Credits", "Department", "Active", "Archived"}, rows)
}

func (c *Console) listDepartments(ctx context.Context) {
	departments, err := c.services.Departments.GetAll(ctx)
	if err != nil {
		c.fail(err)
		return
	}

	rows := make([][]string, 0, len(departments))
	for _, d := range departments {
		rows = append(rows, []string{formatID(d.ID), d.Name})
	}
	c.table("Department List", []string{"ID", "Name"}, rows)
}

func (c *Console) listEnrollments(ctx context.Context) {
	enrollments, err := c.services.Enrollments.GetAll(ctx)
	if err != nil {
		c.fail(err)
		return
	}

	rows := make([][]string, 0, len(enrollments))
	for _, e := range enrollments {
		rows = append(rows, []string{
			formatID(e.StudentID), formatID(e.CourseID),
			e.EnrollDate.Format(models.DateLayout),
			optional(e.Grade, func(g float64) string { return strconv.FormatFloat(g, 'f', 2, 64) }),
			strconv.FormatBool(e.IsFinalized),
		})
	}
	c.table("Enrollment List", []string{"Student", "Course", "Enrolled", "Grade", "Finalized"}, rows)
}

func (c *Console) createDepartment(ctx context.Context) {
	name := c.prompt("Enter Department Name: ")
	c.report(c.services.Departments.Create(ctx, &models.Department{Name: name}))
}

func (c *Console) createStudent(ctx context.Context) {
	student := models.NewStudent()
	student.Code = c.prompt("Enter Student Code: ")
	student.FullName = c.prompt("Enter Full Name: ")
	student.Email = c.prompt("Enter Email (optional): ")

	if raw := c.prompt("Enter Date of Birth (YYYY-MM-DD, optional): "); raw != "" {
		dob, err := helpers.ParseDate(raw)
		if err != nil {
			errorColor.Fprintln(c.out, "Invalid Date of Birth.")
			return
		}
		student.DateOfBirth = &dob
	}

	deptID, ok := c.promptID("Enter Department ID: ", "Invalid Department ID.")
	if !ok {
		return
	}
	student.DepartmentID = &deptID

	c.report(c.services.Students.Create(ctx, student))
}

func (c *Console) createCourse(ctx context.Context) {
	course := models.NewCourse()
	course.Code = c.prompt("Enter Course Code: ")
	course.Title = c.prompt("Enter Course Title: ")

	credits, err := strconv.Atoi(c.prompt("Enter Credits (1-6): "))
	if err != nil {
		errorColor.Fprintln(c.out, "Invalid Credits.")
		return
	}
	course.Credits = &credits

	deptID, ok := c.promptID("Enter Department ID: ", "Invalid Department ID.")
	if !ok {
		return
	}
	course.DepartmentID = &deptID

	c.report(c.services.Courses.Create(ctx, course))
}

// promptEnrollment asks for the student and course of an enrollment
func (c *Console) promptEnrollment() (studentID, courseID int64, ok bool) {
	studentID, ok = c.promptID("Enter Student ID: ", "Invalid Student ID.")
	if !ok {
		return 0, 0, false
	}
	courseID, ok = c.promptID("Enter Course ID: ", "Invalid Course ID.")
	return studentID, courseID, ok
}

func (c *Console) enroll(ctx context.Context) {
	studentID, courseID, ok := c.promptEnrollment()
	if !ok {
		return
	}
	c.report(c.services.Enrollments.Enroll(ctx, studentID, courseID, c.now()))
}

func (c *Console) promptGrade() (float64, bool) {
	grade, err := strconv.ParseFloat(strings.ReplaceAll(c.prompt("Enter Grade (0-10): "), ",", "."), 64)
	if err != nil {
		errorColor.Fprintln(c.out, "Invalid Grade.")
		return 0, false
	}
	return grade, true
}

func (c *Console) assignGrade(ctx context.Context) {
	studentID, courseID, ok := c.promptEnrollment()
	if !ok {
		return
	}
	grade, ok := c.promptGrade()
	if !ok {
		return
	}
	c.report(c.services.Enrollments.AssignGrade(ctx, studentID, courseID, grade))
}

func (c *Console) updateGrade(ctx context.Context) {
	studentID, courseID, ok := c.promptEnrollment()
	if !ok {
		return
	}
	grade, ok := c.promptGrade()
	if !ok {
		return
	}
	c.report(c.services.Enrollments.UpdateGrade(ctx, studentID, courseID, grade))
}

func (c *Console) finalizeGrade(ctx context.Context) {
	studentID, courseID, ok := c.promptEnrollment()
	if !ok {
		return
	}
	c.report(c.services.Enrollments.FinalizeGrade(ctx, studentID, courseID))
}

func (c *Console) updateStudentName(ctx context.Context) {
	id, ok := c.promptID("Enter Student ID to update: ", "Invalid Student ID.")
	if !ok {
		return
	}

	student, err := c.services.Students.GetByID(ctx, id)
	if err != nil {
		c.fail(err)
		return
	}

	student.FullName = c.prompt("Enter New Full Name: ")
	c.report(c.services.Students.Update(ctx, student))
}

func (c *Console) deleteCourse(ctx context.Context) {
	id, ok := c.promptID("Enter Course ID to delete: ", "Invalid Course ID.")
	if !ok {
		return
	}
	c.report(c.services.Courses.Delete(ctx, id))
}
