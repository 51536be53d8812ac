package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursemanager/internal/app/models"
	"github.com/yigit/coursemanager/internal/app/models/dto"
	"github.com/yigit/coursemanager/internal/app/services"
	"github.com/yigit/coursemanager/internal/middleware"
	"github.com/yigit/coursemanager/internal/pkg/apperrors"
)

// EnrollmentController handles enrollments and grading
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
	now               services.Clock
}

// NewEnrollmentController creates a new EnrollmentController. clock supplies
// the enrollment date when a request omits it; nil means time.Now.
func NewEnrollmentController(enrollmentService *services.EnrollmentService, clock services.Clock) *EnrollmentController {
	if clock == nil {
		clock = time.Now
	}
	return &EnrollmentController{enrollmentService: enrollmentService, now: clock}
}

// Enroll enrolls a student in a course
// @Summary Enroll a student
// @Description Enrolls a student in a course of the same department. The student must be active and at least 18 on the enrollment date, the course must be active with at least one credit, the date cannot be in the past and a student takes at most 5 courses.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body dto.EnrollRequest true "Enrollment"
// @Success 201 {object} dto.APIResponse "Student enrolled successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Failure 422 {object} dto.ErrorResponse "Business rule violated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	var req dto.EnrollRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	res := c.enrollmentService.Enroll(ctx.Request.Context(), req.StudentID, req.CourseID, req.Date(c.now()))
	middleware.RespondResult(ctx, res, http.StatusCreated, nil)
}

// GetAllEnrollments lists enrollments
// @Summary Get enrollments
// @Tags enrollments
// @Produce json
// @Param studentId query int false "Only enrollments of this student"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size (max 100)"
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrollmentResponse} "Enrollments retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [get]
func (c *EnrollmentController) GetAllEnrollments(ctx *gin.Context) {
	var (
		list []*models.Enrollment
		err  error
	)

	if raw, ok := ctx.GetQuery("studentId"); ok {
		studentID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil || studentID <= 0 {
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid student ID"))
			return
		}
		list, err = c.enrollmentService.GetByStudent(ctx.Request.Context(), studentID)
	} else {
		list, err = c.enrollmentService.GetAll(ctx.Request.Context())
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondList(ctx, dto.NewEnrollmentResponses(list))
}

// gradeAction is AssignGrade or UpdateGrade
type gradeAction func(ctx context.Context, studentID, courseID int64, grade float64) services.Result

func (c *EnrollmentController) setGrade(ctx *gin.Context, action gradeAction) {
	studentID, ok := parseIDParam(ctx, "studentId", "student")
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "courseId", "course")
	if !ok {
		return
	}

	var req dto.GradeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	res := action(ctx.Request.Context(), studentID, courseID, *req.Grade)
	middleware.RespondResult(ctx, res, http.StatusOK, nil)
}

// AssignGrade assigns a grade to an enrollment
// @Summary Assign a grade
// @Description Grades range from 0 to 10 and can be given within 30 days of enrollment, until finalized.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param studentId path int true "Student ID"
// @Param courseId path int true "Course ID"
// @Param request body dto.GradeRequest true "Grade"
// @Success 200 {object} dto.APIResponse "Grade assigned successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Grade already finalized"
// @Failure 422 {object} dto.ErrorResponse "Business rule violated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{studentId}/{courseId}/grade [post]
func (c *EnrollmentController) AssignGrade(ctx *gin.Context) {
	c.setGrade(ctx, c.enrollmentService.AssignGrade)
}

// UpdateGrade revises the grade of an enrollment
// @Summary Update a grade
// @Tags enrollments
// @Accept json
// @Produce json
// @Param studentId path int true "Student ID"
// @Param courseId path int true "Course ID"
// @Param request body dto.GradeRequest true "Grade"
// @Success 200 {object} dto.APIResponse "Grade updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Grade already finalized"
// @Failure 422 {object} dto.ErrorResponse "Business rule violated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{studentId}/{courseId}/grade [put]
func (c *EnrollmentController) UpdateGrade(ctx *gin.Context) {
	c.setGrade(ctx, c.enrollmentService.UpdateGrade)
}

// FinalizeGrade locks the grade of an enrollment
// @Summary Finalize a grade
// @Tags enrollments
// @Produce json
// @Param studentId path int true "Student ID"
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Grade finalized successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Grade already finalized"
// @Failure 422 {object} dto.ErrorResponse "Grade not assigned"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{studentId}/{courseId}/finalize [post]
func (c *EnrollmentController) FinalizeGrade(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId", "student")
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "courseId", "course")
	if !ok {
		return
	}

	res := c.enrollmentService.FinalizeGrade(ctx.Request.Context(), studentID, courseID)
	middleware.RespondResult(ctx, res, http.StatusOK, nil)
}
