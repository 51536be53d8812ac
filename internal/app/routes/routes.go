package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yigit/coursemanager/internal/app/controllers"
	"github.com/yigit/coursemanager/internal/middleware"
	"github.com/yigit/coursemanager/internal/pkg/apperrors"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Departments *controllers.DepartmentController
	Courses     *controllers.CourseController
	Students    *controllers.StudentController
	Enrollments *controllers.EnrollmentController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers) {
	// API version group
	v1 := router.Group("/api/v1")

	departments := v1.Group("/departments")
	{
		departments.GET("", c.Departments.GetAllDepartments)
		departments.POST("", c.Departments.CreateDepartment)
		departments.GET("/:id", c.Departments.GetDepartmentByID)
		departments.PUT("/:id", c.Departments.UpdateDepartment)
		departments.DELETE("/:id", c.Departments.DeleteDepartment)
	}

	courses := v1.Group("/courses")
	{
		courses.GET("", c.Courses.GetAllCourses)
		courses.POST("", c.Courses.CreateCourse)
		courses.GET("/:id", c.Courses.GetCourseByID)
		courses.PUT("/:id", c.Courses.UpdateCourse)
		courses.DELETE("/:id", c.Courses.DeleteCourse)
	}

	students := v1.Group("/students")
	{
		students.GET("", c.Students.GetAllStudents)
		students.POST("", c.Students.CreateStudent)
		students.GET("/:id", c.Students.GetStudentByID)
		students.PUT("/:id", c.Students.UpdateStudent)
		students.DELETE("/:id", c.Students.DeleteStudent)
	}

	enrollments := v1.Group("/enrollments")
	{
		enrollments.GET("", c.Enrollments.GetAllEnrollments)
		enrollments.POST("", c.Enrollments.Enroll)
		enrollments.POST("/:studentId/:courseId/grade", c.Enrollments.AssignGrade)
		enrollments.PUT("/:studentId/:courseId/grade", c.Enrollments.UpdateGrade)
		enrollments.POST("/:studentId/:courseId/finalize", c.Enrollments.FinalizeGrade)
	}

	// Health check endpoint
	router.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(ctx *gin.Context) {
		middleware.HandleAPIError(ctx, apperrors.ErrResourceNotFound)
	})
}
