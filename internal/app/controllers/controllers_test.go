package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/coursemanager/internal/app/controllers"
	"github.com/yigit/coursemanager/internal/app/repositories"
	"github.com/yigit/coursemanager/internal/app/routes"
	"github.com/yigit/coursemanager/internal/app/services"
	"github.com/yigit/coursemanager/internal/middleware"
)

var today = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return today }

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, middleware.RegisterValidators())

	uow := services.NewUnitOfWork(repositories.NewMemoryStore(), zerolog.Nop())
	enrollments := services.NewEnrollmentService(uow, clock)

	router := gin.New()
	routes.SetupRouter(router, routes.Controllers{
		Departments: controllers.NewDepartmentController(services.NewDepartmentService(uow)),
		Courses:     controllers.NewCourseController(services.NewCourseService(uow)),
		Students:    controllers.NewStudentController(services.NewStudentService(uow)),
		Enrollments: controllers.NewEnrollmentController(enrollments, clock),
	})
	return router
}

type response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func call(t *testing.T, router *gin.Engine, method, path, body string) (int, response) {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func errorCode(resp response) string {
	if resp.Error == nil {
		return ""
	}
	return resp.Error.Code
}

func TestDepartmentEndpoints(t *testing.T) {
	router := newRouter(t)

	status, resp := call(t, router, http.MethodPost, "/api/v1/departments", `{"name":"Information Technology"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Department created successfully.", resp.Message)
	assert.JSONEq(t, `{"id":1,"name":"Information Technology"}`, string(resp.Data))

	status, resp = call(t, router, http.MethodPost, "/api/v1/departments", `{"name":"information technology"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DEPARTMENT_NAME_TAKEN", errorCode(resp))
	assert.Equal(t, "Department name must be unique.", resp.Error.Message)

	status, resp = call(t, router, http.MethodPost, "/api/v1/departments", `{"name":"IT"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "DEPARTMENT_NAME_INVALID", errorCode(resp))

	call(t, router, http.MethodPost, "/api/v1/departments", `{"name":"Business Administration"}`)

	status, resp = call(t, router, http.MethodGet, "/api/v1/departments?page=2&size=1", "")
	require.Equal(t, http.StatusOK, status)
	var page struct {
		Items      []map[string]any `json:"items"`
		Pagination struct {
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Business Administration", page.Items[0]["name"])
	assert.Equal(t, 2, page.Pagination.TotalPages)

	status, _ = call(t, router, http.MethodGet, "/api/v1/departments/abc", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, resp = call(t, router, http.MethodGet, "/api/v1/departments/99", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "DEPARTMENT_NOT_FOUND", errorCode(resp))

	status, resp = call(t, router, http.MethodPut, "/api/v1/departments/2", `{"name":"Business School"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Department updated successfully.", resp.Message)

	status, _ = call(t, router, http.MethodDelete, "/api/v1/departments/2", "")
	assert.Equal(t, http.StatusOK, status)

	status, resp = call(t, router, http.MethodGet, "/api/v1/departments", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"id":1,"name":"Information Technology"}]`, string(resp.Data))
}

func TestEnrollmentAndGradingFlow(t *testing.T) {
	router := newRouter(t)

	call(t, router, http.MethodPost, "/api/v1/departments", `{"name":"Information Technology"}`)
	status, resp := call(t, router, http.MethodPost, "/api/v1/courses", `{"code":"CS101","title":"Programming","credits":3,"departmentId":1}`)
	require.Equal(t, http.StatusCreated, status, resp.Message)
	status, resp = call(t, router, http.MethodPost, "/api/v1/students",
		`{"code":"S001","fullName":"Ada Lovelace","email":"ada@example.com","departmentId":1,"dateOfBirth":"2000-01-15"}`)
	require.Equal(t, http.StatusCreated, status, resp.Message)
	assert.Contains(t, string(resp.Data), `"dateOfBirth":"2000-01-15"`)

	status, resp = call(t, router, http.MethodPost, "/api/v1/enrollments", `{"studentId":1,"courseId":1}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Student enrolled successfully.", resp.Message)

	status, resp = call(t, router, http.MethodPost, "/api/v1/enrollments", `{"studentId":1,"courseId":1,"enrollDate":"2026-03-12"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE_ENROLLMENT", errorCode(resp))

	status, resp = call(t, router, http.MethodPost, "/api/v1/enrollments/1/1/grade", `{"grade":10.5}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "GRADE_OUT_OF_RANGE", errorCode(resp))

	status, resp = call(t, router, http.MethodPost, "/api/v1/enrollments/1/1/finalize", "")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "GRADE_NOT_ASSIGNED", errorCode(resp))

	status, resp = call(t, router, http.MethodPost, "/api/v1/enrollments/1/1/grade", `{"grade":8.5}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Grade assigned successfully.", resp.Message)

	status, _ = call(t, router, http.MethodPut, "/api/v1/enrollments/1/1/grade", `{"grade":0}`)
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, router, http.MethodPost, "/api/v1/enrollments/1/1/finalize", "")
	assert.Equal(t, http.StatusOK, status)

	status, resp = call(t, router, http.MethodPut, "/api/v1/enrollments/1/1/grade", `{"grade":9}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "GRADE_FINALIZED", errorCode(resp))

	status, resp = call(t, router, http.MethodPost, "/api/v1/enrollments/1/2/grade", `{"grade":9}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "ENROLLMENT_NOT_FOUND", errorCode(resp))

	status, resp = call(t, router, http.MethodGet, "/api/v1/enrollments?studentId=1", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"studentId":1,"courseId":1,"enrollDate":"2026-03-10","grade":0,"isFinalized":true}]`, string(resp.Data))

	status, resp = call(t, router, http.MethodGet, "/api/v1/enrollments?studentId=2", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(resp.Data))

	status, resp = call(t, router, http.MethodDelete, "/api/v1/courses/1", "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "COURSE_HAS_ENROLLMENTS", errorCode(resp))
}

func TestEnrollmentRuleFailures(t *testing.T) {
	router := newRouter(t)

	call(t, router, http.MethodPost, "/api/v1/departments", `{"name":"Information Technology"}`)
	call(t, router, http.MethodPost, "/api/v1/courses", `{"code":"CS101","title":"Programming","credits":3,"departmentId":1}`)
	call(t, router, http.MethodPost, "/api/v1/students", `{"fullName":"Young Student","departmentId":1,"dateOfBirth":"2010-05-01"}`)
	call(t, router, http.MethodPost, "/api/v1/students", `{"fullName":"Adult Student","departmentId":1,"dateOfBirth":"1990-05-01"}`)

	status, resp := call(t, router, http.MethodPost, "/api/v1/enrollments", `{"studentId":1,"courseId":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "STUDENT_UNDERAGE", errorCode(resp))

	status, resp = call(t, router, http.MethodPost, "/api/v1/enrollments", `{"studentId":2,"courseId":1,"enrollDate":"2026-03-09"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "PAST_ENROLL_DATE", errorCode(resp))

	status, resp = call(t, router, http.MethodPost, "/api/v1/enrollments", `{"studentId":99,"courseId":1}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "STUDENT_NOT_FOUND", errorCode(resp))

	status, resp = call(t, router, http.MethodPost, "/api/v1/enrollments", `{"courseId":1}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VAL_001", errorCode(resp))
	assert.Contains(t, string(resp.Error.Details), `"field":"studentId"`)

	status, _ = call(t, router, http.MethodPost, "/api/v1/enrollments", `{"studentId":2,"courseId":1,"enrollDate":"10.03.2026"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, router, http.MethodPost, "/api/v1/enrollments/x/1/grade", `{"grade":5}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestStudentEndpoints(t *testing.T) {
	router := newRouter(t)
	call(t, router, http.MethodPost, "/api/v1/departments", `{"name":"Information Technology"}`)

	status, resp := call(t, router, http.MethodPost, "/api/v1/students", `{"fullName":"Al","departmentId":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "STUDENT_NAME_TOO_SHORT", errorCode(resp))

	status, _ = call(t, router, http.MethodPost, "/api/v1/students", `{"fullName":"Alan Turing","departmentId":1,"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, router, http.MethodPost, "/api/v1/students", `{"fullName":"Alan Turing","departmentId":1,"code":"S-1"}`)
	require.Equal(t, http.StatusCreated, status)

	status, resp = call(t, router, http.MethodPost, "/api/v1/students", `{"fullName":"Alan Twin","departmentId":1,"code":"s-1"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "STUDENT_CODE_TAKEN", errorCode(resp))

	status, resp = call(t, router, http.MethodPut, "/api/v1/students/1", `{"fullName":"Alan M. Turing","departmentId":1,"code":"S-1","isActive":false}`)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(resp.Data), `"isActive":false`)

	status, resp = call(t, router, http.MethodGet, "/api/v1/students/1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(resp.Data), `"fullName":"Alan M. Turing"`)

	status, _ = call(t, router, http.MethodDelete, "/api/v1/students/1", "")
	assert.Equal(t, http.StatusOK, status)

	status, resp = call(t, router, http.MethodDelete, "/api/v1/students/1", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "STUDENT_NOT_FOUND", errorCode(resp))
}

func TestStudentUpdateKeepsOmittedFields(t *testing.T) {
	router := newRouter(t)
	call(t, router, http.MethodPost, "/api/v1/departments", `{"name":"Information Technology"}`)

	status, _ := call(t, router, http.MethodPost, "/api/v1/students",
		`{"fullName":"Grace Hopper","departmentId":1,"code":"S-7","email":"grace@school.edu","dateOfBirth":"1999-12-09","isActive":false}`)
	require.Equal(t, http.StatusCreated, status)

	status, _ = call(t, router, http.MethodPut, "/api/v1/students/1", `{"fullName":"Grace B. Hopper"}`)
	require.Equal(t, http.StatusOK, status)

	status, resp := call(t, router, http.MethodGet, "/api/v1/students/1", "")
	require.Equal(t, http.StatusOK, status)
	var student struct {
		Code         string `json:"code"`
		FullName     string `json:"fullName"`
		Email        string `json:"email"`
		DepartmentID *int64 `json:"departmentId"`
		DateOfBirth  string `json:"dateOfBirth"`
		IsActive     bool   `json:"isActive"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &student))
	assert.Equal(t, "Grace B. Hopper", student.FullName)
	assert.Equal(t, "S-7", student.Code)
	assert.Equal(t, "grace@school.edu", student.Email)
	require.NotNil(t, student.DepartmentID)
	assert.EqualValues(t, 1, *student.DepartmentID)
	assert.Equal(t, "1999-12-09", student.DateOfBirth)
	assert.False(t, student.IsActive)

	status, resp = call(t, router, http.MethodPut, "/api/v1/students/9", `{"fullName":"Nobody Here"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "STUDENT_NOT_FOUND", errorCode(resp))
}

func TestCourseEndpoints(t *testing.T) {
	router := newRouter(t)
	call(t, router, http.MethodPost, "/api/v1/departments", `{"name":"Information Technology"}`)

	status, resp := call(t, router, http.MethodPost, "/api/v1/courses", `{"code":"CS101","title":"Programming","credits":7,"departmentId":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "COURSE_CREDITS_INVALID", errorCode(resp))

	status, resp = call(t, router, http.MethodPost, "/api/v1/courses", `{"code":"CS101","title":"Programming","credits":3,"departmentId":5}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "DEPARTMENT_NOT_FOUND", errorCode(resp))

	status, _ = call(t, router, http.MethodPost, "/api/v1/courses", `{"code":"CS101","title":"Programming","credits":3,"departmentId":1}`)
	require.Equal(t, http.StatusCreated, status)

	status, _ = call(t, router, http.MethodPut, "/api/v1/courses/1", `{"code":"CS101","title":"Programming","credits":3,"departmentId":1,"isArchived":true}`)
	require.Equal(t, http.StatusOK, status)

	status, resp = call(t, router, http.MethodPut, "/api/v1/courses/1", `{"code":"CS101","title":"Programming II","credits":3,"departmentId":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "COURSE_LOCKED", errorCode(resp))

	status, resp = call(t, router, http.MethodGet, "/api/v1/courses/1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(resp.Data), `"isArchived":true`)

	status, _ = call(t, router, http.MethodDelete, "/api/v1/courses/1", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestUnknownRouteReturnsErrorEnvelope(t *testing.T) {
	router := newRouter(t)

	status, resp := call(t, router, http.MethodGet, "/api/v1/instructors", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, resp.Success)
	assert.Equal(t, "RES_001", errorCode(resp))
}
