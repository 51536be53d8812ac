package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/coursemanager/internal/app/models/dto"
	"github.com/yigit/coursemanager/internal/app/services"
	"github.com/yigit/coursemanager/internal/pkg/apperrors"
)

var notFoundCodes = map[string]bool{
	apperrors.CodeDepartmentNotFound: true,
	apperrors.CodeCourseNotFound:     true,
	apperrors.CodeStudentNotFound:    true,
	apperrors.CodeEnrollmentNotFound: true,
}

var conflictCodes = map[string]bool{
	apperrors.CodeDepartmentNameTaken:   true,
	apperrors.CodeDepartmentHasStudents: true,
	apperrors.CodeDepartmentHasCourses:  true,
	apperrors.CodeCourseCodeTaken:       true,
	apperrors.CodeCourseHasEnrollments:  true,
	apperrors.CodeStudentCodeTaken:      true,
	apperrors.CodeStudentEmailTaken:     true,
	apperrors.CodeStudentHasEnrollments: true,
	apperrors.CodeDuplicateEnrollment:   true,
	apperrors.CodeGradeFinalized:        true,
}

// StatusForCode maps a result code to the HTTP status reported for it
func StatusForCode(code string) int {
	switch {
	case code == "":
		return http.StatusOK
	case notFoundCodes[code]:
		return http.StatusNotFound
	case conflictCodes[code]:
		return http.StatusConflict
	case code == apperrors.CodePersistence:
		return http.StatusInternalServerError
	case code == apperrors.CodeInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

// RespondResult writes a service result. Successful results are wrapped in an
// APIResponse carrying data; failures become an ErrorResponse.
func RespondResult(c *gin.Context, res services.Result, successStatus int, data interface{}) {
	if res.Success {
		c.JSON(successStatus, dto.NewAPIResponse(data, res.Message))
		return
	}

	status := StatusForCode(res.Code)
	detail := dto.NewErrorDetail(dto.ErrorCode(res.Code), res.Message)
	if status == http.StatusInternalServerError {
		detail = detail.WithSeverity(dto.ErrorSeverityCritical)
		_ = c.Error(errors.New(res.Message))
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}

// HandleAPIError handles errors returned by read operations and request parsing
func HandleAPIError(c *gin.Context, err error) {
	if violation, ok := apperrors.AsRuleViolation(err); ok {
		detail := dto.NewErrorDetail(dto.ErrorCode(violation.Code), violation.Message)
		c.JSON(StatusForCode(violation.Code), dto.NewErrorResponse(detail))
		return
	}

	var custom *apperrors.CustomError
	switch {
	case errors.As(err, &custom) && errors.Is(err, apperrors.ErrBadRequest):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, custom.Message)
		if custom.Details != nil {
			detail = detail.WithDetails(custom.Details)
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")))
	default:
		_ = c.Error(err)
		detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
			WithSeverity(dto.ErrorSeverityCritical)
		if gin.IsDebugging() {
			detail = detail.WithDebugInfo("%v", err)
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
	}
}
