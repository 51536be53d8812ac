package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yigit/coursemanager/internal/app/models/dto"
	"github.com/yigit/coursemanager/internal/pkg/validation"
)

// RegisterValidators adds the custom binding tags used by request DTOs to
// gin's validator engine:
//
//	code: letters, digits and dashes, at most 20 characters
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}

	// Report fields by their json names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// RegisterValidation replaces an existing tag, so repeated calls are safe
	return v.RegisterValidation("code", func(fl validator.FieldLevel) bool {
		return validation.NewStringValidation(fl.Field().String()).
			WithRequired(false).
			WithPattern(validation.CompiledPatterns.Code).
			Validate()
	})
}

// BindJSON binds the request body into obj. On failure it writes a 400
// response listing every invalid field and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(ValidationErrorDetail(err)))
		return false
	}
	return true
}

// ValidationErrorDetail converts a binding error into an error detail
func ValidationErrorDetail(err error) *dto.ErrorDetail {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return detail.WithDetails(err.Error())
	}

	errs := dto.NewValidationErrors()
	for _, fe := range fieldErrors {
		errs.AddError(fe.Field(), formatValidationError(fe))
	}
	if len(fieldErrors) == 1 {
		detail = detail.WithField(fieldErrors[0].Field())
	}
	return detail.WithDetails(errs.Errors)
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return field + " must be greater than " + e.Param()
	case "max":
		return field + " must be at most " + e.Param() + " characters"
	case "email":
		return field + " must be a valid email address"
	case "datetime":
		return field + " must be a date in the format YYYY-MM-DD"
	case "code":
		return field + " may contain only letters, digits and dashes (max 20)"
	default:
		return fmt.Sprintf("%s validation failed: %s", field, e.Tag())
	}
}
