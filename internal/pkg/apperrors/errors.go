package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrBadRequest       = errors.New("bad request")
)

// Rule codes. They are stable identifiers carried by results and API errors;
// messages are for humans and may change.
const (
	CodeDepartmentNotFound    = "DEPARTMENT_NOT_FOUND"
	CodeDepartmentNameInvalid = "DEPARTMENT_NAME_INVALID"
	CodeDepartmentNameTaken   = "DEPARTMENT_NAME_TAKEN"
	CodeDepartmentHasStudents = "DEPARTMENT_HAS_STUDENTS"
	CodeDepartmentHasCourses  = "DEPARTMENT_HAS_COURSES"
	CodeDepartmentRequired    = "DEPARTMENT_REQUIRED"
	CodeCourseNotFound        = "COURSE_NOT_FOUND"
	CodeCourseCodeTaken       = "COURSE_CODE_TAKEN"
	CodeCourseCreditsInvalid  = "COURSE_CREDITS_INVALID"
	CodeCourseLocked          = "COURSE_LOCKED"
	CodeCourseHasEnrollments  = "COURSE_HAS_ENROLLMENTS"
	CodeStudentNotFound       = "STUDENT_NOT_FOUND"
	CodeStudentNameRequired   = "STUDENT_NAME_REQUIRED"
	CodeStudentNameTooShort   = "STUDENT_NAME_TOO_SHORT"
	CodeStudentCodeTaken      = "STUDENT_CODE_TAKEN"
	CodeStudentEmailTaken     = "STUDENT_EMAIL_TAKEN"
	CodeStudentHasEnrollments = "STUDENT_HAS_ENROLLMENTS"
	CodeStudentInactive       = "STUDENT_INACTIVE"
	CodeStudentUnderage       = "STUDENT_UNDERAGE"
	CodeCourseInactive        = "COURSE_INACTIVE"
	CodeCourseNoCredits       = "COURSE_NO_CREDITS"
	CodeDuplicateEnrollment   = "DUPLICATE_ENROLLMENT"
	CodeMaxCoursesExceeded    = "MAX_COURSES_EXCEEDED"
	CodePastEnrollDate        = "PAST_ENROLL_DATE"
	CodeDepartmentMismatch    = "DEPARTMENT_MISMATCH"
	CodeEnrollmentNotFound    = "ENROLLMENT_NOT_FOUND"
	CodeGradeOutOfRange       = "GRADE_OUT_OF_RANGE"
	CodeGradeFinalized        = "GRADE_FINALIZED"
	CodeGradingWindowExpired  = "GRADING_WINDOW_EXPIRED"
	CodeGradeNotAssigned      = "GRADE_NOT_ASSIGNED"
	CodePersistence           = "PERSISTENCE_ERROR"
	CodeInvalidRequest        = "INVALID_REQUEST"
)

// Department rule violations
var (
	ErrDepartmentNotFound      = NewRuleViolation(CodeDepartmentNotFound, "Department not found.")
	ErrDepartmentNameInvalid   = NewRuleViolation(CodeDepartmentNameInvalid, "Department name cannot be empty or shorter than 3 characters.")
	ErrDepartmentNameTaken     = NewRuleViolation(CodeDepartmentNameTaken, "Department name must be unique.")
	ErrDepartmentHasStudents   = NewRuleViolation(CodeDepartmentHasStudents, "A department cannot be deleted if it has students.")
	ErrDepartmentHasCourses    = NewRuleViolation(CodeDepartmentHasCourses, "A department cannot be deleted if it has courses.")
	ErrCourseDepartmentNeeded  = NewRuleViolation(CodeDepartmentRequired, "Course must belong to exactly one department.")
	ErrStudentDepartmentNeeded = NewRuleViolation(CodeDepartmentRequired, "Student must belong to exactly one department.")
)

// Course rule violations
var (
	ErrCourseNotFound       = NewRuleViolation(CodeCourseNotFound, "Course not found.")
	ErrCourseCodeTaken      = NewRuleViolation(CodeCourseCodeTaken, "CourseCode must be unique.")
	ErrCourseCreditsInvalid = NewRuleViolation(CodeCourseCreditsInvalid, "Course credits must be between 1 and 6.")
	ErrCourseLocked         = NewRuleViolation(CodeCourseLocked, "A course cannot be updated if it is inactive or archived.")
	ErrCourseHasEnrollments = NewRuleViolation(CodeCourseHasEnrollments, "A course cannot be deleted if students are enrolled.")
)

// Student rule violations
var (
	ErrStudentNotFound       = NewRuleViolation(CodeStudentNotFound, "Student not found.")
	ErrStudentNameRequired   = NewRuleViolation(CodeStudentNameRequired, "Student full name cannot be null or empty.")
	ErrStudentNameTooShort   = NewRuleViolation(CodeStudentNameTooShort, "Student full name must be at least 3 characters.")
	ErrStudentCodeTaken      = NewRuleViolation(CodeStudentCodeTaken, "StudentCode must be unique.")
	ErrStudentEmailTaken     = NewRuleViolation(CodeStudentEmailTaken, "Student email must be unique.")
	ErrStudentHasEnrollments = NewRuleViolation(CodeStudentHasEnrollments, "A student cannot be deleted if the student has enrollments.")
)

// Enrollment rule violations
var (
	ErrStudentInactive         = NewRuleViolation(CodeStudentInactive, "Student is inactive and cannot enroll.")
	ErrStudentUnderage         = NewRuleViolation(CodeStudentUnderage, "Student must be at least 18 years old at enrollment.")
	ErrStudentBirthDateMissing = NewRuleViolation(CodeStudentUnderage, "Student must be at least 18 years old at enrollment. Date of birth is required.")
	ErrCourseInactive          = NewRuleViolation(CodeCourseInactive, "Course is inactive. Enrollment is not allowed.")
	ErrCourseNoCredits         = NewRuleViolation(CodeCourseNoCredits, "Course must have at least 1 credit to allow enrollment.")
	ErrDuplicateEnrollment     = NewRuleViolation(CodeDuplicateEnrollment, "A student cannot enroll in the same course more than once.")
	ErrMaxCoursesExceeded      = NewRuleViolation(CodeMaxCoursesExceeded, "A student can enroll in a maximum of 5 courses.")
	ErrPastEnrollDate          = NewRuleViolation(CodePastEnrollDate, "Enrollment date cannot be in the past.")
	ErrDepartmentMismatch      = NewRuleViolation(CodeDepartmentMismatch, "A student can enroll only in courses of the same department.")
)

// Grading rule violations
var (
	ErrEnrollmentNotFound   = NewRuleViolation(CodeEnrollmentNotFound, "Grade can be assigned only after enrollment exists.")
	ErrGradeOutOfRange      = NewRuleViolation(CodeGradeOutOfRange, "Grade value must be within a valid range (0-10).")
	ErrGradeFinalized       = NewRuleViolation(CodeGradeFinalized, "Grade cannot be updated once it is finalized.")
	ErrGradingWindowExpired = NewRuleViolation(CodeGradingWindowExpired, "Grade can be assigned only within the grading period (30 days from enrollment).")
	ErrGradeNotAssigned     = NewRuleViolation(CodeGradeNotAssigned, "Grade must be assigned before it can be finalized.")
)

// RuleViolation is an expected, user-correctable business rule failure.
// Sentinels are compared by identity, so errors.Is works through wrapping.
type RuleViolation struct {
	Code    string
	Message string
}

// NewRuleViolation creates a rule violation with a stable code and message.
func NewRuleViolation(code, message string) *RuleViolation {
	return &RuleViolation{Code: code, Message: message}
}

// Error implements error interface
func (v *RuleViolation) Error() string {
	return v.Message
}

// AsRuleViolation reports whether err carries a rule violation and returns it.
func AsRuleViolation(err error) (*RuleViolation, bool) {
	var v *RuleViolation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
		Code:    CodeInvalidRequest,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
