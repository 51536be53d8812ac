package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Course and student codes: letters, digits and dashes
	CodePattern = `^[A-Za-z0-9\-]{1,20}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
	Code  *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	Code:  regexp.MustCompile(CodePattern),
}

// StringValidation checks a string against length and pattern rules.
// Lengths count characters of the trimmed value.
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    strings.TrimSpace(value),
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// IsBlank reports whether the trimmed value is empty
func (v *StringValidation) IsBlank() bool {
	return v.Value == ""
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}

	length := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && length < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && length > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// NumericValidation checks an optional integer against inclusive bounds.
type NumericValidation struct {
	Value *int
	Min   int
	Max   int
}

// NewNumericValidation creates a new numeric validation; a nil value fails
func NewNumericValidation(value *int) *NumericValidation {
	return &NumericValidation{Value: value, Min: 0, Max: int(^uint(0) >> 1)}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min int) *NumericValidation {
	v.Min = min
	return v
}

// WithMax sets maximum value
func (v *NumericValidation) WithMax(max int) *NumericValidation {
	v.Max = max
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	return v.Value != nil && *v.Value >= v.Min && *v.Value <= v.Max
}

// InRange reports whether value lies within [min, max]
func InRange(value, min, max float64) bool {
	return value >= min && value <= max
}

// SameText compares two identifiers case-insensitively, ignoring surrounding
// whitespace. Blank values never match.
func SameText(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}
