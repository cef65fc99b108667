package validator

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted on every API boundary.
const DateLayout = "2006-01-02"

// ValidationError describes one rejected field. Err optionally carries the
// domain sentinel behind the message so callers can match it with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the wrapped sentinels of every entry.
func (v ValidationErrors) Unwrap() []error {
	var errs []error
	for _, err := range v {
		if err.Err != nil {
			errs = append(errs, err.Err)
		}
	}
	return errs
}

// ToMap flattens the errors for the response envelope. Messages for the same
// field are joined.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		if prev, ok := result[err.Field]; ok {
			result[err.Field] = prev + "; " + err.Message
			continue
		}
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// AddErr appends a field error whose message is taken from err.
func (v *ValidationErrors) AddErr(field string, err error) {
	*v = append(*v, ValidationError{Field: field, Message: err.Error(), Err: err})
}

// OrNil returns nil for an empty set so it can be returned as an error.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
