package errors

import (
	"errors"
	"net/http"
	"sort"
)

var (
	// ErrTaskNotFound is returned when a task does not exist or belongs to another user.
	ErrTaskNotFound = errors.New("task not found")
	// ErrPageNotFound is returned when the requested page is out of range.
	ErrPageNotFound = errors.New("invalid page")
	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid, expired or revoked.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrUnauthenticated is returned when no usable access token was presented.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrTokenInvalid is returned when an access token is malformed, expired, revoked or of the wrong type.
	ErrTokenInvalid = errors.New("token invalid")
)

// Common field messages.
const (
	MsgBlank         = "This field may not be blank."
	MsgRequired      = "This field is required."
	MsgInvalidEmail  = "Enter a valid email address."
	MsgInvalidDate   = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	MsgInvalidTime   = "Enter a valid date/time."
	MsgPastDueDate   = "Due date cannot be in the past."
	MsgPasswordMatch = "Passwords do not match."
)

// ValidationError collects client-fixable problems keyed by field name.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates an empty validation error.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// FieldError builds a validation error holding a single message.
func FieldError(field, message string) *ValidationError {
	v := NewValidationError()
	v.Add(field, message)
	return v
}

// Add records message against field.
func (v *ValidationError) Add(field, message string) {
	v.Fields[field] = append(v.Fields[field], message)
}

// HasErrors reports whether any field message was recorded.
func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

// Err returns v when it holds messages and nil otherwise.
func (v *ValidationError) Err() error {
	if v.HasErrors() {
		return v
	}
	return nil
}

func (v *ValidationError) Error() string {
	names := make([]string, 0, len(v.Fields))
	for field := range v.Fields {
		names = append(names, field)
	}
	sort.Strings(names)
	msg := "validation failed"
	for i, field := range names {
		if i == 0 {
			msg += ": "
		} else {
			msg += ", "
		}
		msg += field
	}
	return msg
}

// ErrorResponse is the uniform envelope returned for every failure.
type ErrorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Error   string              `json:"error,omitempty"`
	Detail  string              `json:"detail,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Detail     string
	Fields     map[string][]string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, detail string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Detail:     detail,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	resp := ErrorResponse{
		Success: false,
		Message: e.Message,
		Errors:  e.Fields,
		Detail:  e.Detail,
	}
	if e.Fields == nil {
		resp.Error = e.Detail
	}
	return resp
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Validation failed.",
			Fields:     validationErr.Fields,
		}
	}

	switch {
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, "Task not found.", "Not found.")
	case errors.Is(err, ErrPageNotFound):
		return NewHTTPError(http.StatusNotFound, "Page not found.", "Invalid page.")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Login failed.", "No active account found with the given credentials")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, "Token refresh failed.", "Token is invalid or expired")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, "Authentication failed.", "Authentication credentials were not provided.")
	case errors.Is(err, ErrTokenInvalid):
		return NewHTTPError(http.StatusUnauthorized, "Authentication failed.", "Given token not valid for any token type")
	default:
		return NewHTTPError(http.StatusInternalServerError, "An unexpected error occurred.", "internal server error")
	}
}
