package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "task not found", err: ErrTaskNotFound, wantStatus: http.StatusNotFound},
		{name: "wrapped task not found", err: fmt.Errorf("get task: %w", ErrTaskNotFound), wantStatus: http.StatusNotFound},
		{name: "page not found", err: ErrPageNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid credentials", err: ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "invalid refresh", err: ErrInvalidRefreshToken, wantStatus: http.StatusUnauthorized},
		{name: "validation", err: FieldError("title", MsgBlank), wantStatus: http.StatusBadRequest},
		{name: "unexpected", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
		})
	}
}

func TestMapErrorToHTTP_ValidationEnvelope(t *testing.T) {
	verr := NewValidationError()
	verr.Add("email", "user with this email already exists.")
	verr.Add("phone", "user with this phone already exists.")

	resp := MapErrorToHTTP(verr).ToErrorResponse()

	assert.False(t, resp.Success)
	assert.Equal(t, []string{"user with this email already exists."}, resp.Errors["email"])
	assert.Equal(t, []string{"user with this phone already exists."}, resp.Errors["phone"])
	assert.Empty(t, resp.Error)
}

func TestMapErrorToHTTP_InternalHidesDetail(t *testing.T) {
	resp := MapErrorToHTTP(fmt.Errorf("dial tcp 10.0.0.1:3306: connection refused")).ToErrorResponse()

	assert.Equal(t, "internal server error", resp.Error)
	assert.NotContains(t, resp.Message, "10.0.0.1")
}

func TestValidationError_Err(t *testing.T) {
	verr := NewValidationError()
	assert.NoError(t, verr.Err())

	verr.Add("title", MsgBlank)
	assert.Error(t, verr.Err())
	assert.Equal(t, "validation failed: title", verr.Error())

	verr.Add("due_date", MsgPastDueDate)
	assert.Equal(t, "validation failed: due_date, title", verr.Error())
}
