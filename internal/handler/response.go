package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskmanager/internal/auth"
	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/pagination"
)

// Response is the success envelope wrapping every payload.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse is the success envelope of a paginated listing.
type ListResponse struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message"`
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Data     interface{} `json:"data"`
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func respondPage(c echo.Context, message string, page *pagination.Page, data interface{}) error {
	base := requestURL(c)
	return c.JSON(http.StatusOK, ListResponse{
		Success:  true,
		Message:  message,
		Count:    page.Count,
		Next:     page.NextURL(base),
		Previous: page.PreviousURL(base),
		Data:     data,
	})
}

// requestURL rebuilds the absolute URL the client called.
func requestURL(c echo.Context) *url.URL {
	req := c.Request()
	u := *req.URL
	u.Scheme = c.Scheme()
	u.Host = req.Host
	return &u
}

// identity returns the caller resolved by the auth middleware.
func identity(c echo.Context) (*auth.Identity, error) {
	id, ok := c.Get(auth.ContextKey).(*auth.Identity)
	if !ok || id == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return id, nil
}

// taskID parses the :id path parameter. Anything that is not a positive
// integer cannot name a task.
func taskID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrTaskNotFound
	}
	return uint(id), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
