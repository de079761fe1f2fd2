package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/service"
)

// UserHandler serves the caller's own profile.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Me godoc
// @Summary Current user profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=UserResponse}
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/ [get]
func (h *UserHandler) Me(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	user, err := h.svc.GetUser(c.Request().Context(), caller.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return apperrors.ErrTokenInvalid
		}
		return err
	}

	return respond(c, http.StatusOK, "User retrieved successfully.", UserResponse{
		ID:       user.ID,
		Fullname: user.Fullname,
		Phone:    user.Phone,
		Email:    user.Email,
	})
}
