package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskmanager/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Fullname        *string `json:"fullname" validate:"required,notblank,max=20"`
	Phone           *string `json:"phone" validate:"required,notblank,max=20"`
	Email           *string `json:"email" validate:"required,notblank,email,max=254"`
	Password        *string `json:"password" validate:"required,notblank"`
	ConfirmPassword *string `json:"confirm_password" validate:"required,notblank"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    *string `json:"email" validate:"required,notblank"`
	Password *string `json:"password" validate:"required,notblank"`
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	Refresh *string `json:"refresh" validate:"required,notblank"`
}

// UserResponse is the public view of a registered user.
type UserResponse struct {
	ID       uint   `json:"id"`
	Fullname string `json:"fullname"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// LoginResponse is the credential pair issued at login.
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	Email   string `json:"email"`
}

// AccessResponse carries a freshly issued access token.
type AccessResponse struct {
	Access string `json:"access"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} Response{data=UserResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register/ [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Fullname:        deref(req.Fullname),
		Phone:           deref(req.Phone),
		Email:           deref(req.Email),
		Password:        deref(req.Password),
		ConfirmPassword: deref(req.ConfirmPassword),
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "User registered successfully.", UserResponse{
		ID:       user.ID,
		Fullname: user.Fullname,
		Phone:    user.Phone,
		Email:    user.Email,
	})
}

// Login godoc
// @Summary Obtain an access and refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Response{data=LoginResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login/ [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pair, user, err := h.authService.Login(c.Request().Context(), deref(req.Email), deref(req.Password))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Login successful.", LoginResponse{
		Access:  pair.Access,
		Refresh: pair.Refresh,
		Email:   user.Email,
	})
}

// Refresh godoc
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} Response{data=AccessResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /token/refresh/ [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	access, err := h.authService.RefreshToken(c.Request().Context(), deref(req.Refresh))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Token refreshed successfully.", AccessResponse{Access: access})
}

// Logout godoc
// @Summary Revoke the refresh token and the access token in use
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /logout/ [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	var req RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), caller, deref(req.Refresh)); err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Logged out successfully.", nil)
}
