package router

import (
	"errors"
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskmanager/internal/auth"
	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/handler"
	"taskmanager/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	taskHandler *handler.TaskHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/register/", authHandler.Register)
	e.POST("/login/", authHandler.Login)
	e.POST("/token/refresh/", authHandler.Refresh)

	// Secured routes (require an access token). Attached per route so
	// unknown paths still answer 404.
	secured := JWTMiddleware(authService)

	e.POST("/logout/", authHandler.Logout, secured)
	e.GET("/me/", userHandler.Me, secured)

	e.GET("/tasks/", taskHandler.List, secured)
	e.POST("/tasks/", taskHandler.Create, secured)
	e.GET("/tasks/:id/", taskHandler.Get, secured)
	e.PUT("/tasks/:id/", taskHandler.Update, secured)
	e.DELETE("/tasks/:id/", taskHandler.Delete, secured)
	e.PATCH("/tasks/:id/status/", taskHandler.UpdateStatus, secured)
}

// JWTMiddleware authenticates bearer access tokens and stores the caller's
// *auth.Identity under auth.ContextKey.
func JWTMiddleware(authService service.AuthService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  auth.ContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authService.Authenticate(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var extractErr *echojwt.TokenExtractionError
			if errors.As(err, &extractErr) {
				return apperrors.ErrUnauthenticated
			}
			var parseErr *echojwt.TokenParsingError
			if errors.As(err, &parseErr) {
				return parseErr.Err
			}
			return err
		},
	})
}

// ErrorHandler renders every error in the uniform failure envelope. Unknown
// errors are logged and reported as a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, resp := errorResponse(err)
	if status >= http.StatusInternalServerError {
		log.Printf("request %s: %s %s: %v",
			c.Response().Header().Get(echo.HeaderXRequestID), c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, resp)
	}
	if err != nil {
		log.Printf("write error response: %v", err)
	}
}

func errorResponse(err error) (int, apperrors.ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		}
		if he.Code >= http.StatusInternalServerError {
			msg = "An unexpected error occurred."
		}
		return he.Code, apperrors.ErrorResponse{Success: false, Message: msg, Error: msg}
	}

	httpErr := apperrors.MapErrorToHTTP(err)
	return httpErr.StatusCode, httpErr.ToErrorResponse()
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator reports field errors under their JSON names and knows the
// notblank rule.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
