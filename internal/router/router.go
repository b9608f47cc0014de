package router

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ideaboard/internal/config"
	"ideaboard/internal/handler"
	"ideaboard/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log zerolog.Logger,
	authHandler *handler.AuthHandler,
	ideaHandler *handler.IdeaHandler,
	authenticator middleware.Authenticator,
) error {
	e.HTTPErrorHandler = handler.NewErrorHandler(log)
	e.Validator = NewValidator()

	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Metrics())
	e.Use(middleware.Secure(!cfg.IsProduction()))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")

	// register and login share one per-IP budget, refresh has its own.
	// Logout is never limited.
	credentialLimit, err := middleware.NewRateLimiter(cfg.AuthRateLimit)
	if err != nil {
		return fmt.Errorf("auth rate limit: %w", err)
	}
	refreshLimit, err := middleware.NewRateLimiter(cfg.RefreshRateLimit)
	if err != nil {
		return fmt.Errorf("refresh rate limit: %w", err)
	}

	api.POST("/auth/register", authHandler.Register, credentialLimit)
	api.POST("/auth/login", authHandler.Login, credentialLimit)
	api.POST("/auth/refresh", authHandler.Refresh, refreshLimit)
	api.POST("/auth/logout", authHandler.Logout)

	// Public reads
	api.GET("/ideas", ideaHandler.ListIdeas)
	api.GET("/ideas/:id", ideaHandler.GetIdea)

	// Secured routes (require a bearer access token). The gate is attached per
	// route so unknown /api paths still answer 404.
	requireAuth := middleware.JWTAuth(authenticator)
	api.POST("/ideas", middleware.WithIdentity(ideaHandler.CreateIdea), requireAuth)
	api.PUT("/ideas/:id", middleware.WithIdentity(ideaHandler.UpdateIdea), requireAuth)
	api.DELETE("/ideas/:id", middleware.WithIdentity(ideaHandler.DeleteIdea), requireAuth)

	return nil
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns the request validator used by the handlers.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
