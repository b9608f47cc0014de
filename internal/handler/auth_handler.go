package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "ideaboard/internal/errors"
	"ideaboard/internal/middleware"
	"ideaboard/internal/model"
	"ideaboard/internal/service"
)

var (
	registerMessages = map[string]string{
		"required": "All fields are required",
		"min":      "Password must be at least 6 characters",
	}
	loginMessages = map[string]string{
		"required": "Email and password are required",
	}
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	cookies     refreshCookie
}

// NewAuthHandler creates a new auth handler. secureCookies marks the refresh
// cookie Secure and should be set in production.
func NewAuthHandler(authService service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     refreshCookie{secure: secureCookies},
	}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *RegisterRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents an authentication response. The refresh token is
// only ever sent as a cookie.
type AuthResponse struct {
	AccessToken string         `json:"accessToken"`
	User        model.Identity `json:"user"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	req.normalize()

	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(validationMessage(err, registerMessages))
	}

	result, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	middleware.RecordAuthAttempt("register", err == nil)
	if err != nil {
		return err
	}

	c.SetCookie(h.cookies.issue(result.RefreshToken))
	return c.JSON(http.StatusCreated, AuthResponse{
		AccessToken: result.AccessToken,
		User:        result.User,
	})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(validationMessage(err, loginMessages))
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	middleware.RecordAuthAttempt("login", err == nil)
	if err != nil {
		return err
	}

	c.SetCookie(h.cookies.issue(result.RefreshToken))
	return c.JSON(http.StatusCreated, AuthResponse{
		AccessToken: result.AccessToken,
		User:        result.User,
	})
}

// Refresh godoc
// @Summary Refresh access token
// @Description Reads the refreshToken cookie and returns a new access token. The refresh token itself is not rotated.
// @Tags auth
// @Produce json
// @Success 200 {object} AuthResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	token := ""
	if cookie, err := c.Cookie(refreshCookieName); err == nil {
		token = cookie.Value
	}

	result, err := h.authService.Refresh(c.Request().Context(), token)
	middleware.RecordAuthAttempt("refresh", err == nil)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken: result.AccessToken,
		User:        result.User,
	})
}

// Logout godoc
// @Summary Logout user
// @Description Clears the refresh token cookie. No server side state changes.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.cookies.clear())
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}
