package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geniusforceai/familydash/internal/api/metrics"
	"github.com/geniusforceai/familydash/internal/core/domain"
	"github.com/geniusforceai/familydash/internal/core/ports"
)

// LoginThrottle limits token requests per client.
type LoginThrottle interface {
	Allow(ctx context.Context, clientKey string) bool
}

type AuthHandler struct {
	authService ports.AuthService
	throttle    LoginThrottle
}

// NewAuthHandler builds the handler; throttle may be nil to disable
// login rate limiting.
func NewAuthHandler(authService ports.AuthService, throttle LoginThrottle) *AuthHandler {
	return &AuthHandler{authService: authService, throttle: throttle}
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token authenticates form credentials and returns a bearer token.
//
// @Summary      Obtain an access token
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Account email"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Router       /token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	if h.throttle != nil && !h.throttle.Allow(c.Request().Context(), c.RealIP()) {
		metrics.LoginsThrottledTotal.Inc()
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many login attempts"})
	}

	username := c.FormValue("username")
	password := c.FormValue("password")

	token, _, err := h.authService.Login(c.Request().Context(), username, password)
	if err != nil {
		// Unknown account and wrong password render identically.
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}

	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Register creates a new user account. Admin only.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "New user details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Router       /api/users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		switch err {
		case domain.ErrEmailTaken, domain.ErrInvalidCredentials:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// Me returns the account behind the presented token.
func (h *AuthHandler) Me(c echo.Context) error {
	email, _ := c.Get("sub").(string)
	if email == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	user, err := h.authService.GetUser(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
