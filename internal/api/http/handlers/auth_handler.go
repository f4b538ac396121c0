package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/garage-service/internal/api/dto"
	"github.com/spec-kit/garage-service/internal/auth"
	"github.com/spec-kit/garage-service/internal/domain"
	"github.com/spec-kit/garage-service/internal/service"
)

// AuthHandler exposes registration, login and logout for both the
// page flow (session cookie) and the API flow (bearer token).
type AuthHandler struct {
	authService *service.AuthService
	cookieName  string
	cookieTTL   time.Duration
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookieName string, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, cookieName: cookieName, cookieTTL: cookieTTL}
}

// Register handles POST /register and POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	result, err := h.authService.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	auth.SetSessionCookie(c, h.cookieName, result.SessionCookie, h.cookieTTL)
	return c.Status(http.StatusCreated).JSON(loginPayload(result))
}

// Login handles POST /login and POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	result, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}

	auth.SetSessionCookie(c, h.cookieName, result.SessionCookie, h.cookieTTL)
	return c.JSON(loginPayload(result))
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	if err := h.authService.Logout(c.Context(), identity, c.Cookies(h.cookieName)); err != nil {
		return err
	}
	auth.ClearSessionCookie(c, h.cookieName)
	return c.Redirect("/", fiber.StatusFound)
}

// Me handles GET /api/v1/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	user, err := h.authService.GetUser(c.Context(), identity.ID)
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "user not found")
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

func loginPayload(result *service.LoginResult) fiber.Map {
	return fiber.Map{
		"data": fiber.Map{
			"user": userResponse(result.User),
			"auth": dto.AuthResponse{Token: result.Token, ExpiresAt: result.TokenExpires},
		},
	}
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}
