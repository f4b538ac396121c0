package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/garage-service/internal/auth"
)

// PagesHandler serves the JSON payloads behind the site's page routes.
// Rendering is handled by the front end; these endpoints only provide
// data and confirm the access decision already made by the guard.
type PagesHandler struct {
	siteName string
}

// NewPagesHandler constructs handler.
func NewPagesHandler(siteName string) *PagesHandler {
	return &PagesHandler{siteName: siteName}
}

// Home handles GET /.
func (h *PagesHandler) Home(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"site": h.siteName, "page": "home"}})
}

// Contact handles GET /contact.
func (h *PagesHandler) Contact(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"site": h.siteName, "page": "contact"}})
}

// LoginPage handles GET /login.
func (h *PagesHandler) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{
		"page":     "login",
		"redirect": c.Query("redirect", "/dashboard"),
	}})
}

// RegisterPage handles GET /register.
func (h *PagesHandler) RegisterPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"page": "register"}})
}

// Dashboard handles GET /dashboard.
func (h *PagesHandler) Dashboard(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"page":  "dashboard",
		"email": identity.Email,
		"role":  identity.Role,
	}})
}

// Profile handles GET /profile.
func (h *PagesHandler) Profile(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"page":  "profile",
		"id":    identity.ID,
		"email": identity.Email,
		"role":  identity.Role,
	}})
}

// AdminHome handles GET /admin.
func (h *PagesHandler) AdminHome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"page": "admin"}})
}
