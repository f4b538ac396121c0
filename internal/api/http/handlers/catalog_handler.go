package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/garage-service/internal/api/dto"
	"github.com/spec-kit/garage-service/internal/service"
)

// CatalogHandler exposes the service catalog: public browsing plus the
// admin management surface.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListPublic handles GET /services.
func (h *CatalogHandler) ListPublic(c *fiber.Ctx) error {
	offerings, err := h.catalog.ListPublic(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOfferingListResponse(offerings)})
}

// GetBySlug handles GET /services/:slug.
func (h *CatalogHandler) GetBySlug(c *fiber.Ctx) error {
	offering, err := h.catalog.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "service not found")
	}
	return c.JSON(fiber.Map{"data": dto.NewOfferingResponse(offering)})
}

// ListAll handles GET /admin/services.
func (h *CatalogHandler) ListAll(c *fiber.Ctx) error {
	offerings, err := h.catalog.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOfferingListResponse(offerings)})
}

// Create handles POST /admin/services.
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var req dto.OfferingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	offering, err := h.catalog.Create(c.Context(), service.OfferingInput{
		Name:            req.Name,
		Description:     req.Description,
		PriceCents:      req.PriceCents,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewOfferingResponse(offering)})
}

// Update handles PUT /admin/services/:id.
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	var req dto.OfferingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	offering, err := h.catalog.Update(c.Context(), c.Params("id"), service.OfferingInput{
		Name:            req.Name,
		Description:     req.Description,
		PriceCents:      req.PriceCents,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"data": dto.NewOfferingResponse(offering)})
}

// Deactivate handles DELETE /admin/services/:id.
func (h *CatalogHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.catalog.Deactivate(c.Context(), c.Params("id")); err != nil {
		return fiber.NewError(http.StatusNotFound, "service not found")
	}
	return c.SendStatus(http.StatusNoContent)
}
