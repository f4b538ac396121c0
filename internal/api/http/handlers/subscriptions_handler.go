package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/garage-service/internal/api/dto"
	"github.com/spec-kit/garage-service/internal/auth"
	"github.com/spec-kit/garage-service/internal/domain"
	"github.com/spec-kit/garage-service/internal/service"
)

type ownedTransitionFunc func(ctx context.Context, customerID, subscriptionID string) (*domain.Subscription, error)

// SubscriptionsHandler exposes plan browsing and subscription
// management.
type SubscriptionsHandler struct {
	subscriptions *service.SubscriptionService
}

// NewSubscriptionsHandler constructs handler.
func NewSubscriptionsHandler(subscriptions *service.SubscriptionService) *SubscriptionsHandler {
	return &SubscriptionsHandler{subscriptions: subscriptions}
}

// Plans handles GET /plans.
func (h *SubscriptionsHandler) Plans(c *fiber.Ctx) error {
	plans, err := h.subscriptions.ListPlans(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPlanListResponse(plans)})
}

// Subscribe handles POST /subscriptions.
func (h *SubscriptionsHandler) Subscribe(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil || req.PlanID == "" {
		return fiber.NewError(http.StatusBadRequest, "plan_id required")
	}

	sub, err := h.subscriptions.Subscribe(c.Context(), identity.ID, req.PlanID)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSubscriptionResponse(sub)})
}

// ListMine handles GET /subscriptions.
func (h *SubscriptionsHandler) ListMine(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	subs, err := h.subscriptions.ListForCustomer(c.Context(), identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSubscriptionListResponse(subs)})
}

// Pause handles POST /subscriptions/:id/pause.
func (h *SubscriptionsHandler) Pause(c *fiber.Ctx) error {
	return h.applyOwned(c, h.subscriptions.Pause)
}

// Resume handles POST /subscriptions/:id/resume.
func (h *SubscriptionsHandler) Resume(c *fiber.Ctx) error {
	return h.applyOwned(c, h.subscriptions.Resume)
}

// Cancel handles POST /subscriptions/:id/cancel.
func (h *SubscriptionsHandler) Cancel(c *fiber.Ctx) error {
	return h.applyOwned(c, h.subscriptions.Cancel)
}

// ListAll handles GET /admin/subscriptions.
func (h *SubscriptionsHandler) ListAll(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	subs, err := h.subscriptions.ListAll(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSubscriptionListResponse(subs)})
}

func (h *SubscriptionsHandler) applyOwned(c *fiber.Ctx, fn ownedTransitionFunc) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	sub, err := fn(c.Context(), identity.ID, c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"data": dto.NewSubscriptionResponse(sub)})
}
