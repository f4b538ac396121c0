package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/garage-service/internal/api/dto"
	"github.com/spec-kit/garage-service/internal/auth"
	"github.com/spec-kit/garage-service/internal/domain"
	"github.com/spec-kit/garage-service/internal/service"
)

// AppointmentsHandler exposes customer booking and staff management of
// appointments.
type AppointmentsHandler struct {
	appointments *service.AppointmentService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointments *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{appointments: appointments}
}

// Book handles POST /bookings.
func (h *AppointmentsHandler) Book(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ServiceID == "" || req.ScheduledAt.IsZero() {
		return fiber.NewError(http.StatusBadRequest, "service_id and scheduled_at required")
	}

	appt, err := h.appointments.Book(c.Context(), identity.ID, service.BookingInput{
		ServiceID:    req.ServiceID,
		VehicleMake:  req.VehicleMake,
		VehicleModel: req.VehicleModel,
		VehicleYear:  req.VehicleYear,
		ScheduledAt:  req.ScheduledAt,
		Notes:        req.Notes,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAppointmentResponse(appt)})
}

// ListMine handles GET /bookings.
func (h *AppointmentsHandler) ListMine(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	limit, offset := pagination(c)
	appts, err := h.appointments.ListForCustomer(c.Context(), identity.ID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppointmentListResponse(appts)})
}

// CancelMine handles POST /bookings/:id/cancel.
func (h *AppointmentsHandler) CancelMine(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	appt, err := h.appointments.CancelForCustomer(c.Context(), identity.ID, c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"data": dto.NewAppointmentResponse(appt)})
}

// ListAll handles GET /admin/appointments.
func (h *AppointmentsHandler) ListAll(c *fiber.Ctx) error {
	filter := service.StaffFilter{}
	filter.Limit, filter.Offset = pagination(c)

	if raw := c.Query("status"); raw != "" {
		filter.Statuses = append(filter.Statuses, domain.AppointmentStatus(raw))
	}
	if raw := c.Query("from"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.ScheduledFrom = &t
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.ScheduledTo = &t
		}
	}

	appts, err := h.appointments.ListWithFilter(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppointmentListResponse(appts)})
}

// Confirm handles POST /admin/appointments/:id/confirm.
func (h *AppointmentsHandler) Confirm(c *fiber.Ctx) error {
	return h.applyTransition(c, h.appointments.Confirm)
}

// Complete handles POST /admin/appointments/:id/complete.
func (h *AppointmentsHandler) Complete(c *fiber.Ctx) error {
	return h.applyTransition(c, h.appointments.Complete)
}

// Cancel handles POST /admin/appointments/:id/cancel.
func (h *AppointmentsHandler) Cancel(c *fiber.Ctx) error {
	return h.applyTransition(c, h.appointments.Cancel)
}

// Assign handles POST /admin/appointments/:id/assign.
func (h *AppointmentsHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil || req.StaffID == "" {
		return fiber.NewError(http.StatusBadRequest, "staff_id required")
	}

	appt, err := h.appointments.Assign(c.Context(), c.Params("id"), req.StaffID)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"data": dto.NewAppointmentResponse(appt)})
}

type transitionFunc func(ctx context.Context, actor domain.Identity, appointmentID string) (*domain.Appointment, error)

func (h *AppointmentsHandler) applyTransition(c *fiber.Ctx, fn transitionFunc) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	appt, err := fn(c.Context(), *identity, c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"data": dto.NewAppointmentResponse(appt)})
}

func pagination(c *fiber.Ctx) (int, int) {
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
