package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/garage-service/internal/domain"
	"github.com/spec-kit/garage-service/internal/events"
	"github.com/spec-kit/garage-service/internal/repository"
)

// AppointmentService coordinates booking workflows.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	offerings    repository.OfferingRepository
	users        repository.UserRepository
	dispatcher   events.Dispatcher
}

// AppointmentDependencies bundles repositories for the service.
type AppointmentDependencies struct {
	AppointmentRepo repository.AppointmentRepository
	OfferingRepo    repository.OfferingRepository
	UserRepo        repository.UserRepository
	Dispatcher      events.Dispatcher
}

// NewAppointmentService constructs the service.
func NewAppointmentService(deps AppointmentDependencies) *AppointmentService {
	return &AppointmentService{
		appointments: deps.AppointmentRepo,
		offerings:    deps.OfferingRepo,
		users:        deps.UserRepo,
		dispatcher:   deps.Dispatcher,
	}
}

// BookingInput describes a customer's booking request.
type BookingInput struct {
	ServiceID    string
	VehicleMake  string
	VehicleModel string
	VehicleYear  int
	ScheduledAt  time.Time
	Notes        string
}

// StaffFilter describes staff listing filters.
type StaffFilter struct {
	Statuses      []domain.AppointmentStatus
	ServiceID     *string
	AssignedTo    *string
	ScheduledFrom *time.Time
	ScheduledTo   *time.Time
	Limit         int
	Offset        int
}

// Book creates a PENDING appointment for a customer.
func (s *AppointmentService) Book(ctx context.Context, customerID string, input BookingInput) (*domain.Appointment, error) {
	offering, err := s.offerings.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if !offering.Active {
		return nil, errors.New("service not available")
	}
	if !input.ScheduledAt.After(time.Now()) {
		return nil, errors.New("scheduled time must be in the future")
	}

	appt := &domain.Appointment{
		CustomerID:   customerID,
		ServiceID:    offering.ID,
		VehicleMake:  strings.TrimSpace(input.VehicleMake),
		VehicleModel: strings.TrimSpace(input.VehicleModel),
		VehicleYear:  input.VehicleYear,
		ScheduledAt:  input.ScheduledAt,
		Status:       domain.AppointmentStatusPending,
		Notes:        strings.TrimSpace(input.Notes),
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventAppointmentBooked,
		Actor:     events.Actor{ID: customerID, Role: domain.RoleCustomer},
		Timestamp: time.Now(),
		Payload: events.AppointmentBookedPayload{
			AppointmentID: appt.ID,
			ServiceID:     appt.ServiceID,
			ScheduledAt:   appt.ScheduledAt,
		},
	})
	return appt, nil
}

// ListForCustomer returns a customer's own appointments.
func (s *AppointmentService) ListForCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.Appointment, error) {
	return s.appointments.ListByCustomer(ctx, customerID, limit, offset)
}

// CancelForCustomer cancels an appointment owned by the customer.
func (s *AppointmentService) CancelForCustomer(ctx context.Context, customerID, appointmentID string) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.CustomerID != customerID {
		return nil, errors.New("appointment not found")
	}
	return s.transition(ctx, appt, domain.AppointmentStatusCancelled, events.Actor{ID: customerID, Role: domain.RoleCustomer})
}

// ListWithFilter returns appointments for the staff surface.
func (s *AppointmentService) ListWithFilter(ctx context.Context, filter StaffFilter) ([]domain.Appointment, error) {
	return s.appointments.ListWithFilter(ctx, repository.AppointmentFilter{
		ServiceID:       filter.ServiceID,
		AssignedStaffID: filter.AssignedTo,
		Statuses:        filter.Statuses,
		ScheduledFrom:   filter.ScheduledFrom,
		ScheduledTo:     filter.ScheduledTo,
		Limit:           filter.Limit,
		Offset:          filter.Offset,
	})
}

// Confirm moves a PENDING appointment to CONFIRMED.
func (s *AppointmentService) Confirm(ctx context.Context, actor domain.Identity, appointmentID string) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, appt, domain.AppointmentStatusConfirmed, actorFrom(actor))
}

// Complete moves a CONFIRMED appointment to COMPLETED.
func (s *AppointmentService) Complete(ctx context.Context, actor domain.Identity, appointmentID string) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, appt, domain.AppointmentStatusCompleted, actorFrom(actor))
}

// Cancel cancels an appointment from the staff surface.
func (s *AppointmentService) Cancel(ctx context.Context, actor domain.Identity, appointmentID string) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, appt, domain.AppointmentStatusCancelled, actorFrom(actor))
}

// Assign sets the staff member responsible for an appointment.
func (s *AppointmentService) Assign(ctx context.Context, appointmentID, staffID string) (*domain.Appointment, error) {
	staff, err := s.users.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff.Role != domain.RoleStaff && staff.Role != domain.RoleAdmin {
		return nil, errors.New("assignee must be staff")
	}

	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	appt.AssignedStaffID = &staff.ID
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *AppointmentService) transition(ctx context.Context, appt *domain.Appointment, next domain.AppointmentStatus, actor events.Actor) (*domain.Appointment, error) {
	if !appt.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition{From: appt.Status, To: next}
	}

	old := appt.Status
	appt.Status = next
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventAppointmentStatusChanged,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload: events.AppointmentStatusChangedPayload{
			AppointmentID: appt.ID,
			OldStatus:     old,
			NewStatus:     next,
		},
	})
	return appt, nil
}

func (s *AppointmentService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorFrom(identity domain.Identity) events.Actor {
	return events.Actor{ID: identity.ID, Email: identity.Email, Role: identity.Role}
}
