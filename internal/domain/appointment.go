package domain

import (
	"fmt"
	"time"
)

// AppointmentStatus enumerates lifecycle states for appointments.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// CanTransitionTo reports whether a status change is allowed.
// PENDING -> CONFIRMED -> COMPLETED, with cancellation possible from
// either non-terminal state.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending:
		return next == AppointmentStatusConfirmed || next == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return next == AppointmentStatusCompleted || next == AppointmentStatusCancelled
	default:
		return false
	}
}

// ErrInvalidTransition signals a rejected appointment status change.
type ErrInvalidTransition struct {
	From AppointmentStatus
	To   AppointmentStatus
}

func (e ErrInvalidTransition) Error() string {
	return fmt.Sprintf("cannot transition appointment from %s to %s", e.From, e.To)
}

// Appointment is the aggregate for a booked service visit.
type Appointment struct {
	ID              string
	CustomerID      string
	ServiceID       string
	VehicleMake     string
	VehicleModel    string
	VehicleYear     int
	ScheduledAt     time.Time
	Status          AppointmentStatus
	AssignedStaffID *string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
