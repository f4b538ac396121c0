package dto

import (
	"time"

	"github.com/spec-kit/garage-service/internal/domain"
)

// BookingRequest payload for creating an appointment.
type BookingRequest struct {
	ServiceID    string    `json:"service_id"`
	VehicleMake  string    `json:"vehicle_make"`
	VehicleModel string    `json:"vehicle_model"`
	VehicleYear  int       `json:"vehicle_year"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	Notes        string    `json:"notes"`
}

// AssignRequest payload for assigning staff to an appointment.
type AssignRequest struct {
	StaffID string `json:"staff_id"`
}

// AppointmentResponse is the public view of an appointment.
type AppointmentResponse struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customer_id"`
	ServiceID       string    `json:"service_id"`
	VehicleMake     string    `json:"vehicle_make"`
	VehicleModel    string    `json:"vehicle_model"`
	VehicleYear     int       `json:"vehicle_year"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	Status          string    `json:"status"`
	AssignedStaffID *string   `json:"assigned_staff_id,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewAppointmentResponse maps a domain appointment.
func NewAppointmentResponse(a *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:              a.ID,
		CustomerID:      a.CustomerID,
		ServiceID:       a.ServiceID,
		VehicleMake:     a.VehicleMake,
		VehicleModel:    a.VehicleModel,
		VehicleYear:     a.VehicleYear,
		ScheduledAt:     a.ScheduledAt,
		Status:          string(a.Status),
		AssignedStaffID: a.AssignedStaffID,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
	}
}

// NewAppointmentListResponse maps a slice of appointments.
func NewAppointmentListResponse(appts []domain.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appts))
	for i := range appts {
		out = append(out, NewAppointmentResponse(&appts[i]))
	}
	return out
}
