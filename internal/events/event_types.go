package events

import (
	"time"

	"github.com/spec-kit/garage-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAppointmentBooked         EventType = "appointment_booked"
	EventAppointmentStatusChanged  EventType = "appointment_status_changed"
	EventSubscriptionStarted       EventType = "subscription_started"
	EventSubscriptionStatusChanged EventType = "subscription_status_changed"
	EventContactMessageReceived    EventType = "contact_message_received"
	EventUserLoggedIn              EventType = "user_logged_in"
	EventUserLoggedOut             EventType = "user_logged_out"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	ID    string      `json:"id,omitempty"`
	Email string      `json:"email,omitempty"`
	Role  domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AppointmentBookedPayload payload.
type AppointmentBookedPayload struct {
	AppointmentID string    `json:"appointment_id"`
	ServiceID     string    `json:"service_id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
}

// AppointmentStatusChangedPayload payload.
type AppointmentStatusChangedPayload struct {
	AppointmentID string                   `json:"appointment_id"`
	OldStatus     domain.AppointmentStatus `json:"old_status"`
	NewStatus     domain.AppointmentStatus `json:"new_status"`
}

// SubscriptionStartedPayload payload.
type SubscriptionStartedPayload struct {
	SubscriptionID string `json:"subscription_id"`
	PlanID         string `json:"plan_id"`
}

// SubscriptionStatusChangedPayload payload.
type SubscriptionStatusChangedPayload struct {
	SubscriptionID string                    `json:"subscription_id"`
	OldStatus      domain.SubscriptionStatus `json:"old_status"`
	NewStatus      domain.SubscriptionStatus `json:"new_status"`
}

// ContactMessageReceivedPayload payload.
type ContactMessageReceivedPayload struct {
	MessageID string `json:"message_id"`
	Email     string `json:"email"`
	Preview   string `json:"preview"`
}
