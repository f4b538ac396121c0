package dto

import (
	"time"

	"github.com/spec-kit/garage-service/internal/domain"
)

// ContactRequest payload for the contact form.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactMessageResponse is the admin view of an inquiry.
type ContactMessageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewContactMessageListResponse maps a slice of messages.
func NewContactMessageListResponse(msgs []domain.ContactMessage) []ContactMessageResponse {
	out := make([]ContactMessageResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, ContactMessageResponse{
			ID:        msgs[i].ID,
			Name:      msgs[i].Name,
			Email:     msgs[i].Email,
			Message:   msgs[i].Message,
			CreatedAt: msgs[i].CreatedAt,
		})
	}
	return out
}
