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

// ContactService records inquiries from the contact page.
type ContactService struct {
	messages   repository.ContactRepository
	dispatcher events.Dispatcher
}

// NewContactService constructs the service.
func NewContactService(messages repository.ContactRepository, dispatcher events.Dispatcher) *ContactService {
	return &ContactService{messages: messages, dispatcher: dispatcher}
}

// Submit stores a contact message and notifies subscribers.
func (s *ContactService) Submit(ctx context.Context, name, email, message string) (*domain.ContactMessage, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if name == "" || email == "" || message == "" {
		return nil, errors.New("name, email and message required")
	}

	msg := &domain.ContactMessage{Name: name, Email: email, Message: message}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventContactMessageReceived,
			Actor:     events.Actor{Email: email},
			Timestamp: time.Now(),
			Payload: events.ContactMessageReceivedPayload{
				MessageID: msg.ID,
				Email:     email,
				Preview:   preview(message),
			},
		})
	}
	return msg, nil
}

// List returns stored messages for the admin surface.
func (s *ContactService) List(ctx context.Context, limit, offset int) ([]domain.ContactMessage, error) {
	return s.messages.List(ctx, limit, offset)
}

func preview(message string) string {
	const maxLen = 80
	if len(message) <= maxLen {
		return message
	}
	return message[:maxLen] + "..."
}
