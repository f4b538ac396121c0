package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/garage-service/internal/domain"
	"github.com/spec-kit/garage-service/internal/repository"
)

type contactRepository struct {
	mu   sync.RWMutex
	msgs []domain.ContactMessage
}

// NewContactRepository returns an in-memory implementation.
func NewContactRepository() repository.ContactRepository {
	return &contactRepository{}
}

func (r *contactRepository) Create(_ context.Context, msg *domain.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.CreatedAt = time.Now()
	r.msgs = append(r.msgs, *msg)
	return nil
}

func (r *contactRepository) List(_ context.Context, limit, offset int) ([]domain.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := append([]domain.ContactMessage{}, r.msgs...)
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].CreatedAt.After(msgs[j].CreatedAt) })

	if offset > 0 {
		if offset >= len(msgs) {
			return nil, nil
		}
		msgs = msgs[offset:]
	}
	if limit > 0 && limit < len(msgs) {
		msgs = msgs[:limit]
	}
	return msgs, nil
}
