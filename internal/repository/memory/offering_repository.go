package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/garage-service/internal/domain"
	"github.com/spec-kit/garage-service/internal/repository"
)

type offeringRepository struct {
	mu        sync.RWMutex
	offerings []domain.ServiceOffering
}

// NewOfferingRepository returns an in-memory implementation.
func NewOfferingRepository(seed []domain.ServiceOffering) repository.OfferingRepository {
	return &offeringRepository{offerings: append([]domain.ServiceOffering{}, seed...)}
}

func (r *offeringRepository) Create(_ context.Context, offering *domain.ServiceOffering) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if offering.ID == "" {
		offering.ID = uuid.NewString()
	}
	now := time.Now()
	offering.CreatedAt = now
	offering.UpdatedAt = now
	r.offerings = append(r.offerings, *offering)
	return nil
}

func (r *offeringRepository) Update(_ context.Context, offering *domain.ServiceOffering) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.offerings {
		if r.offerings[i].ID == offering.ID {
			offering.UpdatedAt = time.Now()
			r.offerings[i] = *offering
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *offeringRepository) GetByID(_ context.Context, id string) (*domain.ServiceOffering, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.offerings {
		if r.offerings[i].ID == id {
			o := r.offerings[i]
			return &o, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *offeringRepository) GetBySlug(_ context.Context, slug string) (*domain.ServiceOffering, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.offerings {
		if r.offerings[i].Slug == slug {
			o := r.offerings[i]
			return &o, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *offeringRepository) List(_ context.Context, activeOnly bool) ([]domain.ServiceOffering, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var offerings []domain.ServiceOffering
	for i := range r.offerings {
		if activeOnly && !r.offerings[i].Active {
			continue
		}
		offerings = append(offerings, r.offerings[i])
	}
	sort.Slice(offerings, func(i, j int) bool { return offerings[i].Name < offerings[j].Name })
	return offerings, nil
}
