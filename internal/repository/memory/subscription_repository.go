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

type planRepository struct {
	mu    sync.RWMutex
	plans []domain.SubscriptionPlan
}

// NewPlanRepository returns an in-memory implementation.
func NewPlanRepository(seed []domain.SubscriptionPlan) repository.PlanRepository {
	return &planRepository{plans: append([]domain.SubscriptionPlan{}, seed...)}
}

func (r *planRepository) GetByID(_ context.Context, id string) (*domain.SubscriptionPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.plans {
		if r.plans[i].ID == id {
			plan := r.plans[i]
			return &plan, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *planRepository) List(_ context.Context, activeOnly bool) ([]domain.SubscriptionPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var plans []domain.SubscriptionPlan
	for i := range r.plans {
		if activeOnly && !r.plans[i].Active {
			continue
		}
		plans = append(plans, r.plans[i])
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].PriceCents < plans[j].PriceCents })
	return plans, nil
}

type subscriptionRepository struct {
	mu   sync.RWMutex
	subs []domain.Subscription
}

// NewSubscriptionRepository returns an in-memory implementation.
func NewSubscriptionRepository(seed []domain.Subscription) repository.SubscriptionRepository {
	return &subscriptionRepository{subs: append([]domain.Subscription{}, seed...)}
}

func (r *subscriptionRepository) Create(_ context.Context, sub *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	now := time.Now()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	r.subs = append(r.subs, *sub)
	return nil
}

func (r *subscriptionRepository) Update(_ context.Context, sub *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.subs {
		if r.subs[i].ID == sub.ID {
			sub.UpdatedAt = time.Now()
			r.subs[i] = *sub
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *subscriptionRepository) GetByID(_ context.Context, id string) (*domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.subs {
		if r.subs[i].ID == id {
			sub := r.subs[i]
			return &sub, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *subscriptionRepository) ListByCustomer(_ context.Context, customerID string) ([]domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var subs []domain.Subscription
	for i := range r.subs {
		if r.subs[i].CustomerID == customerID {
			subs = append(subs, r.subs[i])
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].StartedAt.After(subs[j].StartedAt) })
	return subs, nil
}

func (r *subscriptionRepository) List(_ context.Context, limit, offset int) ([]domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := append([]domain.Subscription{}, r.subs...)
	sort.Slice(subs, func(i, j int) bool { return subs[i].StartedAt.After(subs[j].StartedAt) })

	if offset > 0 {
		if offset >= len(subs) {
			return nil, nil
		}
		subs = subs[offset:]
	}
	if limit > 0 && limit < len(subs) {
		subs = subs[:limit]
	}
	return subs, nil
}
