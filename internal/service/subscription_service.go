package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/garage-service/internal/domain"
	"github.com/spec-kit/garage-service/internal/events"
	"github.com/spec-kit/garage-service/internal/repository"
)

// SubscriptionService coordinates maintenance plan subscriptions.
type SubscriptionService struct {
	plans      repository.PlanRepository
	subs       repository.SubscriptionRepository
	dispatcher events.Dispatcher
}

// SubscriptionDependencies bundles repositories for the service.
type SubscriptionDependencies struct {
	PlanRepo         repository.PlanRepository
	SubscriptionRepo repository.SubscriptionRepository
	Dispatcher       events.Dispatcher
}

// NewSubscriptionService constructs the service.
func NewSubscriptionService(deps SubscriptionDependencies) *SubscriptionService {
	return &SubscriptionService{
		plans:      deps.PlanRepo,
		subs:       deps.SubscriptionRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ListPlans returns the plans offered to customers.
func (s *SubscriptionService) ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	return s.plans.List(ctx, true)
}

// Subscribe starts a subscription; a customer holds at most one that
// is not cancelled.
func (s *SubscriptionService) Subscribe(ctx context.Context, customerID, planID string) (*domain.Subscription, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !plan.Active {
		return nil, errors.New("plan not available")
	}

	existing, err := s.subs.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].Status != domain.SubscriptionStatusCancelled {
			return nil, errors.New("customer already has a subscription")
		}
	}

	now := time.Now()
	sub := &domain.Subscription{
		CustomerID: customerID,
		PlanID:     plan.ID,
		Status:     domain.SubscriptionStatusActive,
		StartedAt:  now,
		RenewsAt:   nextRenewal(now, plan.Interval),
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventSubscriptionStarted,
		Actor:     events.Actor{ID: customerID, Role: domain.RoleCustomer},
		Timestamp: now,
		Payload: events.SubscriptionStartedPayload{
			SubscriptionID: sub.ID,
			PlanID:         plan.ID,
		},
	})
	return sub, nil
}

// ListForCustomer returns a customer's subscriptions, newest first.
func (s *SubscriptionService) ListForCustomer(ctx context.Context, customerID string) ([]domain.Subscription, error) {
	return s.subs.ListByCustomer(ctx, customerID)
}

// ListAll returns subscriptions for the admin surface.
func (s *SubscriptionService) ListAll(ctx context.Context, limit, offset int) ([]domain.Subscription, error) {
	return s.subs.List(ctx, limit, offset)
}

// Pause suspends an active subscription.
func (s *SubscriptionService) Pause(ctx context.Context, customerID, subscriptionID string) (*domain.Subscription, error) {
	return s.transitionOwned(ctx, customerID, subscriptionID, domain.SubscriptionStatusPaused)
}

// Resume reactivates a paused subscription.
func (s *SubscriptionService) Resume(ctx context.Context, customerID, subscriptionID string) (*domain.Subscription, error) {
	return s.transitionOwned(ctx, customerID, subscriptionID, domain.SubscriptionStatusActive)
}

// Cancel terminates a subscription.
func (s *SubscriptionService) Cancel(ctx context.Context, customerID, subscriptionID string) (*domain.Subscription, error) {
	sub, err := s.transitionOwned(ctx, customerID, subscriptionID, domain.SubscriptionStatusCancelled)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	sub.CancelledAt = &now
	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubscriptionService) transitionOwned(ctx context.Context, customerID, subscriptionID string, next domain.SubscriptionStatus) (*domain.Subscription, error) {
	sub, err := s.subs.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.CustomerID != customerID {
		return nil, errors.New("subscription not found")
	}
	if !sub.Status.CanTransitionTo(next) {
		return nil, errors.New("invalid subscription state change")
	}

	old := sub.Status
	sub.Status = next
	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventSubscriptionStatusChanged,
		Actor:     events.Actor{ID: customerID, Role: domain.RoleCustomer},
		Timestamp: time.Now(),
		Payload: events.SubscriptionStatusChangedPayload{
			SubscriptionID: sub.ID,
			OldStatus:      old,
			NewStatus:      next,
		},
	})
	return sub, nil
}

func (s *SubscriptionService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func nextRenewal(from time.Time, interval domain.BillingInterval) time.Time {
	if interval == domain.BillingIntervalYearly {
		return from.AddDate(1, 0, 0)
	}
	return from.AddDate(0, 1, 0)
}
