package dto

import (
	"time"

	"github.com/spec-kit/garage-service/internal/domain"
)

// SubscribeRequest payload for starting a subscription.
type SubscribeRequest struct {
	PlanID string `json:"plan_id"`
}

// PlanResponse is the public view of a subscription plan.
type PlanResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	PriceCents int64    `json:"price_cents"`
	Interval   string   `json:"interval"`
	Perks      []string `json:"perks"`
}

// NewPlanListResponse maps a slice of plans.
func NewPlanListResponse(plans []domain.SubscriptionPlan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, PlanResponse{
			ID:         plans[i].ID,
			Name:       plans[i].Name,
			PriceCents: plans[i].PriceCents,
			Interval:   string(plans[i].Interval),
			Perks:      plans[i].Perks,
		})
	}
	return out
}

// SubscriptionResponse is the public view of a subscription.
type SubscriptionResponse struct {
	ID          string     `json:"id"`
	CustomerID  string     `json:"customer_id"`
	PlanID      string     `json:"plan_id"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	RenewsAt    time.Time  `json:"renews_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// NewSubscriptionResponse maps a domain subscription.
func NewSubscriptionResponse(s *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:          s.ID,
		CustomerID:  s.CustomerID,
		PlanID:      s.PlanID,
		Status:      string(s.Status),
		StartedAt:   s.StartedAt,
		RenewsAt:    s.RenewsAt,
		CancelledAt: s.CancelledAt,
	}
}

// NewSubscriptionListResponse maps a slice of subscriptions.
func NewSubscriptionListResponse(subs []domain.Subscription) []SubscriptionResponse {
	out := make([]SubscriptionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, NewSubscriptionResponse(&subs[i]))
	}
	return out
}
