package domain

import "time"

// BillingInterval enumerates subscription billing cadences.
type BillingInterval string

const (
	BillingIntervalMonthly BillingInterval = "MONTHLY"
	BillingIntervalYearly  BillingInterval = "YEARLY"
)

// SubscriptionPlan is a maintenance plan offered to customers.
type SubscriptionPlan struct {
	ID         string
	Name       string
	PriceCents int64
	Interval   BillingInterval
	Perks      []string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SubscriptionStatus enumerates lifecycle states for subscriptions.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusPaused    SubscriptionStatus = "PAUSED"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
)

// CanTransitionTo reports whether a subscription status change is allowed.
func (s SubscriptionStatus) CanTransitionTo(next SubscriptionStatus) bool {
	switch s {
	case SubscriptionStatusActive:
		return next == SubscriptionStatusPaused || next == SubscriptionStatusCancelled
	case SubscriptionStatusPaused:
		return next == SubscriptionStatusActive || next == SubscriptionStatusCancelled
	default:
		return false
	}
}

// Subscription ties a customer to a plan.
type Subscription struct {
	ID          string
	CustomerID  string
	PlanID      string
	Status      SubscriptionStatus
	StartedAt   time.Time
	RenewsAt    time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
