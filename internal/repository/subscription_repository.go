package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/garage-service/internal/domain"
)

// PlanRepository encapsulates subscription plan persistence.
type PlanRepository interface {
	GetByID(ctx context.Context, id string) (*domain.SubscriptionPlan, error)
	List(ctx context.Context, activeOnly bool) ([]domain.SubscriptionPlan, error)
}

type planRepository struct {
	pool *pgxpool.Pool
}

// NewPlanRepository instantiates repository.
func NewPlanRepository(pool *pgxpool.Pool) PlanRepository {
	return &planRepository{pool: pool}
}

func (r *planRepository) GetByID(ctx context.Context, id string) (*domain.SubscriptionPlan, error) {
	const query = `
        SELECT id, name, price_cents, billing_interval, perks, active, created_at, updated_at
        FROM subscription_plans WHERE id=$1`

	var plan domain.SubscriptionPlan
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&plan.ID,
		&plan.Name,
		&plan.PriceCents,
		&plan.Interval,
		&plan.Perks,
		&plan.Active,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) List(ctx context.Context, activeOnly bool) ([]domain.SubscriptionPlan, error) {
	query := `
        SELECT id, name, price_cents, billing_interval, perks, active, created_at, updated_at
        FROM subscription_plans`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY price_cents`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []domain.SubscriptionPlan
	for rows.Next() {
		var plan domain.SubscriptionPlan
		if err := rows.Scan(
			&plan.ID,
			&plan.Name,
			&plan.PriceCents,
			&plan.Interval,
			&plan.Perks,
			&plan.Active,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// SubscriptionRepository encapsulates subscription persistence.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	Update(ctx context.Context, sub *domain.Subscription) error
	GetByID(ctx context.Context, id string) (*domain.Subscription, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Subscription, error)
	List(ctx context.Context, limit, offset int) ([]domain.Subscription, error)
}

type subscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository instantiates repository.
func NewSubscriptionRepository(pool *pgxpool.Pool) SubscriptionRepository {
	return &subscriptionRepository{pool: pool}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	const query = `
        INSERT INTO subscriptions (customer_id, plan_id, status, started_at, renews_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		sub.CustomerID,
		sub.PlanID,
		sub.Status,
		sub.StartedAt,
		sub.RenewsAt,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

func (r *subscriptionRepository) Update(ctx context.Context, sub *domain.Subscription) error {
	const query = `
        UPDATE subscriptions SET status=$1, renews_at=$2, cancelled_at=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		sub.Status,
		sub.RenewsAt,
		sub.CancelledAt,
		sub.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id string) (*domain.Subscription, error) {
	const query = `
        SELECT id, customer_id, plan_id, status, started_at, renews_at, cancelled_at, created_at, updated_at
        FROM subscriptions WHERE id=$1`

	var sub domain.Subscription
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&sub.ID,
		&sub.CustomerID,
		&sub.PlanID,
		&sub.Status,
		&sub.StartedAt,
		&sub.RenewsAt,
		&sub.CancelledAt,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Subscription, error) {
	const query = `
        SELECT id, customer_id, plan_id, status, started_at, renews_at, cancelled_at, created_at, updated_at
        FROM subscriptions WHERE customer_id=$1 ORDER BY started_at DESC`
	return r.queryMany(ctx, query, customerID)
}

func (r *subscriptionRepository) List(ctx context.Context, limit, offset int) ([]domain.Subscription, error) {
	const query = `
        SELECT id, customer_id, plan_id, status, started_at, renews_at, cancelled_at, created_at, updated_at
        FROM subscriptions ORDER BY started_at DESC LIMIT $1 OFFSET $2`
	if limit <= 0 {
		limit = 50
	}
	return r.queryMany(ctx, query, limit, offset)
}

func (r *subscriptionRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.Subscription, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.Subscription
	for rows.Next() {
		var sub domain.Subscription
		if err := rows.Scan(
			&sub.ID,
			&sub.CustomerID,
			&sub.PlanID,
			&sub.Status,
			&sub.StartedAt,
			&sub.RenewsAt,
			&sub.CancelledAt,
			&sub.CreatedAt,
			&sub.UpdatedAt,
		); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
