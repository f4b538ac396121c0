package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/garage-service/internal/domain"
)

// OfferingRepository encapsulates service catalog persistence.
type OfferingRepository interface {
	Create(ctx context.Context, offering *domain.ServiceOffering) error
	Update(ctx context.Context, offering *domain.ServiceOffering) error
	GetByID(ctx context.Context, id string) (*domain.ServiceOffering, error)
	GetBySlug(ctx context.Context, slug string) (*domain.ServiceOffering, error)
	List(ctx context.Context, activeOnly bool) ([]domain.ServiceOffering, error)
}

type offeringRepository struct {
	pool *pgxpool.Pool
}

// NewOfferingRepository instantiates repository.
func NewOfferingRepository(pool *pgxpool.Pool) OfferingRepository {
	return &offeringRepository{pool: pool}
}

func (r *offeringRepository) Create(ctx context.Context, offering *domain.ServiceOffering) error {
	const query = `
        INSERT INTO service_offerings (name, slug, description, price_cents, duration_minutes, active)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		offering.Name,
		offering.Slug,
		offering.Description,
		offering.PriceCents,
		offering.DurationMinutes,
		offering.Active,
	).Scan(&offering.ID, &offering.CreatedAt, &offering.UpdatedAt)
}

func (r *offeringRepository) Update(ctx context.Context, offering *domain.ServiceOffering) error {
	const query = `
        UPDATE service_offerings SET name=$1, slug=$2, description=$3, price_cents=$4,
            duration_minutes=$5, active=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		offering.Name,
		offering.Slug,
		offering.Description,
		offering.PriceCents,
		offering.DurationMinutes,
		offering.Active,
		offering.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *offeringRepository) GetByID(ctx context.Context, id string) (*domain.ServiceOffering, error) {
	const query = `
        SELECT id, name, slug, description, price_cents, duration_minutes, active, created_at, updated_at
        FROM service_offerings WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *offeringRepository) GetBySlug(ctx context.Context, slug string) (*domain.ServiceOffering, error) {
	const query = `
        SELECT id, name, slug, description, price_cents, duration_minutes, active, created_at, updated_at
        FROM service_offerings WHERE slug=$1`
	return r.fetchSingle(ctx, query, slug)
}

func (r *offeringRepository) List(ctx context.Context, activeOnly bool) ([]domain.ServiceOffering, error) {
	query := `
        SELECT id, name, slug, description, price_cents, duration_minutes, active, created_at, updated_at
        FROM service_offerings`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offerings []domain.ServiceOffering
	for rows.Next() {
		var o domain.ServiceOffering
		if err := rows.Scan(
			&o.ID,
			&o.Name,
			&o.Slug,
			&o.Description,
			&o.PriceCents,
			&o.DurationMinutes,
			&o.Active,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		offerings = append(offerings, o)
	}
	return offerings, rows.Err()
}

func (r *offeringRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.ServiceOffering, error) {
	var o domain.ServiceOffering
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&o.ID,
		&o.Name,
		&o.Slug,
		&o.Description,
		&o.PriceCents,
		&o.DurationMinutes,
		&o.Active,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}
