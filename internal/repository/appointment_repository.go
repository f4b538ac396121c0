package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/garage-service/internal/domain"
)

// AppointmentFilter captures staff search parameters.
type AppointmentFilter struct {
	CustomerID      *string
	ServiceID       *string
	AssignedStaffID *string
	Statuses        []domain.AppointmentStatus
	ScheduledFrom   *time.Time
	ScheduledTo     *time.Time
	Limit           int
	Offset          int
}

// AppointmentRepository encapsulates appointment persistence.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) error
	Update(ctx context.Context, appt *domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error)
}

type appointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository instantiates repository.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{pool: pool}
}

func (r *appointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	const query = `
        INSERT INTO appointments (customer_id, service_id, vehicle_make, vehicle_model, vehicle_year,
            scheduled_at, status, assigned_staff_id, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		appt.CustomerID,
		appt.ServiceID,
		appt.VehicleMake,
		appt.VehicleModel,
		appt.VehicleYear,
		appt.ScheduledAt,
		appt.Status,
		appt.AssignedStaffID,
		appt.Notes,
	).Scan(&appt.ID, &appt.CreatedAt, &appt.UpdatedAt)
}

func (r *appointmentRepository) Update(ctx context.Context, appt *domain.Appointment) error {
	const query = `
        UPDATE appointments SET service_id=$1, vehicle_make=$2, vehicle_model=$3, vehicle_year=$4,
            scheduled_at=$5, status=$6, assigned_staff_id=$7, notes=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		appt.ServiceID,
		appt.VehicleMake,
		appt.VehicleModel,
		appt.VehicleYear,
		appt.ScheduledAt,
		appt.Status,
		appt.AssignedStaffID,
		appt.Notes,
		appt.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	const query = `
        SELECT id, customer_id, service_id, vehicle_make, vehicle_model, vehicle_year,
               scheduled_at, status, assigned_staff_id, notes, created_at, updated_at
        FROM appointments WHERE id=$1`

	var appt domain.Appointment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&appt.ID,
		&appt.CustomerID,
		&appt.ServiceID,
		&appt.VehicleMake,
		&appt.VehicleModel,
		&appt.VehicleYear,
		&appt.ScheduledAt,
		&appt.Status,
		&appt.AssignedStaffID,
		&appt.Notes,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.Appointment, error) {
	filter := AppointmentFilter{
		CustomerID: &customerID,
		Limit:      limit,
		Offset:     offset,
	}
	return r.ListWithFilter(ctx, filter)
}

func (r *appointmentRepository) ListWithFilter(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error) {
	base := `SELECT id, customer_id, service_id, vehicle_make, vehicle_model, vehicle_year,
                    scheduled_at, status, assigned_staff_id, notes, created_at, updated_at
             FROM appointments`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id=$%d", len(args)))
	}
	if filter.ServiceID != nil {
		args = append(args, *filter.ServiceID)
		clauses = append(clauses, fmt.Sprintf("service_id=$%d", len(args)))
	}
	if filter.AssignedStaffID != nil {
		args = append(args, *filter.AssignedStaffID)
		clauses = append(clauses, fmt.Sprintf("assigned_staff_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.ScheduledFrom != nil {
		args = append(args, *filter.ScheduledFrom)
		clauses = append(clauses, fmt.Sprintf("scheduled_at >= $%d", len(args)))
	}
	if filter.ScheduledTo != nil {
		args = append(args, *filter.ScheduledTo)
		clauses = append(clauses, fmt.Sprintf("scheduled_at <= $%d", len(args)))
	}

	query := base + " WHERE " + strings.Join(clauses, " AND ") + " ORDER BY scheduled_at"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []domain.Appointment
	for rows.Next() {
		var appt domain.Appointment
		if err := rows.Scan(
			&appt.ID,
			&appt.CustomerID,
			&appt.ServiceID,
			&appt.VehicleMake,
			&appt.VehicleModel,
			&appt.VehicleYear,
			&appt.ScheduledAt,
			&appt.Status,
			&appt.AssignedStaffID,
			&appt.Notes,
			&appt.CreatedAt,
			&appt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	return appts, rows.Err()
}
