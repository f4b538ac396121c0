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

type appointmentRepository struct {
	mu    sync.RWMutex
	appts []domain.Appointment
}

// NewAppointmentRepository returns an in-memory implementation.
func NewAppointmentRepository(seed []domain.Appointment) repository.AppointmentRepository {
	return &appointmentRepository{appts: append([]domain.Appointment{}, seed...)}
}

func (r *appointmentRepository) Create(_ context.Context, appt *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	r.appts = append(r.appts, *appt)
	return nil
}

func (r *appointmentRepository) Update(_ context.Context, appt *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.appts {
		if r.appts[i].ID == appt.ID {
			appt.UpdatedAt = time.Now()
			r.appts[i] = *appt
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *appointmentRepository) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.appts {
		if r.appts[i].ID == id {
			appt := r.appts[i]
			return &appt, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *appointmentRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.Appointment, error) {
	return r.ListWithFilter(ctx, repository.AppointmentFilter{
		CustomerID: &customerID,
		Limit:      limit,
		Offset:     offset,
	})
}

func (r *appointmentRepository) ListWithFilter(_ context.Context, filter repository.AppointmentFilter) ([]domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var appts []domain.Appointment
	for i := range r.appts {
		if !matchesFilter(r.appts[i], filter) {
			continue
		}
		appts = append(appts, r.appts[i])
	}
	sort.Slice(appts, func(i, j int) bool { return appts[i].ScheduledAt.Before(appts[j].ScheduledAt) })

	if filter.Offset > 0 {
		if filter.Offset >= len(appts) {
			return nil, nil
		}
		appts = appts[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(appts) {
		appts = appts[:filter.Limit]
	}
	return appts, nil
}

func matchesFilter(appt domain.Appointment, filter repository.AppointmentFilter) bool {
	if filter.CustomerID != nil && appt.CustomerID != *filter.CustomerID {
		return false
	}
	if filter.ServiceID != nil && appt.ServiceID != *filter.ServiceID {
		return false
	}
	if filter.AssignedStaffID != nil {
		if appt.AssignedStaffID == nil || *appt.AssignedStaffID != *filter.AssignedStaffID {
			return false
		}
	}
	if len(filter.Statuses) > 0 {
		found := false
		for _, status := range filter.Statuses {
			if appt.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.ScheduledFrom != nil && appt.ScheduledAt.Before(*filter.ScheduledFrom) {
		return false
	}
	if filter.ScheduledTo != nil && appt.ScheduledAt.After(*filter.ScheduledTo) {
		return false
	}
	return true
}
