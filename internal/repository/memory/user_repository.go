// Package memory provides in-memory repository implementations backed
// by seeded slices. They serve as the default data layer when no
// Postgres DSN is configured and as fixtures in tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/garage-service/internal/domain"
	"github.com/spec-kit/garage-service/internal/repository"
)

type userRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

// NewUserRepository returns an in-memory implementation.
func NewUserRepository(seed []domain.User) repository.UserRepository {
	return &userRepository{users: append([]domain.User{}, seed...)}
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users = append(r.users, *user)
	return nil
}

func (r *userRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == user.ID {
			user.UpdatedAt = time.Now()
			r.users[i] = *user
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].ID == id {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].Email == email {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *userRepository) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []domain.User
	for i := range r.users {
		if r.users[i].Role == role {
			users = append(users, r.users[i])
		}
	}
	return users, nil
}
