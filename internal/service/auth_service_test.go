package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/garage-service/internal/auth"
	"github.com/spec-kit/garage-service/internal/config"
	"github.com/spec-kit/garage-service/internal/domain"
	"github.com/spec-kit/garage-service/internal/events"
	"github.com/spec-kit/garage-service/internal/repository/memory"
)

func testAuthConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 30,
			BcryptCost:            4,
		},
	}
}

func newTestAuthService(seed []domain.User) (*AuthService, events.Dispatcher) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	svc := NewAuthService(testAuthConfig(), AuthDependencies{
		UserRepo:   memory.NewUserRepository(seed),
		Sessions:   auth.NewCookieSessions(),
		Dispatcher: dispatcher,
	})
	return svc, dispatcher
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a customer account and starts a session", func(t *testing.T) {
		svc, dispatcher := newTestAuthService(nil)

		var loggedIn []events.Event
		dispatcher.Subscribe(events.EventUserLoggedIn, func(_ context.Context, e events.Event) error {
			loggedIn = append(loggedIn, e)
			return nil
		})

		result, err := svc.Register(ctx, "Casey Customer", "Casey@Garage.Test", "hunter22")
		require.NoError(t, err)

		assert.Equal(t, domain.RoleCustomer, result.User.Role)
		assert.Equal(t, "casey@garage.test", result.User.Email)
		assert.True(t, result.User.Active)
		assert.NotEmpty(t, result.SessionCookie)
		assert.NotEmpty(t, result.Token)
		require.Len(t, loggedIn, 1)
		assert.Equal(t, result.User.ID, loggedIn[0].Actor.ID)

		identity, err := auth.DecodeSession(result.SessionCookie)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleCustomer, identity.Role)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, _ := newTestAuthService(nil)

		_, err := svc.Register(ctx, "First", "dup@garage.test", "hunter22")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "Second", "DUP@garage.test", "hunter22")
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashPassword("hunter22", 4)
	require.NoError(t, err)
	seed := []domain.User{
		{ID: "u-1", Name: "Sam", Email: "staff@garage.test", PasswordHash: hash, Role: domain.RoleStaff, Active: true},
		{ID: "u-2", Name: "Gone", Email: "gone@garage.test", PasswordHash: hash, Role: domain.RoleCustomer, Active: false},
	}

	t.Run("valid credentials return session and token", func(t *testing.T) {
		svc, _ := newTestAuthService(seed)

		result, err := svc.Login(ctx, "STAFF@garage.test", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, "u-1", result.User.ID)

		identity, err := auth.DecodeSession(result.SessionCookie)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleStaff, identity.Role)
	})

	t.Run("wrong password and unknown email fail the same way", func(t *testing.T) {
		svc, _ := newTestAuthService(seed)

		_, badPassword := svc.Login(ctx, "staff@garage.test", "wrong")
		_, badEmail := svc.Login(ctx, "nobody@garage.test", "hunter22")

		require.Error(t, badPassword)
		require.Error(t, badEmail)
		assert.Equal(t, badPassword.Error(), badEmail.Error())
	})

	t.Run("disabled account cannot log in", func(t *testing.T) {
		svc, _ := newTestAuthService(seed)

		_, err := svc.Login(ctx, "gone@garage.test", "hunter22")
		assert.Error(t, err)
	})
}

func TestLogout(t *testing.T) {
	svc, dispatcher := newTestAuthService(nil)

	var loggedOut int
	dispatcher.Subscribe(events.EventUserLoggedOut, func(context.Context, events.Event) error {
		loggedOut++
		return nil
	})

	identity := &domain.Identity{ID: "u-1", Email: "casey@garage.test", Role: domain.RoleCustomer}
	require.NoError(t, svc.Logout(context.Background(), identity, "cookie-value"))
	assert.Equal(t, 1, loggedOut)
}
