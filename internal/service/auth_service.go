package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/garage-service/internal/auth"
	"github.com/spec-kit/garage-service/internal/config"
	"github.com/spec-kit/garage-service/internal/domain"
	"github.com/spec-kit/garage-service/internal/events"
	"github.com/spec-kit/garage-service/internal/repository"
)

// AuthService coordinates registration, login and logout flows.
type AuthService struct {
	users      repository.UserRepository
	sessions   auth.SessionManager
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Sessions   auth.SessionManager
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.Sessions,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// LoginResult carries everything a successful login produces.
type LoginResult struct {
	User          *domain.User
	SessionCookie string
	Token         string
	TokenExpires  time.Time
}

// Register creates a new customer account and logs it in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, errors.New("email already registered")
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.startSession(ctx, user)
}

// Login authenticates an account of any role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if !user.Active {
		return nil, errors.New("account disabled")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, errors.New("invalid credentials")
	}

	return s.startSession(ctx, user)
}

// Logout revokes the session value and publishes the logout event,
// replacing the original client-side polling re-check.
func (s *AuthService) Logout(ctx context.Context, identity *domain.Identity, sessionValue string) error {
	if err := s.sessions.Revoke(ctx, sessionValue); err != nil {
		return err
	}
	if identity != nil {
		s.publish(ctx, events.EventUserLoggedOut, *identity)
	}
	return nil
}

// GetUser loads an account by id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) startSession(ctx context.Context, user *domain.User) (*LoginResult, error) {
	identity := domain.Identity{ID: user.ID, Email: user.Email, Role: user.Role}

	cookie, err := s.sessions.Issue(ctx, identity)
	if err != nil {
		return nil, err
	}
	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserLoggedIn, identity)

	return &LoginResult{
		User:          user,
		SessionCookie: cookie,
		Token:         token,
		TokenExpires:  exp,
	}, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, identity domain.Identity) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:      eventType,
		Actor:     events.Actor{ID: identity.ID, Email: identity.Email, Role: identity.Role},
		Timestamp: time.Now(),
	})
}
