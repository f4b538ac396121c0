package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/garage-service/internal/domain"
)

// SessionManager issues, resolves and revokes session cookie values.
//
// Resolve returns (nil, nil) for an absent or unknown-but-harmless
// token, (nil, ErrMalformedSession) when the cookie must be cleared,
// and an identity otherwise. It never surfaces store failures to the
// request path; an unreachable store degrades to anonymous.
type SessionManager interface {
	Issue(ctx context.Context, identity domain.Identity) (string, error)
	Resolve(ctx context.Context, value string) (*domain.Identity, error)
	Revoke(ctx context.Context, value string) error
}

// cookieSessions keeps the whole identity in the cookie itself as
// URL-encoded JSON. No server-side state is consulted.
type cookieSessions struct{}

// NewCookieSessions returns the stateless cookie-only manager.
func NewCookieSessions() SessionManager {
	return cookieSessions{}
}

func (cookieSessions) Issue(_ context.Context, identity domain.Identity) (string, error) {
	return EncodeSession(identity)
}

func (cookieSessions) Resolve(_ context.Context, value string) (*domain.Identity, error) {
	if value == "" {
		return nil, nil
	}
	return DecodeSession(value)
}

func (cookieSessions) Revoke(_ context.Context, _ string) error {
	return nil
}

// storeSessions keeps identities server side in Redis; the cookie only
// carries an opaque session ID. Lookups are bounded by a deadline and a
// store outage resolves to anonymous rather than blocking the request.
type storeSessions struct {
	client  *redis.Client
	ttl     time.Duration
	timeout time.Duration
	logger  *zap.Logger
}

// NewStoreSessions returns the Redis-backed manager.
func NewStoreSessions(client *redis.Client, ttl, timeout time.Duration, logger *zap.Logger) SessionManager {
	return &storeSessions{client: client, ttl: ttl, timeout: timeout, logger: logger}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *storeSessions) Issue(ctx context.Context, identity domain.Identity) (string, error) {
	raw, err := json.Marshal(sessionPayload{
		UserID: identity.ID,
		Email:  identity.Email,
		Role:   string(identity.Role),
	})
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	if err := s.client.Set(ctx, sessionKey(id), raw, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return id, nil
}

func (s *storeSessions) Resolve(ctx context.Context, value string) (*domain.Identity, error) {
	if value == "" {
		return nil, nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.client.Get(lookupCtx, sessionKey(value)).Result()
	if errors.Is(err, redis.Nil) {
		// session expired or revoked; the stale cookie should go
		return nil, fmt.Errorf("%w: unknown session id", ErrMalformedSession)
	}
	if err != nil {
		s.logger.Warn("session store lookup failed; treating as anonymous", zap.Error(err))
		return nil, nil
	}

	var payload sessionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	return payload.identity()
}

func (s *storeSessions) Revoke(ctx context.Context, value string) error {
	if value == "" {
		return nil
	}
	return s.client.Del(ctx, sessionKey(value)).Err()
}
