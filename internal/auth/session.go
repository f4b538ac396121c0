package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/spec-kit/garage-service/internal/domain"
)

// ErrMalformedSession marks a session token that is present but cannot
// be trusted: undecodable, missing required fields, or carrying a role
// outside the closed set. Callers clear the cookie and treat the
// request as anonymous.
var ErrMalformedSession = errors.New("malformed session")

// sessionPayload is the wire shape of the session cookie: URL-encoded
// JSON with the legacy userId field name.
type sessionPayload struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// EncodeSession serializes an identity into the cookie value format.
func EncodeSession(identity domain.Identity) (string, error) {
	payload := sessionPayload{
		UserID: identity.ID,
		Email:  identity.Email,
		Role:   string(identity.Role),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return url.QueryEscape(string(raw)), nil
}

// DecodeSession parses and validates a cookie value. Any defect maps to
// ErrMalformedSession; a default role is never assumed.
func DecodeSession(value string) (*domain.Identity, error) {
	unescaped, err := url.QueryUnescape(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}

	var payload sessionPayload
	if err := json.Unmarshal([]byte(unescaped), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	return payload.identity()
}

// identity validates a decoded payload: required fields first, then the
// closed role set. Both resolver paths share this check.
func (p sessionPayload) identity() (*domain.Identity, error) {
	if p.UserID == "" || p.Email == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrMalformedSession)
	}

	role, err := domain.ParseRole(p.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}

	return &domain.Identity{
		ID:    p.UserID,
		Email: p.Email,
		Role:  role,
	}, nil
}
