package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/garage-service/internal/domain"
	"github.com/spec-kit/garage-service/internal/observability"
	"github.com/spec-kit/garage-service/internal/repository"
	apperrors "github.com/spec-kit/garage-service/pkg/util"
)

const identityKey = "auth_identity"

// PageGuard intercepts every page request: it resolves the session,
// classifies the path and applies the access decision. The request
// either proceeds (with the identity stored in locals) or is answered
// with a redirect.
type PageGuard struct {
	sessions   SessionManager
	engine     *Engine
	cookieName string
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewPageGuard constructs the guard middleware.
func NewPageGuard(sessions SessionManager, engine *Engine, cookieName string, logger *zap.Logger, metrics *observability.Metrics) *PageGuard {
	return &PageGuard{
		sessions:   sessions,
		engine:     engine,
		cookieName: cookieName,
		logger:     logger,
		metrics:    metrics,
	}
}

// Handle evaluates the access decision for the request path.
func (g *PageGuard) Handle(c *fiber.Ctx) error {
	identity, err := g.sessions.Resolve(c.UserContext(), c.Cookies(g.cookieName))
	if err != nil {
		if errors.Is(err, ErrMalformedSession) {
			g.logger.Warn("clearing malformed session cookie", zap.Error(err))
			ClearSessionCookie(c, g.cookieName)
		}
		identity = nil
	}

	if identity != nil {
		c.Locals(identityKey, identity)
	}

	decision := g.engine.Decide(c.Path(), identity)
	if !decision.Allow {
		g.metrics.RecordRedirect(c.Path(), decision.Reason)
		return c.Redirect(decision.Location, fiber.StatusFound)
	}
	return c.Next()
}

// IdentityFromContext retrieves the resolved identity, if any.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}

// SetSessionCookie writes the session cookie for an issued value.
func SetSessionCookie(c *fiber.Ctx, name, value string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookie overwrites the session cookie with an
// immediately-expired one.
func ClearSessionCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// APIMiddleware validates bearer tokens for the JSON API surface and
// loads the caller's account.
type APIMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAPIMiddleware constructs middleware.
func NewAPIMiddleware(tokens *TokenManager, users repository.UserRepository) *APIMiddleware {
	return &APIMiddleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected API routes.
func (m *APIMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("user not found")
		}
		return apperrors.MapError(err)
	}
	if !user.Active {
		return apperrors.NewUnauthorized("account disabled")
	}

	c.Locals(identityKey, &domain.Identity{ID: user.ID, Email: user.Email, Role: user.Role})
	return c.Next()
}
