package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/garage-service/internal/domain"
	"github.com/spec-kit/garage-service/internal/observability"
	"github.com/spec-kit/garage-service/internal/repository/memory"
	apperrors "github.com/spec-kit/garage-service/pkg/util"
)

const testCookieName = "session"

func guardedApp(t *testing.T) *fiber.App {
	t.Helper()

	guard := NewPageGuard(
		NewCookieSessions(),
		NewEngine(DefaultRouteTable(), zap.NewNop()),
		testCookieName,
		zap.NewNop(),
		observability.NewMetrics(),
	)

	app := fiber.New()
	app.Use(guard.Handle)
	app.All("/*", func(c *fiber.Ctx) error {
		if identity, ok := IdentityFromContext(c); ok {
			return c.SendString("hello " + identity.Email)
		}
		return c.SendString("hello anonymous")
	})
	return app
}

func sessionCookie(t *testing.T, role domain.Role) *http.Cookie {
	t.Helper()
	value, err := EncodeSession(domain.Identity{ID: "u-1", Email: "user@garage.test", Role: role})
	require.NoError(t, err)
	return &http.Cookie{Name: testCookieName, Value: value}
}

func TestPageGuard(t *testing.T) {
	app := guardedApp(t)

	t.Run("anonymous request to public page passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/services", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("anonymous request to protected page is redirected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)

		loc, err := url.Parse(resp.Header.Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "/login", loc.Path)
		assert.Equal(t, "/dashboard", loc.Query().Get("redirect"))
	})

	t.Run("valid session reaches protected page with identity in locals", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(sessionCookie(t, domain.RoleCustomer))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("authenticated visitor is bounced off the login page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.AddCookie(sessionCookie(t, domain.RoleCustomer))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	})

	t.Run("staff is redirected off admin services", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/services", nil)
		req.AddCookie(sessionCookie(t, domain.RoleStaff))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	})

	t.Run("malformed cookie is cleared and request treated as anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: url.QueryEscape(`{"role":"superadmin"}`)})
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		loc, err := url.Parse(resp.Header.Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "/login", loc.Path)

		setCookie := resp.Header.Get("Set-Cookie")
		assert.Contains(t, setCookie, testCookieName+"=")
		assert.Contains(t, strings.ToLower(setCookie), "expires=")
	})

	t.Run("malformed cookie on a public page still clears and allows", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/services", nil)
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: "garbage"})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get("Set-Cookie"))
	})
}

func TestAPIMiddleware(t *testing.T) {
	users := memory.NewUserRepository([]domain.User{
		{ID: "u-1", Name: "Casey", Email: "casey@garage.test", Role: domain.RoleCustomer, Active: true},
		{ID: "u-2", Name: "Gone", Email: "gone@garage.test", Role: domain.RoleCustomer, Active: false},
	})
	tokens := NewTokenManager("test-secret", 30)
	middleware := NewAPIMiddleware(tokens, users)

	newApp := func() *fiber.App {
		app := fiber.New(fiber.Config{
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				de := apperrors.ToDomainError(err)
				return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": de.Message})
			},
		})
		app.Get("/api/v1/me", middleware.Handle, func(c *fiber.Ctx) error {
			identity, _ := IdentityFromContext(c)
			return c.SendString(identity.Email)
		})
		return app
	}

	t.Run("valid bearer token passes", func(t *testing.T) {
		token, _, err := tokens.GenerateToken(&domain.User{ID: "u-1", Email: "casey@garage.test", Role: domain.RoleCustomer})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := newApp().Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		resp, err := newApp().Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("disabled account is rejected", func(t *testing.T) {
		token, _, err := tokens.GenerateToken(&domain.User{ID: "u-2", Email: "gone@garage.test", Role: domain.RoleCustomer})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := newApp().Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
