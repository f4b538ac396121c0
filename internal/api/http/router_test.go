package http

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/garage-service/internal/api/http/handlers"
	"github.com/spec-kit/garage-service/internal/auth"
	"github.com/spec-kit/garage-service/internal/config"
	"github.com/spec-kit/garage-service/internal/events"
	"github.com/spec-kit/garage-service/internal/observability"
	"github.com/spec-kit/garage-service/internal/repository/memory"
	"github.com/spec-kit/garage-service/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	seed := memory.DefaultSeed()
	dispatcher := events.NewInMemoryDispatcher(logger)
	sessions := auth.NewCookieSessions()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 30,
			BcryptCost:            4,
		},
		Session: config.SessionConfig{CookieName: "session", TTLMinutes: 60},
	}

	userRepo := memory.NewUserRepository(seed.Users)
	offeringRepo := memory.NewOfferingRepository(seed.Offerings)

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Sessions:   sessions,
		Dispatcher: dispatcher,
	})
	appointmentService := service.NewAppointmentService(service.AppointmentDependencies{
		AppointmentRepo: memory.NewAppointmentRepository(nil),
		OfferingRepo:    offeringRepo,
		UserRepo:        userRepo,
		Dispatcher:      dispatcher,
	})
	subscriptionService := service.NewSubscriptionService(service.SubscriptionDependencies{
		PlanRepo:         memory.NewPlanRepository(seed.Plans),
		SubscriptionRepo: memory.NewSubscriptionRepository(nil),
		Dispatcher:       dispatcher,
	})

	engine := auth.NewEngine(auth.DefaultRouteTable(), logger)
	guard := auth.NewPageGuard(sessions, engine, cfg.Session.CookieName, logger, metrics)
	apiMiddleware := auth.NewAPIMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:        handlers.NewHealthHandler("garage-service", "test", nil, nil),
		Pages:         handlers.NewPagesHandler("garage-service"),
		Auth:          handlers.NewAuthHandler(authService, cfg.Session.CookieName, cfg.Session.TTL()),
		Catalog:       handlers.NewCatalogHandler(service.NewCatalogService(offeringRepo)),
		Appointments:  handlers.NewAppointmentsHandler(appointmentService),
		Subscriptions: handlers.NewSubscriptionsHandler(subscriptionService),
		Contact:       handlers.NewContactHandler(service.NewContactService(memory.NewContactRepository(), dispatcher)),
		PageGuard:     guard,
		APIMiddleware: apiMiddleware,
	})
	return app
}

func login(t *testing.T, app *fiber.App, email, password string) *nethttp.Cookie {
	t.Helper()

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)
	req := httptest.NewRequest(nethttp.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session" {
			return cookie
		}
	}
	t.Fatal("no session cookie in login response")
	return nil
}

func TestPublicPages(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/", "/services", "/services/oil-change", "/plans", "/contact", "/login", "/register", "/health/live"} {
		req := httptest.NewRequest(nethttp.MethodGet, path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, nethttp.StatusOK, resp.StatusCode, path)
	}
}

func TestLoginFlow(t *testing.T) {
	app := newTestApp(t)

	t.Run("anonymous dashboard request bounces to login", func(t *testing.T) {
		req := httptest.NewRequest(nethttp.MethodGet, "/dashboard", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, nethttp.StatusFound, resp.StatusCode)

		loc, err := url.Parse(resp.Header.Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "/login", loc.Path)
		assert.Equal(t, "/dashboard", loc.Query().Get("redirect"))
	})

	t.Run("login issues a session that opens the dashboard", func(t *testing.T) {
		cookie := login(t, app, "customer@garage.test", "password")

		req := httptest.NewRequest(nethttp.MethodGet, "/dashboard", nil)
		req.AddCookie(cookie)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	})

	t.Run("bad credentials are rejected", func(t *testing.T) {
		body := bytes.NewReader([]byte(`{"email":"customer@garage.test","password":"wrong"}`))
		req := httptest.NewRequest(nethttp.MethodPost, "/login", body)
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, 10000)
		require.NoError(t, err)
		assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("logout clears the cookie and lands on the home page", func(t *testing.T) {
		cookie := login(t, app, "customer@garage.test", "password")

		req := httptest.NewRequest(nethttp.MethodPost, "/logout", nil)
		req.AddCookie(cookie)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, nethttp.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
	})
}

func TestRoleGatedPages(t *testing.T) {
	app := newTestApp(t)

	customer := login(t, app, "customer@garage.test", "password")
	staff := login(t, app, "staff@garage.test", "password")
	admin := login(t, app, "admin@garage.test", "password")

	t.Run("customer cannot open admin pages", func(t *testing.T) {
		req := httptest.NewRequest(nethttp.MethodGet, "/admin", nil)
		req.AddCookie(customer)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, nethttp.StatusFound, resp.StatusCode)
		assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	})

	t.Run("staff reaches admin appointments only", func(t *testing.T) {
		req := httptest.NewRequest(nethttp.MethodGet, "/admin/appointments", nil)
		req.AddCookie(staff)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

		req = httptest.NewRequest(nethttp.MethodGet, "/admin/services", nil)
		req.AddCookie(staff)
		resp, err = app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, nethttp.StatusFound, resp.StatusCode)
		assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	})

	t.Run("admin reaches the whole admin area", func(t *testing.T) {
		for _, path := range []string{"/admin", "/admin/services", "/admin/appointments", "/admin/subscriptions", "/admin/messages"} {
			req := httptest.NewRequest(nethttp.MethodGet, path, nil)
			req.AddCookie(admin)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, nethttp.StatusOK, resp.StatusCode, path)
		}
	})

	t.Run("staff is kept off customer booking pages", func(t *testing.T) {
		req := httptest.NewRequest(nethttp.MethodGet, "/bookings", nil)
		req.AddCookie(staff)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, nethttp.StatusFound, resp.StatusCode)
		assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	})

	t.Run("authenticated visitors bounce off the login page", func(t *testing.T) {
		req := httptest.NewRequest(nethttp.MethodGet, "/login", nil)
		req.AddCookie(customer)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, nethttp.StatusFound, resp.StatusCode)
		assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	})
}

func TestBookingFlow(t *testing.T) {
	app := newTestApp(t)
	customer := login(t, app, "customer@garage.test", "password")
	seed := memory.DefaultSeed()

	payload, err := json.Marshal(map[string]any{
		"service_id":    seed.Offerings[0].ID,
		"vehicle_make":  "Honda",
		"vehicle_model": "Civic",
		"vehicle_year":  2021,
		"scheduled_at":  time.Now().Add(72 * time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(nethttp.MethodPost, "/bookings", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(customer)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	req = httptest.NewRequest(nethttp.MethodGet, "/bookings", nil)
	req.AddCookie(customer)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var listBody struct {
		Data []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &listBody))
	require.Len(t, listBody.Data, 1)
	assert.Equal(t, "PENDING", listBody.Data[0].Status)
}

func TestAPIAuthFlow(t *testing.T) {
	app := newTestApp(t)

	t.Run("api requests bypass the page guard but need a token", func(t *testing.T) {
		req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/me", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token from login opens the api surface", func(t *testing.T) {
		body := bytes.NewReader([]byte(`{"email":"customer@garage.test","password":"password"}`))
		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/auth/login", body)
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, 10000)
		require.NoError(t, err)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var loginBody struct {
			Data struct {
				Auth struct {
					Token string `json:"token"`
				} `json:"auth"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &loginBody))
		require.NotEmpty(t, loginBody.Data.Auth.Token)

		req = httptest.NewRequest(nethttp.MethodGet, "/api/v1/me", nil)
		req.Header.Set("Authorization", "Bearer "+loginBody.Data.Auth.Token)
		resp, err = app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	})
}
