package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/garage-service/internal/api/http/handlers"
	"github.com/spec-kit/garage-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Pages         *handlers.PagesHandler
	Auth          *handlers.AuthHandler
	Catalog       *handlers.CatalogHandler
	Appointments  *handlers.AppointmentsHandler
	Subscriptions *handlers.SubscriptionsHandler
	Contact       *handlers.ContactHandler
	PageGuard     *auth.PageGuard
	APIMiddleware *auth.APIMiddleware
}

// RegisterRoutes wires HTTP routes. The page guard runs ahead of every
// page route; the /api and /health prefixes bypass it and carry their
// own authentication.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.PageGuard.Handle)

	// Public pages.
	app.Get("/", cfg.Pages.Home)
	app.Get("/services", cfg.Catalog.ListPublic)
	app.Get("/services/:slug", cfg.Catalog.GetBySlug)
	app.Get("/plans", cfg.Subscriptions.Plans)
	app.Get("/contact", cfg.Pages.Contact)
	app.Post("/contact", cfg.Contact.Submit)

	// Auth pages; the guard bounces authenticated visitors.
	app.Get("/login", cfg.Pages.LoginPage)
	app.Post("/login", cfg.Auth.Login)
	app.Get("/register", cfg.Pages.RegisterPage)
	app.Post("/register", cfg.Auth.Register)
	app.Post("/logout", cfg.Auth.Logout)

	// Signed-in pages; the guard has already enforced authentication
	// and role restrictions before these handlers run.
	app.Get("/dashboard", cfg.Pages.Dashboard)
	app.Get("/profile", cfg.Pages.Profile)

	app.Get("/bookings", cfg.Appointments.ListMine)
	app.Post("/bookings", cfg.Appointments.Book)
	app.Post("/bookings/:id/cancel", cfg.Appointments.CancelMine)

	app.Get("/subscriptions", cfg.Subscriptions.ListMine)
	app.Post("/subscriptions", cfg.Subscriptions.Subscribe)
	app.Post("/subscriptions/:id/pause", cfg.Subscriptions.Pause)
	app.Post("/subscriptions/:id/resume", cfg.Subscriptions.Resume)
	app.Post("/subscriptions/:id/cancel", cfg.Subscriptions.Cancel)

	app.Get("/admin", cfg.Pages.AdminHome)
	app.Get("/admin/appointments", cfg.Appointments.ListAll)
	app.Post("/admin/appointments/:id/confirm", cfg.Appointments.Confirm)
	app.Post("/admin/appointments/:id/complete", cfg.Appointments.Complete)
	app.Post("/admin/appointments/:id/cancel", cfg.Appointments.Cancel)
	app.Post("/admin/appointments/:id/assign", cfg.Appointments.Assign)
	app.Get("/admin/services", cfg.Catalog.ListAll)
	app.Post("/admin/services", cfg.Catalog.Create)
	app.Put("/admin/services/:id", cfg.Catalog.Update)
	app.Delete("/admin/services/:id", cfg.Catalog.Deactivate)
	app.Get("/admin/subscriptions", cfg.Subscriptions.ListAll)
	app.Get("/admin/messages", cfg.Contact.ListAll)

	// Token-authenticated JSON API for non-browser clients.
	api := app.Group("/api/v1")
	api.Post("/auth/register", cfg.Auth.Register)
	api.Post("/auth/login", cfg.Auth.Login)
	api.Get("/services", cfg.Catalog.ListPublic)
	api.Get("/plans", cfg.Subscriptions.Plans)

	authed := api.Group("", cfg.APIMiddleware.Handle)
	authed.Get("/me", cfg.Auth.Me)

	authed.Get("/appointments", auth.RequireCustomer(), cfg.Appointments.ListMine)
	authed.Post("/appointments", auth.RequireCustomer(), cfg.Appointments.Book)
	authed.Post("/appointments/:id/cancel", auth.RequireCustomer(), cfg.Appointments.CancelMine)
	authed.Get("/subscriptions", auth.RequireCustomer(), cfg.Subscriptions.ListMine)
	authed.Post("/subscriptions", auth.RequireCustomer(), cfg.Subscriptions.Subscribe)

	// Role guards attach per route: the appointments surface is open
	// to staff, everything else under /admin needs an admin.
	adminAPI := authed.Group("/admin")
	adminAPI.Get("/appointments", auth.RequireStaff(), cfg.Appointments.ListAll)
	adminAPI.Post("/appointments/:id/confirm", auth.RequireStaff(), cfg.Appointments.Confirm)
	adminAPI.Post("/appointments/:id/complete", auth.RequireStaff(), cfg.Appointments.Complete)
	adminAPI.Post("/appointments/:id/cancel", auth.RequireStaff(), cfg.Appointments.Cancel)
	adminAPI.Post("/appointments/:id/assign", auth.RequireStaff(), cfg.Appointments.Assign)
	adminAPI.Get("/services", auth.RequireAdmin(), cfg.Catalog.ListAll)
	adminAPI.Post("/services", auth.RequireAdmin(), cfg.Catalog.Create)
	adminAPI.Put("/services/:id", auth.RequireAdmin(), cfg.Catalog.Update)
	adminAPI.Delete("/services/:id", auth.RequireAdmin(), cfg.Catalog.Deactivate)
	adminAPI.Get("/subscriptions", auth.RequireAdmin(), cfg.Subscriptions.ListAll)
	adminAPI.Get("/messages", auth.RequireAdmin(), cfg.Contact.ListAll)
}
