package auth

import "strings"

// RouteTable is the static route classification, built once at startup
// and never mutated afterwards.
type RouteTable struct {
	// PublicPaths allow anonymous access on exact match.
	PublicPaths []string
	// PublicPrefixes allow anonymous access on prefix match.
	PublicPrefixes []string
	// BypassPrefixes always pass through the guard unclassified
	// (API routes and static assets carry their own auth).
	BypassPrefixes []string
	// ProtectedPrefixes require a resolved identity.
	ProtectedPrefixes []string
	// AdminPrefix requires role admin, except for the staff-allowed
	// sub-prefixes below.
	AdminPrefix               string
	StaffAllowedAdminPrefixes []string
	// CustomerOnlyPrefixes require role customer.
	CustomerOnlyPrefixes []string

	LoginPath     string
	RegisterPath  string
	DashboardPath string
}

// DefaultRouteTable returns the garage site's route classification.
func DefaultRouteTable() RouteTable {
	return RouteTable{
		PublicPaths:               []string{"/", "/services", "/contact", "/plans", "/login", "/register"},
		PublicPrefixes:            []string{"/services/"},
		BypassPrefixes:            []string{"/api", "/static", "/health"},
		ProtectedPrefixes:         []string{"/dashboard", "/admin", "/bookings", "/subscriptions", "/profile"},
		AdminPrefix:               "/admin",
		StaffAllowedAdminPrefixes: []string{"/admin/appointments"},
		CustomerOnlyPrefixes:      []string{"/bookings", "/subscriptions"},
		LoginPath:                 "/login",
		RegisterPath:              "/register",
		DashboardPath:             "/dashboard",
	}
}

// Classification is the category breakdown for a single path. The
// flags are independent overlays; a path can be both protected and
// role restricted.
type Classification struct {
	Bypass            bool
	Public            bool
	Protected         bool
	Admin             bool
	StaffAllowedAdmin bool
	CustomerOnly      bool
}

// Classify categorizes a request path against the table.
func (t RouteTable) Classify(path string) Classification {
	var c Classification

	for _, prefix := range t.BypassPrefixes {
		if strings.HasPrefix(path, prefix) {
			c.Bypass = true
			return c
		}
	}

	for _, p := range t.PublicPaths {
		if path == p {
			c.Public = true
			break
		}
	}
	if !c.Public {
		for _, prefix := range t.PublicPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Public = true
				break
			}
		}
	}

	for _, prefix := range t.ProtectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			c.Protected = true
			break
		}
	}

	if t.AdminPrefix != "" && strings.HasPrefix(path, t.AdminPrefix) {
		c.Admin = true
		for _, prefix := range t.StaffAllowedAdminPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.StaffAllowedAdmin = true
				break
			}
		}
	}

	for _, prefix := range t.CustomerOnlyPrefixes {
		if strings.HasPrefix(path, prefix) {
			c.CustomerOnly = true
			break
		}
	}

	return c
}
