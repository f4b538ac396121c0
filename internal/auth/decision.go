package auth

import (
	"net/url"

	"go.uber.org/zap"

	"github.com/spec-kit/garage-service/internal/domain"
)

// Redirect reasons, used for denial metrics.
const (
	ReasonAlreadyAuthenticated = "already_authenticated"
	ReasonUnauthenticated      = "unauthenticated"
	ReasonUnauthorized         = "unauthorized"
)

// Decision is the outcome of evaluating a request against the route
// table: either proceed, or redirect to Location.
type Decision struct {
	Allow    bool
	Location string
	Reason   string
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(location, reason string) Decision {
	return Decision{Location: location, Reason: reason}
}

// Engine is the access decision engine. It is a pure function over
// (path, identity); the route table is immutable after construction.
type Engine struct {
	table  RouteTable
	logger *zap.Logger
}

// NewEngine builds the engine around a route table.
func NewEngine(table RouteTable, logger *zap.Logger) *Engine {
	return &Engine{table: table, logger: logger}
}

// Decide evaluates the fixed rule order; the first matching rule wins.
// Every failure mode resolves to a redirect, never an error.
func (e *Engine) Decide(path string, identity *domain.Identity) Decision {
	c := e.table.Classify(path)
	if c.Bypass {
		return allow()
	}

	// Authenticated users do not see the auth forms.
	if identity != nil && (path == e.table.LoginPath || path == e.table.RegisterPath) {
		return redirect(e.table.DashboardPath, ReasonAlreadyAuthenticated)
	}

	if c.Protected && identity == nil {
		query := url.Values{"redirect": {path}}
		e.logger.Debug("unauthenticated request to protected path", zap.String("path", path))
		return redirect(e.table.LoginPath+"?"+query.Encode(), ReasonUnauthenticated)
	}

	if identity != nil && c.Admin {
		switch identity.Role {
		case domain.RoleAdmin:
			return allow()
		case domain.RoleStaff:
			if c.StaffAllowedAdmin {
				return allow()
			}
			e.logDenied(path, identity)
			return redirect(e.table.DashboardPath, ReasonUnauthorized)
		default:
			e.logDenied(path, identity)
			return redirect(e.table.DashboardPath, ReasonUnauthorized)
		}
	}

	if identity != nil && c.CustomerOnly && identity.Role != domain.RoleCustomer {
		e.logDenied(path, identity)
		return redirect(e.table.DashboardPath, ReasonUnauthorized)
	}

	return allow()
}

func (e *Engine) logDenied(path string, identity *domain.Identity) {
	e.logger.Warn("access denied",
		zap.String("path", path),
		zap.String("email", identity.Email),
		zap.String("role", string(identity.Role)))
}
