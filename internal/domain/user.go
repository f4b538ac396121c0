package domain

import (
	"fmt"
	"time"
)

// Role enumerates account roles. The set is closed; anything else is
// rejected at the session boundary.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// ParseRole validates a raw role value against the closed set.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// User is the account model for customers, staff and administrators.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
