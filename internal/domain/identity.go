package domain

// Identity is the per-request view of the caller, reconstructed from
// the session token on every request. Absence of an Identity means the
// request is anonymous.
type Identity struct {
	ID    string
	Email string
	Role  Role
}
