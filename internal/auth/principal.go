package auth

import "github.com/rideaway/vehicle-rental/internal/domain"

// Principal is the authenticated caller, resolved from the bearer token and
// re-checked against the users table on every request.
type Principal struct {
	ID    string
	Email string
	Role  domain.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == domain.RoleAdmin
}
