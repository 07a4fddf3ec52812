package auth

import "github.com/rideaway/vehicle-rental/internal/domain"

// Action names an operation subject to role/ownership checks.
type Action string

const (
	ActionBookingCancel Action = "booking.cancel"
	ActionBookingReturn Action = "booking.return"
	ActionUserUpdate    Action = "user.update"
)

// Allow decides whether role may perform action. owns reports whether the
// caller owns the target record. Admins may do anything; customers are
// limited to their own bookings and profile, and may never mark a booking
// returned.
func Allow(role domain.Role, action Action, owns bool) bool {
	if role == domain.RoleAdmin {
		return true
	}
	if role != domain.RoleCustomer {
		return false
	}
	switch action {
	case ActionBookingCancel, ActionUserUpdate:
		return owns
	default:
		return false
	}
}
