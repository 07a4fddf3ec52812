package domain

import "time"

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusReturned  BookingStatus = "returned"
)

// Terminal reports whether the status is final. Active is the sole
// non-terminal state; cancelled and returned bookings are never reopened.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusReturned
}

type Booking struct {
	ID            string        `json:"id"`
	CustomerID    string        `json:"customer_id"`
	VehicleID     string        `json:"vehicle_id"`
	RentStartDate time.Time     `json:"rent_start_date"`
	RentEndDate   time.Time     `json:"rent_end_date"`
	TotalPrice    float64       `json:"total_price"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	Vehicle  *Vehicle `json:"vehicle,omitempty"`
	Customer *User    `json:"customer,omitempty"`
}

// TotalPriceFor computes the rental price as exact fractional days
// (duration / 24h) times the vehicle's daily rate. No rounding.
func TotalPriceFor(start, end time.Time, dailyRate float64) float64 {
	days := end.Sub(start).Hours() / 24
	return days * dailyRate
}
