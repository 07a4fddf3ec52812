package domain

import "time"

type VehicleType string

const (
	VehicleTypeCar  VehicleType = "car"
	VehicleTypeBike VehicleType = "bike"
	VehicleTypeVan  VehicleType = "van"
	VehicleTypeSUV  VehicleType = "SUV"
)

func (t VehicleType) Valid() bool {
	switch t {
	case VehicleTypeCar, VehicleTypeBike, VehicleTypeVan, VehicleTypeSUV:
		return true
	}
	return false
}

type AvailabilityStatus string

const (
	VehicleAvailable AvailabilityStatus = "available"
	VehicleBooked    AvailabilityStatus = "booked"
)

type Vehicle struct {
	ID                 string             `json:"id"`
	VehicleName        string             `json:"vehicle_name"`
	Type               VehicleType        `json:"type"`
	RegistrationNumber string             `json:"registration_number"`
	DailyRentPrice     float64            `json:"daily_rent_price"`
	AvailabilityStatus AvailabilityStatus `json:"availability_status"`
	Description        string             `json:"description,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}
