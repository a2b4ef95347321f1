package domain

import "time"

type (
	// VehicleType represents the transport class of a vehicle.
	VehicleType string
	// VehicleStatus represents the operational status of a vehicle.
	VehicleStatus string
)

// List of possible vehicle types
const (
	VehicleTypeMotorcycle VehicleType = "motorcycle"
	VehicleTypeSedan      VehicleType = "sedan"
	VehicleTypePickup     VehicleType = "pickup"
	VehicleTypeVan        VehicleType = "van"
	VehicleTypeTruck      VehicleType = "truck"
)

// List of possible vehicle statuses
const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleOnRoute     VehicleStatus = "on_route"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleInactive    VehicleStatus = "inactive"
)

var allowedVehicleTypes = [...]VehicleType{
	VehicleTypeMotorcycle, VehicleTypeSedan, VehicleTypePickup, VehicleTypeVan, VehicleTypeTruck,
}

var allowedVehicleStatuses = [...]VehicleStatus{
	VehicleAvailable, VehicleOnRoute, VehicleMaintenance, VehicleInactive,
}

// Valid checks if the VehicleType is valid
func (t VehicleType) Valid() bool {
	for _, v := range allowedVehicleTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Valid checks if the VehicleStatus is valid
func (s VehicleStatus) Valid() bool {
	for _, v := range allowedVehicleStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// maxLicensePlateLen bounds the license_plate column.
const maxLicensePlateLen = 15

// ValidateLicensePlate validates the license plate format.
func ValidateLicensePlate(s string) bool {
	return len(s) >= 3 && len(s) <= maxLicensePlateLen
}

// Vehicle represents a driver-owned fleet asset.
type Vehicle struct {
	ID           int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LicensePlate string
	Type         VehicleType
	CapacityKg   int
	Status       VehicleStatus
	DriverID     int64
}

// VehicleFilter carries optional exact-match predicates for listing vehicles.
// A nil field means “do not filter” by that attribute. Predicates combine with AND.
type VehicleFilter struct {
	DriverID   *int64
	Type       *VehicleType
	CapacityKg *int
	Status     *VehicleStatus
}
