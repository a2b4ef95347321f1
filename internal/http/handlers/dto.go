package handlers

import "fleetops/internal/domain"

// humanTime is the display format for response timestamps.
const humanTime = "Jan 02, 2006 03:04 PM"

// windowTime is the accepted input format for order delivery windows.
const windowTime = "2006-01-02 15:04"

type userDTO struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt string      `json:"created_at"`
}

type vehicleDTO struct {
	ID           int64                `json:"id"`
	LicensePlate string               `json:"license_plate"`
	Type         domain.VehicleType   `json:"type"`
	CapacityKg   int                  `json:"capacity_kg"`
	Status       domain.VehicleStatus `json:"status"`
	DriverID     int64                `json:"driver_id"`
	CreatedAt    string               `json:"created_at"`
	UpdatedAt    string               `json:"updated_at"`
}

type orderDTO struct {
	ID                  int64              `json:"id"`
	Destination         string             `json:"destination"`
	Size                domain.OrderSize   `json:"size"`
	Priority            bool               `json:"priority"`
	DeliveryWindowStart string             `json:"delivery_window_start"`
	DeliveryWindowEnd   string             `json:"delivery_window_end"`
	Status              domain.OrderStatus `json:"status"`
	VehicleID           *int64             `json:"vehicle_id"`
	CreatedAt           string             `json:"created_at"`
	UpdatedAt           string             `json:"updated_at"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

type deleteSelfRequest struct {
	Password string `json:"password"`
}

type createVehicleRequest struct {
	LicensePlate string `json:"license_plate"`
	Type         string `json:"type"`
	CapacityKg   int    `json:"capacity_kg"`
	Status       string `json:"status"`
	DriverID     int64  `json:"driver_id"`
}

type changeVehicleStatusRequest struct {
	Status string `json:"status"`
}

type changeVehicleDriverRequest struct {
	DriverID int64 `json:"driver_id"`
}

type createOrderRequest struct {
	Destination         string `json:"destination"`
	Size                string `json:"size"`
	Priority            bool   `json:"priority"`
	DeliveryWindowStart string `json:"delivery_window_start"`
	DeliveryWindowEnd   string `json:"delivery_window_end"`
	Status              string `json:"status"`
	VehicleID           *int64 `json:"vehicle_id"`
}

type changeOrderStatusRequest struct {
	Status string `json:"status"`
}
