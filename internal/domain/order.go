package domain

import "time"

type (
	// OrderSize represents the package size class of an order.
	OrderSize string
	// OrderStatus represents the delivery status of an order.
	OrderStatus string
)

// List of possible order sizes
const (
	SizeXS OrderSize = "xs"
	SizeS  OrderSize = "s"
	SizeM  OrderSize = "m"
	SizeL  OrderSize = "l"
	SizeXL OrderSize = "xl"
)

// List of possible order statuses
const (
	OrderPending   OrderStatus = "pending"
	OrderInTransit OrderStatus = "in_transit"
	OrderCompleted OrderStatus = "completed"
	OrderFailed    OrderStatus = "failed"
)

var allowedOrderSizes = [...]OrderSize{SizeXS, SizeS, SizeM, SizeL, SizeXL}

var allowedOrderStatuses = [...]OrderStatus{
	OrderPending, OrderInTransit, OrderCompleted, OrderFailed,
}

// Valid checks if the OrderSize is valid
func (s OrderSize) Valid() bool {
	for _, v := range allowedOrderSizes {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	for _, v := range allowedOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Order represents a delivery task, optionally assigned to a vehicle.
// VehicleID is nil for unassigned orders.
type Order struct {
	ID                  int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Destination         string
	Size                OrderSize
	Priority            bool
	DeliveryWindowStart time.Time
	DeliveryWindowEnd   time.Time
	Status              OrderStatus
	VehicleID           *int64
}

// OrderFilter carries optional exact-match predicates for listing orders.
// A nil field means “do not filter” by that attribute. Predicates combine with AND.
type OrderFilter struct {
	Destination *string
	Size        *OrderSize
	Status      *OrderStatus
}
