package intake

import (
	"time"
)

// Event is a single order intake event
type Event struct {
	Destination         string
	Size                string
	Priority            bool
	DeliveryWindowStart time.Time
	DeliveryWindowEnd   time.Time
	VehicleID           *int64
}
