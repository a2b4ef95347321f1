package kafka

import (
	"fmt"
	"strings"
	"time"

	"fleetops/internal/service/intake"
)

const windowTime = "2006-01-02 15:04"

// EventDTO is a data transfer object for intake.Event
type EventDTO struct {
	Destination         string `json:"destination"`
	Size                string `json:"size"`
	Priority            bool   `json:"priority"`
	DeliveryWindowStart string `json:"delivery_window_start"`
	DeliveryWindowEnd   string `json:"delivery_window_end"`
	VehicleID           *int64 `json:"vehicle_id"`
}

// ToDomain converts EventDTO to intake.Event
func ToDomain(dto EventDTO) (intake.Event, error) {
	start, err := time.Parse(windowTime, dto.DeliveryWindowStart)
	if err != nil {
		return intake.Event{}, fmt.Errorf("delivery_window_start: %w", err)
	}
	end, err := time.Parse(windowTime, dto.DeliveryWindowEnd)
	if err != nil {
		return intake.Event{}, fmt.Errorf("delivery_window_end: %w", err)
	}
	return intake.Event{
		Destination:         strings.TrimSpace(dto.Destination),
		Size:                strings.TrimSpace(dto.Size),
		Priority:            dto.Priority,
		DeliveryWindowStart: start,
		DeliveryWindowEnd:   end,
		VehicleID:           dto.VehicleID,
	}, nil
}
