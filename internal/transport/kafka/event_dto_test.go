package kafka_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fleetops/internal/service/intake"
	"fleetops/internal/transport/kafka"
)

func TestToDomain_TrimsAndParsesWindows(t *testing.T) {
	t.Parallel()

	vehicleID := int64(7)
	dto := kafka.EventDTO{
		Destination:         "  Warehouse 12  ",
		Size:                "  m  ",
		Priority:            true,
		DeliveryWindowStart: "2025-06-01 09:00",
		DeliveryWindowEnd:   "2025-06-01 13:00",
		VehicleID:           &vehicleID,
	}

	got, err := kafka.ToDomain(dto)
	require.NoError(t, err)

	require.Equal(t, intake.Event{
		Destination:         "Warehouse 12",
		Size:                "m",
		Priority:            true,
		DeliveryWindowStart: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		DeliveryWindowEnd:   time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC),
		VehicleID:           &vehicleID,
	}, got)
}

func TestToDomain_BadWindow(t *testing.T) {
	t.Parallel()

	dto := kafka.EventDTO{
		Destination:         "Warehouse 12",
		Size:                "m",
		DeliveryWindowStart: "01.06.2025",
		DeliveryWindowEnd:   "2025-06-01 13:00",
	}

	_, err := kafka.ToDomain(dto)
	require.Error(t, err)
	require.Contains(t, err.Error(), "delivery_window_start")

	dto.DeliveryWindowStart = "2025-06-01 09:00"
	dto.DeliveryWindowEnd = ""

	_, err = kafka.ToDomain(dto)
	require.Error(t, err)
	require.Contains(t, err.Error(), "delivery_window_end")
}
