package intake

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"fleetops/internal/domain"
	"fleetops/internal/logx"
)

// Processor turns intake events into pending orders. Malformed events are
// counted and dropped so the stream keeps moving.
type Processor struct {
	orders    OrderPort
	vehicles  VehiclePort
	logger    logx.Logger
	created   prometheus.Counter
	discarded prometheus.Counter
}

// NewProcessor creates a new intake.Processor
func NewProcessor(orders OrderPort, vehicles VehiclePort, logger logx.Logger, created, discarded prometheus.Counter) *Processor {
	return &Processor{
		orders:    orders,
		vehicles:  vehicles,
		logger:    logger,
		created:   created,
		discarded: discarded,
	}
}

func (p *Processor) validate(e Event) error {
	if len(e.Destination) < 3 {
		return fmt.Errorf("destination too short")
	}
	if !domain.OrderSize(e.Size).Valid() {
		return fmt.Errorf("unknown size %q", e.Size)
	}
	if e.DeliveryWindowStart.IsZero() || e.DeliveryWindowEnd.IsZero() {
		return fmt.Errorf("missing delivery window")
	}
	if e.VehicleID != nil && *e.VehicleID <= 0 {
		return fmt.Errorf("invalid vehicle id %d", *e.VehicleID)
	}
	return nil
}

// Handle processes a single intake.Event
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if err := p.validate(e); err != nil {
		p.discard("invalid intake event", err)
		return nil
	}

	if e.VehicleID != nil {
		v, err := p.vehicles.Get(ctx, *e.VehicleID)
		if err != nil {
			return err
		}
		if v == nil {
			p.discard("intake event references unknown vehicle", fmt.Errorf("vehicle %d not found", *e.VehicleID))
			return nil
		}
	}

	o := &domain.Order{
		Destination:         e.Destination,
		Size:                domain.OrderSize(e.Size),
		Priority:            e.Priority,
		DeliveryWindowStart: e.DeliveryWindowStart,
		DeliveryWindowEnd:   e.DeliveryWindowEnd,
		Status:              domain.OrderPending,
		VehicleID:           e.VehicleID,
	}
	if err := p.orders.Create(ctx, o); err != nil {
		return err
	}

	if p.created != nil {
		p.created.Inc()
	}
	p.logger.Info("intake order created", logx.Int64("order_id", o.ID))
	return nil
}

func (p *Processor) discard(msg string, err error) {
	if p.discarded != nil {
		p.discarded.Inc()
	}
	p.logger.Warn(msg, logx.Err(err))
}
