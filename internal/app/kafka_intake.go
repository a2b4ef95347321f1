package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"fleetops/internal/config"
	"fleetops/internal/logx"
	"fleetops/internal/repository"
	"fleetops/internal/service/intake"
	"fleetops/internal/transport/kafka"
)

type intakeIn struct {
	dig.In
	Orders    *repository.OrderRepo
	Vehicles  *repository.VehicleRepo
	Logger    logx.Logger
	Created   prometheus.Counter `name:"intake_orders_created_total"`
	Discarded prometheus.Counter `name:"intake_events_discarded_total"`
}

func newIntakeProcessor(in intakeIn) *intake.Processor {
	return intake.NewProcessor(in.Orders, in.Vehicles, in.Logger, in.Created, in.Discarded)
}

func makeIntakeKafka(p *intake.Processor) kafka.HandleFunc {
	return p.Handle
}

func newIntakeConsumer(cfg *config.Config, h kafka.HandleFunc) (*kafka.Consumer, error) {
	return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.IntakeTopic, h)
}
