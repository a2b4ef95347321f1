package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"fleetops/internal/metrics"
)

type metricsOut struct {
	dig.Out
	AuthFailures      prometheus.Counter `name:"auth_failures_total"`
	RateLimitExceeded prometheus.Counter `name:"rate_limit_exceeded_total"`
	IntakeCreated     prometheus.Counter `name:"intake_orders_created_total"`
	IntakeDiscarded   prometheus.Counter `name:"intake_events_discarded_total"`
}

func newMetrics(reg prometheus.Registerer) metricsOut {
	out := metricsOut{
		AuthFailures:      metrics.NewAuthFailuresTotal(),
		RateLimitExceeded: metrics.NewRateLimitExceededTotal(),
		IntakeCreated:     metrics.NewIntakeOrdersCreatedTotal(),
		IntakeDiscarded:   metrics.NewIntakeEventsDiscardedTotal(),
	}
	reg.MustRegister(out.AuthFailures, out.RateLimitExceeded, out.IntakeCreated, out.IntakeDiscarded)
	return out
}

func newRegisterer() prometheus.Registerer {
	return prometheus.DefaultRegisterer
}
