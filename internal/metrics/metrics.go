package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewAuthFailuresTotal returns a Prometheus counter for rejected authentication attempts
func NewAuthFailuresTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auth_failures_total",
		Help: "Total number of rejected authentication attempts",
	})
}

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewIntakeOrdersCreatedTotal returns a Prometheus counter for orders created from intake events
func NewIntakeOrdersCreatedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "intake_orders_created_total",
		Help: "Total number of orders created from Kafka intake events",
	})
}

// NewIntakeEventsDiscardedTotal returns a Prometheus counter for discarded intake events
func NewIntakeEventsDiscardedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "intake_events_discarded_total",
		Help: "Total number of Kafka intake events discarded as invalid",
	})
}
