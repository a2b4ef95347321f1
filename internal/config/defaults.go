package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "fleet",
	Pass: "fleet",
	Name: "fleet_db",
}

var defaultAuth = Auth{
	Secret:   "",
	TokenTTL: 60 * time.Minute,
}

var defaultKafka = Kafka{
	GroupID:     "fleet-intake",
	IntakeTopic: "order-intake",
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       1,
	Burst:      5,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultAuth returns the default auth settings. The secret has no default
// and must be provided via JWT_SECRET.
func DefaultAuth() Auth {
	return defaultAuth
}

// DefaultKafka returns the default Kafka settings. Brokers default to empty,
// which disables the intake consumer.
func DefaultKafka() Kafka {
	return defaultKafka
}

// DefaultRateLimit returns the default login throttling settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
