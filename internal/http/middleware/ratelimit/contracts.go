package ratelimit

// Limiter decides whether a request keyed by client IP may proceed.
type Limiter interface {
	Allow(key string) bool
}

// NopLimiter admits everything. Used when rate limiting is disabled.
type NopLimiter struct{}

func (NopLimiter) Allow(string) bool { return true }
