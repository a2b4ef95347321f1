package ratelimit

import "time"

// Clock abstracts time so bucket refill can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// WallClock reads the system clock.
type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }
