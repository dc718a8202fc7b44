package engine

import "time"

// TimeSource supplies the loop's notion of now. Production uses the
// monotonic system clock; tests inject MockTimeProvider.
type TimeSource interface {
	Now() time.Time
}

// MonotonicTimeProvider provides real system time with monotonic clock
// readings.
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a monotonic time provider.
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading.
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
