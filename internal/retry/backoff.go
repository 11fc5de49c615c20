package retry

import "time"

// MaxBackoff caps the delay so late attempts don't stall a worker.
const MaxBackoff = 30 * time.Second

// ExponentialBackoff returns base * 2^attempt, capped at MaxBackoff.
func ExponentialBackoff(attempt int, base time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := base * (1 << attempt)
	if d > MaxBackoff || d <= 0 {
		return MaxBackoff
	}
	return d
}
