package retry

import (
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	base := 100 * time.Millisecond

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, 1600 * time.Millisecond},
	}

	for _, tt := range tests {
		result := ExponentialBackoff(tt.attempt, base)
		if result != tt.expected {
			t.Errorf("attempt %d: got %v, want %v", tt.attempt, result, tt.expected)
		}
	}
}

func TestExponentialBackoffCap(t *testing.T) {
	if got := ExponentialBackoff(20, time.Second); got != MaxBackoff {
		t.Errorf("expected cap %v, got %v", MaxBackoff, got)
	}
	// Overflow from a huge shift must also land on the cap.
	if got := ExponentialBackoff(63, time.Second); got != MaxBackoff {
		t.Errorf("expected cap on overflow, got %v", got)
	}
}

func TestExponentialBackoffNegativeAttempt(t *testing.T) {
	if got := ExponentialBackoff(-1, time.Second); got != time.Second {
		t.Errorf("expected base for negative attempt, got %v", got)
	}
}
