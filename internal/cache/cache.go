package cache

import (
	"context"
	"time"

	"profilebot/internal/llm"
)

// Cache stores AI-generated document insights keyed by content hash, so an
// unchanged document does not pay for a second generation call.
type Cache interface {
	// GetInsight retrieves a cached insight by content hash.
	// Returns nil on a miss.
	GetInsight(ctx context.Context, contentHash string) (*llm.Insight, error)

	// SetInsight stores an insight with TTL.
	SetInsight(ctx context.Context, contentHash string, insight llm.Insight, ttl time.Duration) error

	// Close closes the cache connection.
	Close() error
}
