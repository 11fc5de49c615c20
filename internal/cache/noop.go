package cache

import (
	"context"
	"time"

	"profilebot/internal/llm"
)

// NoOpCache is used when Redis is not configured: every lookup misses and
// every store succeeds without doing anything.
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache instance.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// GetInsight always returns nil (cache miss).
func (c *NoOpCache) GetInsight(ctx context.Context, contentHash string) (*llm.Insight, error) {
	return nil, nil
}

// SetInsight does nothing and always succeeds.
func (c *NoOpCache) SetInsight(ctx context.Context, contentHash string, insight llm.Insight, ttl time.Duration) error {
	return nil
}

// Close does nothing and always succeeds.
func (c *NoOpCache) Close() error {
	return nil
}
