package queue

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockQueue stands in for the NATS queue in chat and handler tests, where
// the interesting assertion is how many analytics events get published.
type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Enqueue(ctx context.Context, task Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockQueue) Worker(ctx context.Context, taskType TaskType, handler Handler) error {
	args := m.Called(ctx, taskType, handler)
	return args.Error(0)
}
