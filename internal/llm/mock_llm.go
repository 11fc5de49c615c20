package llm

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of Client using testify/mock.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GenerateInsights(ctx context.Context, filename, excerpt string) (Insight, error) {
	args := m.Called(ctx, filename, excerpt)
	return args.Get(0).(Insight), args.Error(1)
}

func (m *MockClient) Chat(ctx context.Context, messages []Message, tools []Tool) (Reply, error) {
	args := m.Called(ctx, messages, tools)
	return args.Get(0).(Reply), args.Error(1)
}
