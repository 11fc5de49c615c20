package store

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) LogConversation(ctx context.Context, c Conversation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockStore) UpsertContact(ctx context.Context, c Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockStore) LogEvent(ctx context.Context, e Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockStore) RecordUnknownQuestion(ctx context.Context, question string) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockStore) AnalyticsSummary(ctx context.Context, days int) (AnalyticsSummary, error) {
	args := m.Called(ctx, days)
	return args.Get(0).(AnalyticsSummary), args.Error(1)
}

func (m *MockStore) RecentContacts(ctx context.Context, limit int) ([]Contact, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Contact), args.Error(1)
}

func (m *MockStore) SaveDocumentMeta(ctx context.Context, meta DocumentMeta) error {
	args := m.Called(ctx, meta)
	return args.Error(0)
}
