package mocks

import (
	"context"

	"github.com/phrazzld/roster-api/internal/events"
	"github.com/stretchr/testify/mock"
)

// TestifyMockPublisher is a mock of events.Publisher for use with testify/mock
type TestifyMockPublisher struct {
	mock.Mock
}

var _ events.Publisher = (*TestifyMockPublisher)(nil)

// Publish is a mock implementation of events.Publisher.Publish
func (m *TestifyMockPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// PublishAll is a mock implementation of events.Publisher.PublishAll
func (m *TestifyMockPublisher) PublishAll(ctx context.Context, evts ...events.DomainEvent) error {
	args := m.Called(ctx, evts)
	return args.Error(0)
}
