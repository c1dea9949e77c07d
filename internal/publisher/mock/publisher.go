package mock

import (
	"context"

	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/publisher"
)

// Ensure MockPublisher implements publisher.Publisher.
var _ publisher.Publisher = (*MockPublisher)(nil)

// MockPublisher is a mock message publisher for testing.
type MockPublisher struct {
	Published []*domain.TaskPayload
	PublishFn func(ctx context.Context, task *domain.TaskPayload) error
}

// NewMockPublisher creates a new mock publisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, task *domain.TaskPayload) error {
	if m.PublishFn != nil {
		return m.PublishFn(ctx, task)
	}
	m.Published = append(m.Published, task)
	return nil
}

func (m *MockPublisher) Close() error {
	return nil
}
