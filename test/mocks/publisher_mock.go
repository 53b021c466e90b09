package mocks

import (
	"context"
	"sync"

	"github.com/campuskit/leave-service/internal/core/ports"
)

// MockLeavePublisher implements ports.LeaveEventPublisher, recording every
// published event.
type MockLeavePublisher struct {
	mu sync.Mutex

	SubmittedEvents []ports.LeaveSubmittedEvent
	ReviewedEvents  []ports.LeaveReviewedEvent

	SubmittedError error
	ReviewedError  error
}

var _ ports.LeaveEventPublisher = (*MockLeavePublisher)(nil)

func NewMockLeavePublisher() *MockLeavePublisher {
	return &MockLeavePublisher{}
}

func (m *MockLeavePublisher) PublishLeaveSubmitted(ctx context.Context, evt ports.LeaveSubmittedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SubmittedError != nil {
		return m.SubmittedError
	}
	m.SubmittedEvents = append(m.SubmittedEvents, evt)
	return nil
}

func (m *MockLeavePublisher) PublishLeaveReviewed(ctx context.Context, evt ports.LeaveReviewedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReviewedError != nil {
		return m.ReviewedError
	}
	m.ReviewedEvents = append(m.ReviewedEvents, evt)
	return nil
}
