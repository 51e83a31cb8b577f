package mqtt

import (
	"fmt"
	"sync"

	"github.com/rotaplan/rotaplan/core/model"
)

// MockNotifier is a simple notifier used in tests.
type MockNotifier struct {
	Messages []model.Assignment
	FailIDs  map[string]bool
	mu       sync.Mutex
}

// NewMockNotifier creates a new MockNotifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{FailIDs: make(map[string]bool)}
}

// NotifyAssignment records the assignment or returns an error if configured
// to fail for the assignee.
func (m *MockNotifier) NotifyAssignment(a model.Assignment) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailIDs[a.AssigneeID] {
		return "", fmt.Errorf("publish failed")
	}
	m.Messages = append(m.Messages, a)
	return fmt.Sprintf("msg-%d", len(m.Messages)), nil
}

// Close is a no-op.
func (m *MockNotifier) Close() error { return nil }
