package speech

import (
	"context"
	"sync"
)

// Mock implements Speaker for testing.
type Mock struct {
	// SayFunc is called when Say is invoked. If nil, Say returns nil.
	SayFunc func(ctx context.Context, text string) error

	mu     sync.Mutex
	spoken []string
}

// NewMock creates a new mock speaker.
func NewMock() *Mock {
	return &Mock{}
}

// Say records the text and calls SayFunc.
func (m *Mock) Say(ctx context.Context, text string) error {
	m.mu.Lock()
	m.spoken = append(m.spoken, text)
	m.mu.Unlock()

	if m.SayFunc != nil {
		return m.SayFunc(ctx, text)
	}
	return nil
}

// Spoken returns every text passed to Say, in order.
func (m *Mock) Spoken() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.spoken))
	copy(result, m.spoken)
	return result
}

// Reset clears recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spoken = nil
}
