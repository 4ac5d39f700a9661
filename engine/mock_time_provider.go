package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a virtual clock that only moves when told to
// Regeneration and oscillation can be tested without real waits
type MockTimeProvider struct {
	mu    sync.Mutex
	start time.Time
	now   time.Time
}

// NewMockTimeProvider starts a virtual clock at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{start: start, now: start}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward; negative durations are ignored
func (m *MockTimeProvider) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Elapsed returns virtual time since the clock was created
func (m *MockTimeProvider) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now.Sub(m.start)
}
