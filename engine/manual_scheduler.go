package engine

import (
	"sync"
	"time"
)

// ManualScheduler dispatches frames only when stepped
// Used by headless rendering and tests where frame timing must be deterministic
type ManualScheduler struct {
	mu     sync.Mutex
	fn     FrameFunc
	frames uint64
}

// NewManualScheduler creates a stopped manual scheduler
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Start registers fn for subsequent Step calls
func (s *ManualScheduler) Start(fn FrameFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fn != nil {
		return ErrSchedulerRunning
	}
	s.fn = fn
	return nil
}

// Cancel drops the callback, later steps are no-ops
func (s *ManualScheduler) Cancel() {
	s.mu.Lock()
	s.fn = nil
	s.mu.Unlock()
}

// Running reports whether a callback is registered
func (s *ManualScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fn != nil
}

// Step dispatches one frame, returns false when cancelled or never started
func (s *ManualScheduler) Step(now time.Time) bool {
	s.mu.Lock()
	fn := s.fn
	if fn != nil {
		s.frames++
	}
	s.mu.Unlock()

	if fn == nil {
		return false
	}
	fn(now)
	return true
}

// Frames returns how many steps reached a callback
func (s *ManualScheduler) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}
