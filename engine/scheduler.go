package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/particle-field/core"
	"github.com/lixenwraith/particle-field/parameter"
)

// ErrSchedulerRunning is returned by Start on a scheduler that is already running
var ErrSchedulerRunning = errors.New("engine: scheduler already running")

// FrameFunc is invoked once per frame with the frame timestamp
type FrameFunc func(now time.Time)

// FrameScheduler is the request-next-frame abstraction: one callback per refresh until cancelled
type FrameScheduler interface {
	// Start begins invoking fn once per frame
	Start(fn FrameFunc) error
	// Cancel stops the loop, no callback runs after Cancel returns
	Cancel()
}

// TickerScheduler drives frames from a fixed-interval ticker on a single goroutine
// A slow frame delays the next one, dropped ticks are not replayed
type TickerScheduler struct {
	interval time.Duration
	clock    TimeProvider

	mu       sync.Mutex
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  atomic.Bool

	frameCount atomic.Uint64
}

// NewTickerScheduler creates a scheduler firing every interval, clock may be nil for wall time
// A non-positive interval falls back to parameter.FrameUpdateInterval
func NewTickerScheduler(interval time.Duration, clock TimeProvider) *TickerScheduler {
	if interval <= 0 {
		interval = parameter.FrameUpdateInterval
	}
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	return &TickerScheduler{
		interval: interval,
		clock:    clock,
	}
}

// Start launches the frame loop, the scheduler may be restarted after Cancel
func (s *TickerScheduler) Start(fn FrameFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running.CompareAndSwap(false, true) {
		return ErrSchedulerRunning
	}
	stop := make(chan struct{})
	s.stopChan = stop
	s.wg.Add(1)
	// Use core.Go for safe execution with centralized crash handling
	core.Go(func() { s.loop(fn, stop) })
	return nil
}

// Cancel halts the loop and waits for an in-flight frame to finish
// Must not be called from inside a frame callback
func (s *TickerScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running.CompareAndSwap(true, false) {
		return
	}
	close(s.stopChan)
	s.wg.Wait()
}

// Interval returns the frame period
func (s *TickerScheduler) Interval() time.Duration {
	return s.interval
}

// Running reports whether the loop is active
func (s *TickerScheduler) Running() bool {
	return s.running.Load()
}

// FrameCount returns the number of frames dispatched since construction
func (s *TickerScheduler) FrameCount() uint64 {
	return s.frameCount.Load()
}

func (s *TickerScheduler) loop(fn FrameFunc, stop <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// Stop wins over a tick that raced with it
			select {
			case <-stop:
				return
			default:
			}
			s.frameCount.Add(1)
			fn(s.clock.Now())
		}
	}
}
