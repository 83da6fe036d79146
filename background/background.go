// Package background hosts the particle field as a mountable component.
//
// Mount subscribes to pointer and resize notifications and starts the frame
// scheduler. Unmount stops the scheduler before releasing the listeners so no
// frame can reach a torn-down surface. Listeners run on the notifier's
// goroutine and ticks on the scheduler's goroutine, so the field is guarded by
// a mutex. The last pointer write before a tick wins.
package background

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/particle-field/core"
	"github.com/lixenwraith/particle-field/engine"
	"github.com/lixenwraith/particle-field/event"
	"github.com/lixenwraith/particle-field/field"
	"github.com/lixenwraith/particle-field/render"
	"github.com/lixenwraith/particle-field/vmath"
)

// ErrMounted is returned by Mount on an already mounted component
var ErrMounted = errors.New("background: already mounted")

// Stats is a point-in-time view of the component
type Stats struct {
	Mounted   bool
	Frames    uint64
	Skipped   uint64
	Particles int
	Width     float64
	Height    float64
	Pointer   vmath.Vec2
}

// Background drives a field against a render target
type Background struct {
	target  render.Target
	sched   engine.FrameScheduler
	pointer event.Subscriber[event.Pointer]
	resize  event.Subscriber[event.Resize]
	logger  *zap.Logger

	mu      sync.Mutex
	field   *field.Field
	width   float64
	height  float64
	mounted bool
	unsubs  []func()

	frames  atomic.Uint64
	skipped atomic.Uint64
}

// New wires a field to its target, scheduler and notification sources
// pointer and resize may be nil for a static backdrop
func New(
	f *field.Field,
	target render.Target,
	sched engine.FrameScheduler,
	pointer event.Subscriber[event.Pointer],
	resize event.Subscriber[event.Resize],
	logger *zap.Logger,
) *Background {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Background{
		field:   f,
		target:  target,
		sched:   sched,
		pointer: pointer,
		resize:  resize,
		logger:  logger,
	}
}

// Mount initializes the field at width x height, registers listeners and starts the frame loop
func (b *Background) Mount(width, height float64) error {
	b.mu.Lock()
	if b.mounted {
		b.mu.Unlock()
		return ErrMounted
	}
	b.width, b.height = width, height
	b.field.Initialize(width, height)
	b.mounted = true
	count := b.field.Len()

	if b.resize != nil {
		b.unsubs = append(b.unsubs, b.resize.Subscribe(b.onResize))
	}
	if b.pointer != nil {
		b.unsubs = append(b.unsubs, b.pointer.Subscribe(b.onPointer))
	}
	b.mu.Unlock()

	if err := b.sched.Start(b.tick); err != nil {
		b.release()
		return err
	}

	b.logger.Info("background mounted",
		zap.Float64("width", width),
		zap.Float64("height", height),
		zap.Int("particles", count))
	return nil
}

// Unmount stops the frame loop, then unregisters every listener
// Safe to call more than once
func (b *Background) Unmount() {
	b.mu.Lock()
	mounted := b.mounted
	b.mu.Unlock()
	if !mounted {
		return
	}

	// Scheduler first: Cancel waits out an in-flight frame
	b.sched.Cancel()
	b.release()

	b.logger.Info("background unmounted",
		zap.Uint64("frames", b.frames.Load()),
		zap.Uint64("skipped", b.skipped.Load()))
}

// release drops listeners and marks the component unmounted
func (b *Background) release() {
	b.mu.Lock()
	unsubs := b.unsubs
	b.unsubs = nil
	b.mounted = false
	b.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
}

// Reset reinitializes the field at the current dimensions
func (b *Background) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.field.Initialize(b.width, b.height)
	b.logger.Debug("background reset")
}

// Reconfigure applies a new tuning and reinitializes the field
func (b *Background) Reconfigure(t field.Tuning) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.field.SetTuning(t)
	b.field.Initialize(b.width, b.height)
	b.logger.Info("background reconfigured", zap.Int("particles", t.Count))
}

// Stats returns counters and current field state
func (b *Background) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{
		Mounted:   b.mounted,
		Frames:    b.frames.Load(),
		Skipped:   b.skipped.Load(),
		Particles: b.field.Len(),
		Width:     b.width,
		Height:    b.height,
		Pointer:   b.field.Pointer(),
	}
}

// Particles returns a copy of the current population
func (b *Background) Particles() []core.Particle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.field.Particles()
}

func (b *Background) onResize(r event.Resize) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = r.Width, r.Height
	// Full reset, particles are not remapped into the new bounds
	b.field.Initialize(r.Width, r.Height)
}

func (b *Background) onPointer(p event.Pointer) {
	b.mu.Lock()
	b.field.SetPointer(p.X, p.Y)
	b.mu.Unlock()
}

// tick runs one frame: acquire, advance, render, present
// An unavailable surface skips the frame silently, the next tick retries
func (b *Background) tick(_ time.Time) {
	surf, err := b.target.Acquire()
	if err != nil {
		b.skip(err)
		return
	}
	w, h := surf.Size()
	if w <= 0 || h <= 0 {
		b.skip(render.ErrSurfaceUnavailable)
		return
	}

	b.mu.Lock()
	b.field.Advance(w, h)
	b.field.Render(surf)
	b.mu.Unlock()

	if p, ok := surf.(render.Presenter); ok {
		if err := p.Present(); err != nil {
			b.skip(err)
			return
		}
	}
	b.frames.Add(1)
}

func (b *Background) skip(err error) {
	if b.skipped.Add(1) == 1 {
		b.logger.Debug("frame skipped", zap.Error(err))
	}
}
