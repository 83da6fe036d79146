// Package input pumps terminal events into notification sources.
package input

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/particle-field/event"
)

// Projector maps terminal cells to logical surface units
type Projector interface {
	PointFromCell(col, row int) (x, y float64)
	SizeFromCells(cols, rows int) (width, height float64)
}

// Pump polls a tcell screen and emits pointer, resize and key notifications
// Listeners run on the polling goroutine
type Pump struct {
	screen tcell.Screen
	proj   Projector
	logger *zap.Logger

	pointer *event.Source[event.Pointer]
	resize  *event.Source[event.Resize]
	keys    *event.Source[event.Key]
}

// NewPump creates a pump over an initialized screen
func NewPump(s tcell.Screen, proj Projector, logger *zap.Logger) *Pump {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pump{
		screen:  s,
		proj:    proj,
		logger:  logger,
		pointer: event.NewSource[event.Pointer](),
		resize:  event.NewSource[event.Resize](),
		keys:    event.NewSource[event.Key](),
	}
}

// Pointer emits mouse positions in logical units
func (p *Pump) Pointer() *event.Source[event.Pointer] { return p.pointer }

// Resize emits the logical extent after a terminal resize
func (p *Pump) Resize() *event.Source[event.Resize] { return p.resize }

// Keys emits key presses
func (p *Pump) Keys() *event.Source[event.Key] { return p.keys }

// Run polls until the screen is finalized or ctx is done
func (p *Pump) Run(ctx context.Context) error {
	// Wake PollEvent so a cancelled context is observed without waiting for input
	stop := context.AfterFunc(ctx, func() {
		if err := p.screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
			p.logger.Debug("interrupt post failed", zap.Error(err))
		}
	})
	defer stop()

	for {
		ev := p.screen.PollEvent()
		// Clean exit on terminal closure
		if ev == nil {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
		p.Dispatch(ev)
	}
}

// Dispatch translates one tcell event into notifications
func (p *Pump) Dispatch(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := p.proj.PointFromCell(col, row)
		p.pointer.Emit(event.Pointer{X: x, Y: y})

	case *tcell.EventResize:
		cols, rows := ev.Size()
		w, h := p.proj.SizeFromCells(cols, rows)
		p.logger.Debug("terminal resized",
			zap.Int("cols", cols), zap.Int("rows", rows),
			zap.Float64("width", w), zap.Float64("height", h))
		p.resize.Emit(event.Resize{Width: w, Height: h})

	case *tcell.EventKey:
		var k event.Key
		if ev.Key() == tcell.KeyRune {
			k.Rune = ev.Rune()
		} else {
			k.Name = tcell.KeyNames[ev.Key()]
		}
		p.keys.Emit(k)
	}
}
