package render

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/particle-field/parameter"
)

// Projection maps terminal cells to logical units
type Projection struct {
	UnitsPerDot float64
}

// PointFromCell returns the logical centre of a cell
func (p Projection) PointFromCell(col, row int) (x, y float64) {
	return (float64(col*parameter.DotsPerCellX) + parameter.DotsPerCellX/2.0) * p.UnitsPerDot,
		(float64(row*parameter.DotsPerCellY) + parameter.DotsPerCellY/2.0) * p.UnitsPerDot
}

// SizeFromCells returns the logical extent of a cols x rows grid
func (p Projection) SizeFromCells(cols, rows int) (width, height float64) {
	return float64(cols*parameter.DotsPerCellX) * p.UnitsPerDot,
		float64(rows*parameter.DotsPerCellY) * p.UnitsPerDot
}

// ScreenOptions configures a terminal target
type ScreenOptions struct {
	UnitsPerDot float64
	// Gain multiplies cell alpha before blending over Background
	Gain       float64
	Background RGB
}

// Screen is a Target drawing braille cells onto a tcell screen
// Acquire re-reads the terminal size every frame, the buffer follows resizes lazily
type Screen struct {
	Projection

	screen tcell.Screen
	frame  screenFrame
	gain   float64
	bg     RGB

	mu     sync.Mutex
	status string
}

// screenFrame is the Surface handed out by Screen.Acquire
type screenFrame struct {
	*CellBuffer
	owner *Screen
}

// Present flushes the frame to the terminal
func (f screenFrame) Present() error {
	return f.owner.flush()
}

// NewScreen wraps an initialized tcell screen, s may be nil until the terminal is up
func NewScreen(s tcell.Screen, opts ScreenOptions) *Screen {
	if opts.UnitsPerDot <= 0 {
		opts.UnitsPerDot = parameter.UnitsPerDot
	}
	if opts.Gain <= 0 {
		opts.Gain = 1
	}
	sc := &Screen{
		Projection: Projection{UnitsPerDot: opts.UnitsPerDot},
		screen:     s,
		gain:       opts.Gain,
		bg:         opts.Background,
	}
	sc.frame = screenFrame{CellBuffer: NewCellBuffer(0, 0, opts.UnitsPerDot), owner: sc}
	return sc
}

// Acquire returns the frame surface sized to the terminal
func (s *Screen) Acquire() (Surface, error) {
	if s.screen == nil {
		return nil, ErrSurfaceUnavailable
	}
	cols, rows := s.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: terminal size %dx%d", ErrSurfaceUnavailable, cols, rows)
	}
	if c, r := s.frame.Grid(); c != cols || r != rows {
		s.frame.Resize(cols, rows)
	}
	return s.frame, nil
}

// SetStatus sets the bottom status line, empty hides it
func (s *Screen) SetStatus(text string) {
	s.mu.Lock()
	s.status = text
	s.mu.Unlock()
}

// Status returns the current status line
func (s *Screen) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Sync forces a full terminal redraw on the next Show
func (s *Screen) Sync() {
	if s.screen != nil {
		s.screen.Sync()
	}
}

// cellStyle blends the cell paint over the background, gain compensates for sparse dots
func (s *Screen) cellStyle(p Paint) tcell.Style {
	alpha := p.Alpha * s.gain
	if alpha > 1 {
		alpha = 1
	}
	fg := Blend(s.bg, p.Color, alpha)
	return tcell.StyleDefault.Background(s.bg.Tcell()).Foreground(fg.Tcell())
}

// flush writes every cell to the tcell back buffer then shows it
func (s *Screen) flush() error {
	if s.screen == nil {
		return ErrSurfaceUnavailable
	}
	buf := s.frame.CellBuffer
	cols, rows := buf.Grid()
	empty := tcell.StyleDefault.Background(s.bg.Tcell()).Foreground(s.bg.Tcell())

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r, p, ok := buf.Cell(col, row)
			if !ok {
				s.screen.SetContent(col, row, ' ', nil, empty)
				continue
			}
			s.screen.SetContent(col, row, r, nil, s.cellStyle(p))
		}
	}

	if status := s.Status(); status != "" && rows > 0 {
		style := tcell.StyleDefault.Background(s.bg.Tcell()).Foreground(RGBWhite.Tcell()).Dim(true)
		col := 0
		for _, r := range status {
			if col >= cols {
				break
			}
			s.screen.SetContent(col, rows-1, r, nil, style)
			col++
		}
	}

	s.screen.Show()
	return nil
}
