package render

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s
}

func TestProjection(t *testing.T) {
	p := Projection{UnitsPerDot: 4}
	x, y := p.PointFromCell(0, 0)
	assert.Equal(t, 4.0, x)
	assert.Equal(t, 8.0, y)

	x, y = p.PointFromCell(3, 2)
	assert.Equal(t, 28.0, x)
	assert.Equal(t, 40.0, y)

	w, h := p.SizeFromCells(80, 24)
	assert.Equal(t, 640.0, w)
	assert.Equal(t, 384.0, h)
}

func TestScreen_NilScreenUnavailable(t *testing.T) {
	s := NewScreen(nil, ScreenOptions{})
	_, err := s.Acquire()
	assert.True(t, errors.Is(err, ErrSurfaceUnavailable))
}

func TestScreen_AcquireFollowsTerminalSize(t *testing.T) {
	sim := newSimScreen(t, 20, 5)
	s := NewScreen(sim, ScreenOptions{UnitsPerDot: 2})

	surf, err := s.Acquire()
	require.NoError(t, err)
	w, h := surf.Size()
	assert.Equal(t, 80.0, w)
	assert.Equal(t, 40.0, h)

	sim.SetSize(10, 3)
	surf, err = s.Acquire()
	require.NoError(t, err)
	w, h = surf.Size()
	assert.Equal(t, 40.0, w)
	assert.Equal(t, 24.0, h)
}

func TestScreen_PresentWritesBraille(t *testing.T) {
	sim := newSimScreen(t, 4, 2)
	s := NewScreen(sim, ScreenOptions{UnitsPerDot: 1, Gain: 1, Background: RGBBlack})

	surf, err := s.Acquire()
	require.NoError(t, err)
	surf.Clear()
	surf.FillCircle(0.5, 0.5, 0.1, Paint{Color: RGBWhite, Alpha: 1})

	p, ok := surf.(Presenter)
	require.True(t, ok, "screen surface must present")
	require.NoError(t, p.Present())

	r, _, _, _ := sim.GetContent(0, 0)
	assert.Equal(t, rune(0x2801), r)
	r, _, _, _ = sim.GetContent(1, 0)
	assert.Equal(t, ' ', r)
}

func TestScreen_StatusLine(t *testing.T) {
	sim := newSimScreen(t, 10, 3)
	s := NewScreen(sim, ScreenOptions{UnitsPerDot: 1})
	s.SetStatus("fps 60")
	assert.Equal(t, "fps 60", s.Status())

	surf, err := s.Acquire()
	require.NoError(t, err)
	require.NoError(t, surf.(Presenter).Present())

	r, _, _, _ := sim.GetContent(0, 2)
	assert.Equal(t, 'f', r)
	r, _, _, _ = sim.GetContent(5, 2)
	assert.Equal(t, '0', r)
}
