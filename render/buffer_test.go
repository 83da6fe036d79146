package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellBuffer_Size(t *testing.T) {
	b := NewCellBuffer(80, 24, 4)
	w, h := b.Size()
	assert.Equal(t, 640.0, w)
	assert.Equal(t, 384.0, h)
}

func TestCellBuffer_PlotSetsBrailleBit(t *testing.T) {
	tests := []struct {
		dx, dy   int
		col, row int
		want     rune
	}{
		{0, 0, 0, 0, 0x2801},
		{1, 0, 0, 0, 0x2808},
		{0, 3, 0, 0, 0x2840},
		{1, 3, 0, 0, 0x2880},
		{2, 4, 1, 1, 0x2801},
		{3, 6, 1, 1, 0x2820},
	}
	for _, tt := range tests {
		b := NewCellBuffer(4, 4, 1)
		b.Plot(tt.dx, tt.dy, Paint{Color: RGBWhite, Alpha: 1})
		r, _, ok := b.Cell(tt.col, tt.row)
		require.True(t, ok, "dot (%d,%d) should touch cell (%d,%d)", tt.dx, tt.dy, tt.col, tt.row)
		assert.Equal(t, tt.want, r, "dot (%d,%d)", tt.dx, tt.dy)
	}
}

func TestCellBuffer_LogicalToDot(t *testing.T) {
	// unitsPerDot 4: logical (9, 13) is dot (2, 3), cell (1, 0), bit 0x40
	b := NewCellBuffer(10, 10, 4)
	b.FillCircle(9, 13, 0.1, Paint{Color: RGBWhite, Alpha: 0.5})
	r, p, ok := b.Cell(1, 0)
	require.True(t, ok)
	assert.Equal(t, rune(0x2840), r)
	assert.Equal(t, 0.5, p.Alpha)
}

func TestCellBuffer_StrongestPaintWins(t *testing.T) {
	b := NewCellBuffer(2, 2, 1)
	weak := Paint{Color: RGB{10, 10, 10}, Alpha: 0.1}
	strong := Paint{Color: RGB{200, 0, 0}, Alpha: 0.9}
	b.Plot(0, 0, weak)
	b.Plot(1, 1, strong)
	b.Plot(0, 2, weak)

	_, p, ok := b.Cell(0, 0)
	require.True(t, ok)
	assert.Equal(t, strong, p)
}

func TestCellBuffer_OutOfRangeDropped(t *testing.T) {
	b := NewCellBuffer(2, 2, 1)
	b.Plot(-1, 0, Paint{Alpha: 1})
	b.Plot(0, -1, Paint{Alpha: 1})
	b.Plot(4, 0, Paint{Alpha: 1})
	b.Plot(0, 8, Paint{Alpha: 1})
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			_, _, ok := b.Cell(col, row)
			assert.False(t, ok, "cell (%d,%d) should be empty", col, row)
		}
	}
}

func TestCellBuffer_StrokeLineCoversEndpoints(t *testing.T) {
	b := NewCellBuffer(10, 2, 1)
	b.StrokeLine(0.5, 0.5, 19.5, 0.5, Paint{Color: RGBWhite, Alpha: 1}, 0.5)
	for col := 0; col < 10; col++ {
		r, _, ok := b.Cell(col, 0)
		require.True(t, ok, "cell %d should be on the line", col)
		assert.Equal(t, rune(0x2809), r, "both top dots of cell %d", col)
	}
	_, _, ok := b.Cell(0, 1)
	assert.False(t, ok)
}

func TestCellBuffer_ClearAndResize(t *testing.T) {
	b := NewCellBuffer(4, 4, 1)
	b.Plot(0, 0, Paint{Alpha: 1})
	b.Clear()
	_, _, ok := b.Cell(0, 0)
	assert.False(t, ok)

	b.Plot(0, 0, Paint{Alpha: 1})
	b.Resize(2, 2)
	cols, rows := b.Grid()
	assert.Equal(t, 2, cols)
	assert.Equal(t, 2, rows)
	_, _, ok = b.Cell(0, 0)
	assert.False(t, ok, "resize must clear")

	b.Resize(8, 8)
	_, _, ok = b.Cell(7, 7)
	assert.False(t, ok)
}
