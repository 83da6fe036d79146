package render

import (
	"math"

	"github.com/lixenwraith/particle-field/parameter"
)

// brailleBase is U+2800, the empty braille pattern
const brailleBase = 0x2800

// dotBits maps [dy][dx] inside a 2x4 cell to its braille bit
var dotBits = [parameter.DotsPerCellY][parameter.DotsPerCellX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// dotCell is one terminal cell holding up to 8 braille dots
// A cell can show a single foreground color, the strongest paint wins
type dotCell struct {
	mask  uint8
	alpha float64
	color RGB
}

// CellBuffer is a Surface rasterizing into braille dots over a terminal cell grid
// Logical units map to dots through unitsPerDot
type CellBuffer struct {
	cells       []dotCell
	touched     []bool
	cols        int
	rows        int
	unitsPerDot float64
}

// NewCellBuffer creates a buffer for a cols x rows grid
func NewCellBuffer(cols, rows int, unitsPerDot float64) *CellBuffer {
	if unitsPerDot <= 0 {
		unitsPerDot = parameter.UnitsPerDot
	}
	b := &CellBuffer{unitsPerDot: unitsPerDot}
	b.Resize(cols, rows)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *CellBuffer) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	size := cols * rows
	if cap(b.cells) < size {
		b.cells = make([]dotCell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.cols = cols
	b.rows = rows
	b.Clear()
}

// Grid returns the cell dimensions
func (b *CellBuffer) Grid() (cols, rows int) {
	return b.cols, b.rows
}

// Size returns the logical extent of the grid
func (b *CellBuffer) Size() (width, height float64) {
	return float64(b.cols*parameter.DotsPerCellX) * b.unitsPerDot,
		float64(b.rows*parameter.DotsPerCellY) * b.unitsPerDot
}

// Clear resets all cells to empty using exponential copy
func (b *CellBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = dotCell{}
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

// Plot sets the dot at dot coordinates (dx, dy), out of range dots are dropped
func (b *CellBuffer) Plot(dx, dy int, p Paint) {
	if dx < 0 || dy < 0 {
		return
	}
	col, row := dx/parameter.DotsPerCellX, dy/parameter.DotsPerCellY
	if col >= b.cols || row >= b.rows {
		return
	}
	idx := row*b.cols + col
	c := &b.cells[idx]
	c.mask |= dotBits[dy%parameter.DotsPerCellY][dx%parameter.DotsPerCellX]
	if p.Alpha > c.alpha || !b.touched[idx] {
		c.alpha = p.Alpha
		c.color = p.Color
	}
	b.touched[idx] = true
}

// toDot converts a logical coordinate to a dot index
func (b *CellBuffer) toDot(v float64) int {
	return int(math.Floor(v / b.unitsPerDot))
}

// StrokeLine walks the segment in dot space (DDA), strokes are one dot wide on a cell grid
func (b *CellBuffer) StrokeLine(x0, y0, x1, y1 float64, p Paint, _ float64) {
	fx0, fy0 := x0/b.unitsPerDot, y0/b.unitsPerDot
	fx1, fy1 := x1/b.unitsPerDot, y1/b.unitsPerDot
	dx, dy := fx1-fx0, fy1-fy0
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		b.Plot(int(math.Floor(fx0)), int(math.Floor(fy0)), p)
		return
	}
	sx, sy := dx/float64(steps), dy/float64(steps)
	for i := 0; i <= steps; i++ {
		b.Plot(int(math.Floor(fx0+sx*float64(i))), int(math.Floor(fy0+sy*float64(i))), p)
	}
}

// FillCircle plots every dot whose centre lies within radius, the centre dot is always set
func (b *CellBuffer) FillCircle(x, y, radius float64, p Paint) {
	cx, cy := x/b.unitsPerDot, y/b.unitsPerDot
	r := radius / b.unitsPerDot
	b.Plot(b.toDot(x), b.toDot(y), p)

	minX, maxX := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	minY, maxY := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	rSq := r * r
	for dy := minY; dy <= maxY; dy++ {
		for dx := minX; dx <= maxX; dx++ {
			ox := float64(dx) + 0.5 - cx
			oy := float64(dy) + 0.5 - cy
			if ox*ox+oy*oy <= rSq {
				b.Plot(dx, dy, p)
			}
		}
	}
}

// Cell returns the braille rune and strongest paint at a grid position
// ok is false for empty or out of range cells
func (b *CellBuffer) Cell(col, row int) (r rune, p Paint, ok bool) {
	if col < 0 || row < 0 || col >= b.cols || row >= b.rows {
		return 0, Paint{}, false
	}
	idx := row*b.cols + col
	if !b.touched[idx] {
		return 0, Paint{}, false
	}
	c := b.cells[idx]
	return rune(brailleBase + int(c.mask)), Paint{Color: c.color, Alpha: c.alpha}, true
}
