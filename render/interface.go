package render

import "errors"

// ErrSurfaceUnavailable reports a surface that is not mounted, zero-sized, or could not be acquired
// Frame loops treat it as transient and retry on the next tick
var ErrSurfaceUnavailable = errors.New("render: surface unavailable")

// Surface is a drawing target in logical units, origin top-left
type Surface interface {
	// Size returns the current drawable extent
	Size() (width, height float64)

	// Clear erases the whole surface
	Clear()

	// StrokeLine draws a segment with the given paint and stroke width
	StrokeLine(x0, y0, x1, y1 float64, p Paint, width float64)

	// FillCircle draws a filled disc
	FillCircle(x, y, radius float64, p Paint)
}

// Target hands out the surface for one frame
type Target interface {
	// Acquire returns the surface or ErrSurfaceUnavailable (possibly wrapped)
	Acquire() (Surface, error)
}

// Presenter is optionally implemented by surfaces that buffer a frame before display
type Presenter interface {
	Present() error
}
