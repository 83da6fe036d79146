package render

import (
	"fmt"
	"sync"
)

// LineOp is a recorded StrokeLine call
type LineOp struct {
	X0, Y0, X1, Y1 float64
	Paint          Paint
	Width          float64
}

// CircleOp is a recorded FillCircle call
type CircleOp struct {
	X, Y, Radius float64
	Paint        Paint
}

// Recorder is a Target and Surface that records the last frame's draw calls
// Clear drops the recorded ops, so after a frame it holds exactly that frame
type Recorder struct {
	mu          sync.Mutex
	width       float64
	height      float64
	unavailable bool

	lines    []LineOp
	circles  []CircleOp
	clears   int
	presents int
	acquires int
}

// NewRecorder creates a recorder reporting width x height
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height}
}

// SetUnavailable makes Acquire fail, emulating an unmounted surface
func (r *Recorder) SetUnavailable(v bool) {
	r.mu.Lock()
	r.unavailable = v
	r.mu.Unlock()
}

// SetSize changes the reported extent
func (r *Recorder) SetSize(width, height float64) {
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
}

// Acquire counts the call and returns the recorder, or ErrSurfaceUnavailable when unavailable or zero-sized
func (r *Recorder) Acquire() (Surface, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.acquires++
	if r.unavailable {
		return nil, ErrSurfaceUnavailable
	}
	if r.width <= 0 || r.height <= 0 {
		return nil, fmt.Errorf("%w: recorder %vx%v", ErrSurfaceUnavailable, r.width, r.height)
	}
	return r, nil
}

// Size returns the reported extent
func (r *Recorder) Size() (width, height float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// Clear drops the recorded ops and counts the call
func (r *Recorder) Clear() {
	r.mu.Lock()
	r.lines = r.lines[:0]
	r.circles = r.circles[:0]
	r.clears++
	r.mu.Unlock()
}

// StrokeLine records a line op
func (r *Recorder) StrokeLine(x0, y0, x1, y1 float64, p Paint, width float64) {
	r.mu.Lock()
	r.lines = append(r.lines, LineOp{x0, y0, x1, y1, p, width})
	r.mu.Unlock()
}

// FillCircle records a circle op
func (r *Recorder) FillCircle(x, y, radius float64, p Paint) {
	r.mu.Lock()
	r.circles = append(r.circles, CircleOp{x, y, radius, p})
	r.mu.Unlock()
}

// Present counts the call
func (r *Recorder) Present() error {
	r.mu.Lock()
	r.presents++
	r.mu.Unlock()
	return nil
}

// Lines returns a copy of the recorded lines
func (r *Recorder) Lines() []LineOp {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LineOp(nil), r.lines...)
}

// Circles returns a copy of the recorded discs
func (r *Recorder) Circles() []CircleOp {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]CircleOp(nil), r.circles...)
}

// Counts returns how many times Acquire, Clear and Present ran
func (r *Recorder) Counts() (acquires, clears, presents int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.acquires, r.clears, r.presents
}
