// Package field implements the ambient particle field: a fixed population of
// point masses advanced once per frame, pushed away by the pointer, and drawn
// as discs joined by proximity lines.
//
// A Field is not safe for concurrent use. The owner serializes Initialize,
// SetPointer, Advance and Render (see package background).
package field

import (
	"math/rand/v2"

	"github.com/lixenwraith/particle-field/core"
	"github.com/lixenwraith/particle-field/physics"
	"github.com/lixenwraith/particle-field/render"
	"github.com/lixenwraith/particle-field/vmath"
)

// Rand is the random source for placement and jitter
// *rand.Rand from math/rand/v2 satisfies it
type Rand interface {
	Float64() float64
}

// NewRand returns a deterministic PCG source for seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Connection is one drawn line between particles I < J
type Connection struct {
	I, J  int
	Dist  float64
	Alpha float64
}

// Field owns the particle population and the pointer position
type Field struct {
	tuning    Tuning
	rng       Rand
	particles []core.Particle
	pointer   vmath.Vec2
}

// New creates an empty field, call Initialize before the first Advance
func New(t Tuning, rng Rand) *Field {
	return &Field{
		tuning:    t,
		rng:       rng,
		particles: make([]core.Particle, 0, t.Count),
	}
}

// Tuning returns the active parameters
func (f *Field) Tuning() Tuning {
	return f.tuning
}

// SetTuning replaces the parameters, existing particles keep their state until the next Initialize
func (f *Field) SetTuning(t Tuning) {
	f.tuning = t
}

// uniform returns a value in [lo, hi)
func (f *Field) uniform(lo, hi float64) float64 {
	return lo + f.rng.Float64()*(hi-lo)
}

// Initialize discards the population and creates Count fresh particles inside [0,width)x[0,height)
// Full reset: nothing carries over from the previous population
func (f *Field) Initialize(width, height float64) {
	t := f.tuning
	f.particles = f.particles[:0]
	for i := 0; i < t.Count; i++ {
		f.particles = append(f.particles, core.Particle{
			Pos: vmath.V2(f.rng.Float64()*width, f.rng.Float64()*height),
			Vel: vmath.V2(
				f.uniform(-t.InitialSpeed, t.InitialSpeed),
				f.uniform(-t.InitialSpeed, t.InitialSpeed),
			),
			Size:    f.uniform(t.MinSize, t.MaxSize),
			Opacity: f.uniform(t.MinOpacity, t.MaxOpacity),
		})
	}
}

// SetPointer records the repulsion source, read by the next Advance
func (f *Field) SetPointer(x, y float64) {
	f.pointer = vmath.V2(x, y)
}

// Pointer returns the current repulsion source
func (f *Field) Pointer() vmath.Vec2 {
	return f.pointer
}

// Len returns the population size
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns a copy of the population in creation order
func (f *Field) Particles() []core.Particle {
	out := make([]core.Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Advance runs one tick: repulsion, integration, damping, bounce, jitter
func (f *Field) Advance(width, height float64) {
	t := f.tuning
	for i := range f.particles {
		p := &f.particles[i]

		// Zero distance is skipped inside RepulseFrom, direction is undefined there
		physics.RepulseFrom(p, f.pointer, t.RepulsionDistance, t.RepulsionForce, t.RepulsionScale)

		physics.Integrate(p)
		physics.Damp(p, t.Damping)
		physics.Bounce(p, width, height, t.Restitution)

		if t.Jitter > 0 {
			physics.ApplyImpulse(p, vmath.V2(
				f.uniform(-t.Jitter, t.Jitter),
				f.uniform(-t.Jitter, t.Jitter),
			))
		}
	}
}

// Connections returns every unordered pair closer than ConnectionDistance
// O(n²): n(n-1)/2 distance checks
func (f *Field) Connections() []Connection {
	var out []Connection
	f.eachConnection(func(c Connection) {
		out = append(out, c)
	})
	return out
}

func (f *Field) eachConnection(fn func(Connection)) {
	limit := f.tuning.ConnectionDistance
	if limit <= 0 {
		return
	}
	ps := f.particles
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			d := vmath.Dist(ps[i].Pos, ps[j].Pos)
			if d < limit {
				fn(Connection{
					I:     i,
					J:     j,
					Dist:  d,
					Alpha: (1 - d/limit) * f.tuning.ConnectionAlpha,
				})
			}
		}
	}
}

// Render clears s and draws connection lines beneath particle discs
func (f *Field) Render(s render.Surface) {
	s.Clear()

	color := f.tuning.Color
	width := f.tuning.LineWidth
	ps := f.particles

	f.eachConnection(func(c Connection) {
		a, b := ps[c.I].Pos, ps[c.J].Pos
		s.StrokeLine(a.X, a.Y, b.X, b.Y, render.Paint{Color: color, Alpha: c.Alpha}, width)
	})

	for i := range ps {
		p := &ps[i]
		s.FillCircle(p.Pos.X, p.Pos.Y, p.Size, render.Paint{Color: color, Alpha: p.Opacity})
	}
}
