package field

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/particle-field/core"
	"github.com/lixenwraith/particle-field/render"
	"github.com/lixenwraith/particle-field/vmath"
)

// constRand returns the same value every draw
type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func newTestField(seed uint64) *Field {
	return New(DefaultTuning(), NewRand(seed))
}

func TestInitialize_Population(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		f := newTestField(seed)
		f.Initialize(800, 600)

		ps := f.Particles()
		require.Len(t, ps, 60)
		for i, p := range ps {
			assert.True(t, p.Pos.X >= 0 && p.Pos.X <= 800, "seed %d particle %d x=%v", seed, i, p.Pos.X)
			assert.True(t, p.Pos.Y >= 0 && p.Pos.Y <= 600, "seed %d particle %d y=%v", seed, i, p.Pos.Y)
			assert.True(t, p.Size >= 1 && p.Size <= 3, "size %v", p.Size)
			assert.True(t, p.Opacity >= 0.2 && p.Opacity <= 0.7, "opacity %v", p.Opacity)
			assert.True(t, math.Abs(p.Vel.X) <= 0.25 && math.Abs(p.Vel.Y) <= 0.25, "velocity %v", p.Vel)
		}
	}
}

func TestInitialize_RangeEdges(t *testing.T) {
	tuning := DefaultTuning()

	low := New(tuning, constRand(0))
	low.Initialize(100, 50)
	p := low.Particles()[0]
	assert.Equal(t, vmath.V2(0, 0), p.Pos)
	assert.Equal(t, vmath.V2(-0.25, -0.25), p.Vel)
	assert.Equal(t, 1.0, p.Size)
	assert.Equal(t, 0.2, p.Opacity)

	high := New(tuning, constRand(math.Nextafter(1, 0)))
	high.Initialize(100, 50)
	p = high.Particles()[0]
	assert.Less(t, p.Pos.X, 100.0)
	assert.Less(t, p.Pos.Y, 50.0)
	assert.InDelta(t, 3.0, p.Size, 1e-9)
	assert.InDelta(t, 0.7, p.Opacity, 1e-9)
}

func TestInitialize_Deterministic(t *testing.T) {
	a, b := newTestField(42), newTestField(42)
	a.Initialize(640, 480)
	b.Initialize(640, 480)
	assert.Equal(t, a.Particles(), b.Particles())

	for i := 0; i < 50; i++ {
		a.Advance(640, 480)
		b.Advance(640, 480)
	}
	assert.Equal(t, a.Particles(), b.Particles())
}

func TestAdvance_BoundaryInvariant(t *testing.T) {
	const w, h = 300.0, 200.0
	f := newTestField(7)
	f.Initialize(w, h)

	// Violent velocities, escapes must still be clamped
	for i := range f.particles {
		f.particles[i].Vel = vmath.V2(float64(i%7-3)*500, float64(i%5-2)*900)
	}
	f.SetPointer(w/2, h/2)

	for tick := 0; tick < 500; tick++ {
		f.Advance(w, h)
		for i, p := range f.particles {
			require.True(t, p.Pos.X >= 0 && p.Pos.X <= w, "tick %d particle %d x=%v", tick, i, p.Pos.X)
			require.True(t, p.Pos.Y >= 0 && p.Pos.Y <= h, "tick %d particle %d y=%v", tick, i, p.Pos.Y)
		}
	}
}

func TestAdvance_BoundaryAfterShrink(t *testing.T) {
	f := newTestField(3)
	f.Initialize(1000, 1000)
	// Advancing with smaller bounds than the population was created in still clamps
	f.Advance(10, 10)
	for _, p := range f.particles {
		assert.True(t, p.Pos.X >= 0 && p.Pos.X <= 10)
		assert.True(t, p.Pos.Y >= 0 && p.Pos.Y <= 10)
	}
}

func TestAdvance_ZeroDistanceGuard(t *testing.T) {
	f := newTestField(9)
	f.Initialize(400, 400)
	f.particles[0].Pos = vmath.V2(200, 200)
	f.particles[0].Vel = vmath.V2(0, 0)
	f.SetPointer(200, 200)

	require.NotPanics(t, func() { f.Advance(400, 400) })

	p := f.particles[0]
	assert.True(t, p.Vel.IsFinite(), "velocity must not be NaN/Inf, got %v", p.Vel)
	assert.True(t, p.Pos.IsFinite(), "position must not be NaN/Inf, got %v", p.Pos)
	// Only damping and jitter touched it
	assert.LessOrEqual(t, math.Abs(p.Vel.X), DefaultTuning().Jitter)
	assert.LessOrEqual(t, math.Abs(p.Vel.Y), DefaultTuning().Jitter)
}

func TestAdvance_RepulsionPushesAway(t *testing.T) {
	tuning := DefaultTuning()
	tuning.Jitter = 0
	f := New(tuning, NewRand(1))
	f.Initialize(400, 400)
	f.particles = f.particles[:1]
	f.particles[0] = core.Particle{Pos: vmath.V2(250, 200), Size: 1, Opacity: 0.5}
	f.SetPointer(200, 200)

	f.Advance(400, 400)

	// (100-50)/100 * 0.8 * 0.1 = 0.04, integrated then damped
	p := f.particles[0]
	assert.InDelta(t, 250.04, p.Pos.X, 1e-9)
	assert.InDelta(t, 0.04*0.99, p.Vel.X, 1e-12)
	assert.Equal(t, 0.0, p.Vel.Y)
}

func TestAdvance_DampingConvergence(t *testing.T) {
	tuning := DefaultTuning()
	tuning.Jitter = 0
	f := New(tuning, NewRand(5))
	f.Initialize(2000, 2000)
	f.SetPointer(-1e9, -1e9)

	speed := func() float64 {
		var sum float64
		for _, p := range f.particles {
			sum += p.Vel.MagSq()
		}
		return sum
	}

	prev := speed()
	require.Greater(t, prev, 0.0)
	for tick := 0; tick < 300; tick++ {
		f.Advance(2000, 2000)
		cur := speed()
		if prev < 1e-24 {
			break
		}
		// Squared magnitude shrinks by at least 0.99² per tick, bounces only shrink it further
		assert.LessOrEqual(t, cur, prev*0.99*0.99*(1+1e-12), "tick %d", tick)
		assert.Less(t, cur, prev, "tick %d", tick)
		prev = cur
	}
}

func TestAdvance_DampingRatioPerParticle(t *testing.T) {
	tuning := DefaultTuning()
	tuning.Jitter = 0
	f := New(tuning, NewRand(1))
	f.Initialize(1000, 1000)
	f.particles = []core.Particle{{Pos: vmath.V2(500, 500), Vel: vmath.V2(0.2, -0.1), Size: 1, Opacity: 0.5}}
	f.SetPointer(-1e9, -1e9)

	before := f.particles[0].Vel.MagSq()
	f.Advance(1000, 1000)
	after := f.particles[0].Vel.MagSq()
	assert.InDelta(t, 0.9801, after/before, 1e-12)
}

func TestConnections_Symmetry(t *testing.T) {
	f := newTestField(11)
	f.Initialize(500, 300)
	for i := 0; i < 30; i++ {
		f.Advance(500, 300)
	}

	type pair struct{ i, j int }
	drawn := make(map[pair]bool)
	for _, c := range f.Connections() {
		require.Less(t, c.I, c.J, "pairs are reported once with I < J")
		require.False(t, drawn[pair{c.I, c.J}], "duplicate pair %d-%d", c.I, c.J)
		drawn[pair{c.I, c.J}] = true
		assert.InDelta(t, (1-c.Dist/120)*0.3, c.Alpha, 1e-12)
	}

	ps := f.Particles()
	for i := range ps {
		for j := range ps {
			if i == j {
				continue
			}
			a, b := min(i, j), max(i, j)
			want := vmath.Dist(ps[i].Pos, ps[j].Pos) < 120
			assert.Equal(t, want, drawn[pair{a, b}], "pair (%d,%d)", i, j)
			// Distance is symmetric, so the decision is independent of order
			assert.Equal(t, vmath.Dist(ps[i].Pos, ps[j].Pos), vmath.Dist(ps[j].Pos, ps[i].Pos))
		}
	}
}

func TestConnections_IndependentOfOrder(t *testing.T) {
	f := newTestField(13)
	f.Initialize(400, 400)
	forward := f.Connections()

	// Reverse the population, the same geometric pairs must connect
	n := len(f.particles)
	for i := 0; i < n/2; i++ {
		f.particles[i], f.particles[n-1-i] = f.particles[n-1-i], f.particles[i]
	}
	reversed := f.Connections()
	require.Len(t, reversed, len(forward))

	key := func(c Connection, remap bool) [2]int {
		i, j := c.I, c.J
		if remap {
			i, j = n-1-i, n-1-j
		}
		return [2]int{min(i, j), max(i, j)}
	}
	var a, b [][2]int
	for _, c := range forward {
		a = append(a, key(c, false))
	}
	for _, c := range reversed {
		b = append(b, key(c, true))
	}
	less := func(s [][2]int) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i][0] != s[j][0] {
				return s[i][0] < s[j][0]
			}
			return s[i][1] < s[j][1]
		}
	}
	sort.Slice(a, less(a))
	sort.Slice(b, less(b))
	assert.Equal(t, a, b)
}

func TestConnections_ExactThreshold(t *testing.T) {
	f := newTestField(1)
	f.particles = []core.Particle{
		{Pos: vmath.V2(0, 0)},
		{Pos: vmath.V2(120, 0)},
		{Pos: vmath.V2(0, 119.999)},
	}
	conns := f.Connections()
	require.Len(t, conns, 1, "exactly 120 apart is not connected")
	assert.Equal(t, 0, conns[0].I)
	assert.Equal(t, 2, conns[0].J)
}

func TestRender_DrawsLinesThenDiscs(t *testing.T) {
	f := newTestField(21)
	f.Initialize(600, 400)
	rec := render.NewRecorder(600, 400)

	f.Render(rec)

	_, clears, _ := rec.Counts()
	assert.Equal(t, 1, clears)
	lines := rec.Lines()
	assert.Len(t, lines, len(f.Connections()))
	for _, l := range lines {
		assert.Equal(t, 0.5, l.Width)
		assert.Equal(t, render.RGB{R: 16, G: 163, B: 127}, l.Paint.Color)
		assert.True(t, l.Paint.Alpha > 0 && l.Paint.Alpha <= 0.3)
	}

	circles := rec.Circles()
	require.Len(t, circles, 60)
	ps := f.Particles()
	for i, c := range circles {
		assert.Equal(t, ps[i].Pos.X, c.X)
		assert.Equal(t, ps[i].Pos.Y, c.Y)
		assert.Equal(t, ps[i].Size, c.Radius)
		assert.Equal(t, ps[i].Opacity, c.Paint.Alpha)
	}
}

func TestInitialize_ResizeReset(t *testing.T) {
	f := newTestField(17)
	f.Initialize(1920, 1080)
	for i := 0; i < 10; i++ {
		f.Advance(1920, 1080)
	}
	before := f.Particles()

	f.Initialize(320, 200)
	after := f.Particles()
	require.Len(t, after, 60)

	for i := range after {
		assert.NotEqual(t, before[i].Pos, after[i].Pos, "particle %d kept its position", i)
		assert.NotEqual(t, before[i].Vel, after[i].Vel, "particle %d kept its velocity", i)
		assert.True(t, after[i].Pos.X < 320 && after[i].Pos.Y < 200)
	}
}

func TestSetTuning(t *testing.T) {
	f := newTestField(1)
	tuning := DefaultTuning()
	tuning.Count = 5
	f.SetTuning(tuning)
	f.Initialize(100, 100)
	assert.Equal(t, 5, f.Len())
	assert.Equal(t, 5, f.Tuning().Count)
}

func TestTuning_Validate(t *testing.T) {
	require.NoError(t, DefaultTuning().Validate())

	bad := []func(*Tuning){
		func(t *Tuning) { t.Count = -1 },
		func(t *Tuning) { t.MinSize, t.MaxSize = 3, 1 },
		func(t *Tuning) { t.MaxOpacity = 1.5 },
		func(t *Tuning) { t.Damping = 1.1 },
		func(t *Tuning) { t.Restitution = -0.1 },
		func(t *Tuning) { t.Jitter = -1 },
		func(t *Tuning) { t.ConnectionAlpha = 2 },
		func(t *Tuning) { t.Damping = math.NaN() },
		func(t *Tuning) { t.RepulsionForce = math.Inf(1) },
		func(t *Tuning) { t.Jitter = math.Inf(-1) },
		func(t *Tuning) { t.MaxSize = math.NaN() },
	}
	for i, mutate := range bad {
		tuning := DefaultTuning()
		mutate(&tuning)
		assert.Error(t, tuning.Validate(), "case %d", i)
	}
}

func TestAdvance_BoundaryHoldsForValidatedTuning(t *testing.T) {
	tuning := DefaultTuning()
	tuning.Damping = math.NaN()
	require.Error(t, tuning.Validate())

	// A tuning that validates keeps every particle finite and in bounds
	tuning = DefaultTuning()
	require.NoError(t, tuning.Validate())
	f := New(tuning, NewRand(5))
	f.Initialize(100, 100)
	for i := 0; i < 50; i++ {
		f.Advance(100, 100)
	}
	for i, p := range f.Particles() {
		assert.True(t, p.Pos.IsFinite() && p.Vel.IsFinite(), "particle %d not finite", i)
		assert.True(t, p.Pos.X >= 0 && p.Pos.X <= 100 && p.Pos.Y >= 0 && p.Pos.Y <= 100, "particle %d out of bounds", i)
	}
}
