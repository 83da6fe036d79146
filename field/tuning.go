package field

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/particle-field/parameter"
	"github.com/lixenwraith/particle-field/render"
)

// Tuning holds every constant the simulator reads
// The zero value is not usable, start from DefaultTuning
type Tuning struct {
	Count int

	InitialSpeed float64
	MinSize      float64
	MaxSize      float64
	MinOpacity   float64
	MaxOpacity   float64

	RepulsionDistance float64
	RepulsionForce    float64
	RepulsionScale    float64

	Damping     float64
	Restitution float64
	Jitter      float64

	ConnectionDistance float64
	ConnectionAlpha    float64
	LineWidth          float64

	Color render.RGB
}

// DefaultTuning returns the stock field parameters
func DefaultTuning() Tuning {
	return Tuning{
		Count:              parameter.ParticleCount,
		InitialSpeed:       parameter.ParticleInitialSpeed,
		MinSize:            parameter.ParticleMinSize,
		MaxSize:            parameter.ParticleMaxSize,
		MinOpacity:         parameter.ParticleMinOpacity,
		MaxOpacity:         parameter.ParticleMaxOpacity,
		RepulsionDistance:  parameter.RepulsionDistance,
		RepulsionForce:     parameter.RepulsionForce,
		RepulsionScale:     parameter.RepulsionScale,
		Damping:            parameter.Damping,
		Restitution:        parameter.Restitution,
		Jitter:             parameter.Jitter,
		ConnectionDistance: parameter.ConnectionDistance,
		ConnectionAlpha:    parameter.ConnectionAlpha,
		LineWidth:          parameter.ConnectionLineWidth,
		Color:              render.MustParseHex(parameter.AccentColor),
	}
}

var errTuning = errors.New("invalid tuning")

// floats pairs each float parameter with its name
func (t Tuning) floats() []struct {
	name string
	v    float64
} {
	return []struct {
		name string
		v    float64
	}{
		{"initial speed", t.InitialSpeed},
		{"min size", t.MinSize},
		{"max size", t.MaxSize},
		{"min opacity", t.MinOpacity},
		{"max opacity", t.MaxOpacity},
		{"repulsion distance", t.RepulsionDistance},
		{"repulsion force", t.RepulsionForce},
		{"repulsion scale", t.RepulsionScale},
		{"damping", t.Damping},
		{"restitution", t.Restitution},
		{"jitter", t.Jitter},
		{"connection distance", t.ConnectionDistance},
		{"connection alpha", t.ConnectionAlpha},
		{"line width", t.LineWidth},
	}
}

// Validate rejects tunings that would break the field invariants
// NaN passes every ordered comparison, so finiteness is checked first
func (t Tuning) Validate() error {
	for _, f := range t.floats() {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s %v is not finite", errTuning, f.name, f.v)
		}
	}
	switch {
	case t.Count < 0:
		return fmt.Errorf("%w: count %d < 0", errTuning, t.Count)
	case t.InitialSpeed < 0:
		return fmt.Errorf("%w: initial speed %v < 0", errTuning, t.InitialSpeed)
	case t.MinSize < 0 || t.MaxSize < t.MinSize:
		return fmt.Errorf("%w: size range [%v, %v]", errTuning, t.MinSize, t.MaxSize)
	case t.MinOpacity < 0 || t.MaxOpacity > 1 || t.MaxOpacity < t.MinOpacity:
		return fmt.Errorf("%w: opacity range [%v, %v]", errTuning, t.MinOpacity, t.MaxOpacity)
	case t.RepulsionDistance < 0:
		return fmt.Errorf("%w: repulsion distance %v < 0", errTuning, t.RepulsionDistance)
	case t.Damping < 0 || t.Damping > 1:
		return fmt.Errorf("%w: damping %v outside [0, 1]", errTuning, t.Damping)
	case t.Restitution < 0 || t.Restitution > 1:
		return fmt.Errorf("%w: restitution %v outside [0, 1]", errTuning, t.Restitution)
	case t.Jitter < 0:
		return fmt.Errorf("%w: jitter %v < 0", errTuning, t.Jitter)
	case t.ConnectionDistance < 0:
		return fmt.Errorf("%w: connection distance %v < 0", errTuning, t.ConnectionDistance)
	case t.ConnectionAlpha < 0 || t.ConnectionAlpha > 1:
		return fmt.Errorf("%w: connection alpha %v outside [0, 1]", errTuning, t.ConnectionAlpha)
	case t.LineWidth < 0:
		return fmt.Errorf("%w: line width %v < 0", errTuning, t.LineWidth)
	}
	return nil
}
