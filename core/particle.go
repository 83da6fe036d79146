package core

import "github.com/lixenwraith/particle-field/vmath"

// Particle is one simulated point mass of the field
// Size and Opacity are fixed at creation, Pos and Vel change every tick
type Particle struct {
	// Pos is the position in logical surface units
	Pos vmath.Vec2
	// Vel is the velocity in units per tick
	Vel vmath.Vec2
	// Size is the disc radius in units
	Size float64
	// Opacity is the disc alpha
	Opacity float64
}
