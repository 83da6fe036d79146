package physics

import (
	"github.com/lixenwraith/particle-field/core"
	"github.com/lixenwraith/particle-field/vmath"
)

// Integrate advances position by one tick of velocity: p = p + v
// No delta-time scaling, simulation speed follows the frame rate
func Integrate(p *core.Particle) {
	p.Pos = p.Pos.Add(p.Vel)
}

// ApplyImpulse adds velocity delta (momentum transfer)
func ApplyImpulse(p *core.Particle, dv vmath.Vec2) {
	p.Vel = p.Vel.Add(dv)
}

// Damp scales both velocity components by factor (isotropic exponential decay)
func Damp(p *core.Particle, factor float64) {
	p.Vel = p.Vel.Scale(factor)
}

// BounceX handles horizontal boundary contact, returns true if a bounce occurred
// Touching or crossing either wall inverts and attenuates VelX, X is clamped into [0, maxX]
func BounceX(p *core.Particle, maxX, restitution float64) bool {
	if p.Pos.X > 0 && p.Pos.X < maxX {
		return false
	}
	p.Vel.X *= -restitution
	p.Pos.X = vmath.Clamp(p.Pos.X, 0, maxX)
	return true
}

// BounceY handles vertical boundary contact, returns true if a bounce occurred
// Touching or crossing either wall inverts and attenuates VelY, Y is clamped into [0, maxY]
func BounceY(p *core.Particle, maxY, restitution float64) bool {
	if p.Pos.Y > 0 && p.Pos.Y < maxY {
		return false
	}
	p.Vel.Y *= -restitution
	p.Pos.Y = vmath.Clamp(p.Pos.Y, 0, maxY)
	return true
}

// Bounce handles both axis boundary contacts, returns true if any bounce occurred
func Bounce(p *core.Particle, width, height, restitution float64) bool {
	bx := BounceX(p, width, restitution)
	by := BounceY(p, height, restitution)
	return bx || by
}

// RepulseFrom pushes p away from source with linear falloff inside radius
// Impulse magnitude is (radius-d)/radius * force * scale along the normalized displacement
// Returns false without touching velocity when out of range or exactly on the source
func RepulseFrom(p *core.Particle, source vmath.Vec2, radius, force, scale float64) bool {
	delta := p.Pos.Sub(source)
	d := delta.Mag()
	if d >= radius {
		return false
	}
	dir, ok := delta.Normalize()
	if !ok {
		return false
	}
	strength := (radius - d) / radius * force
	ApplyImpulse(p, dir.Scale(strength*scale))
	return true
}
