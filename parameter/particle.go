package parameter

// Field Population
const (
	// ParticleCount is the fixed population created on every initialization
	ParticleCount = 60

	// ParticleInitialSpeed is the half-range of initial velocity components (units/tick)
	ParticleInitialSpeed = 0.25

	// ParticleMinSize/MaxSize bound the disc radius (units)
	ParticleMinSize = 1.0
	ParticleMaxSize = 3.0

	// ParticleMinOpacity/MaxOpacity bound the disc alpha
	ParticleMinOpacity = 0.2
	ParticleMaxOpacity = 0.7
)

// Pointer Repulsion
const (
	// RepulsionDistance is the radius around the pointer inside which particles are pushed (units)
	RepulsionDistance = 100.0

	// RepulsionForce is the peak force at zero distance, falls off linearly to the radius
	RepulsionForce = 0.8

	// RepulsionScale converts force into a per-tick velocity impulse
	RepulsionScale = 0.1
)

// Motion
const (
	// Damping is the per-tick velocity multiplier, not frame-time compensated
	Damping = 0.99

	// Restitution is the velocity fraction kept (and inverted) on wall bounce
	Restitution = 0.8

	// Jitter is the half-range of per-tick random velocity noise, keeps the field from settling
	Jitter = 0.005
)

// Connections
const (
	// ConnectionDistance is the pair distance below which a line is drawn (units)
	ConnectionDistance = 120.0

	// ConnectionAlpha is the line alpha at zero distance, falls off linearly to the radius
	ConnectionAlpha = 0.3

	// ConnectionLineWidth is the stroke width of connection lines (units)
	ConnectionLineWidth = 0.5
)

// AccentColor is the fill and stroke color of the field
const AccentColor = "#10a37f"
