package particle

// World is the rigid-body engine the glyphs fall through. Positions are body
// centres in viewport pixels with y down, velocities are px/s and angles are
// radians.
type World interface {
	// SetMaterial sets gravity in px/s² and the restitution and friction
	// shared by bodies and obstacles.
	SetMaterial(gravity, restitution, friction float64)
	// AddBody creates a square dynamic body, or returns nil when the world
	// has no room left.
	AddBody(def BodyDef) Body
	// SetObstacles makes rects the static bodies for the next step.
	SetObstacles(rects []Rect)
	// Step advances the simulation by one engine step.
	Step()
}

type BodyDef struct {
	Position   Vec2
	Size       float64
	Rotation   float64
	AngularVel float64 // rad/s
}

type Body interface {
	Position() Vec2
	Velocity() Vec2
	Rotation() float64
	// Teleport moves the body to pos and stops it.
	Teleport(pos Vec2)
}
