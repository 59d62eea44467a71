package particle

import "math/rand"

type Vec2 struct {
	X, Y float64
}

// Particle is one falling glyph as last read from its body. Position is its
// centre in viewport pixels, y pointing down.
type Particle struct {
	Position Vec2
	Velocity Vec2 // px/s
	Rotation float64
	Size     float64

	body Body
}

func (p *Particle) sync() {
	p.Position = p.body.Position()
	p.Velocity = p.body.Velocity()
	p.Rotation = p.body.Rotation()
}

// Rect is an axis-aligned obstacle in viewport pixels.
type Rect struct {
	Left, Top, Width, Height float64
}

// Colliders yields the obstacles for the current frame.
type Colliders func() []Rect

type Options struct {
	Count       int
	Width       float64
	Height      float64
	Size        float64 // edge of the square body
	Gravity     float64 // px/s²
	Restitution float64
	Friction    float64
	Glyph       string
	Rand        *rand.Rand
}

const (
	DefaultCount       = 150
	DefaultSize        = 14.0
	DefaultGravity     = 500.0
	DefaultRestitution = 0.6
	DefaultFriction    = 0.1
	DefaultGlyph       = "+"

	// respawnMargin is how far below the screen a body may fall before it is
	// thrown back above the top edge.
	respawnMargin = 50.0
)

func (o *Options) withDefaults() {
	if o.Count < 0 {
		o.Count = 0
	}
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.Gravity == 0 {
		o.Gravity = DefaultGravity
	}
	if o.Restitution == 0 {
		o.Restitution = DefaultRestitution
	}
	if o.Friction == 0 {
		o.Friction = DefaultFriction
	}
	if o.Glyph == "" {
		o.Glyph = DefaultGlyph
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(rand.Int63()))
	}
}
