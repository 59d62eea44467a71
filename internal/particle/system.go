// Package particle keeps the decorative falling glyphs in step with a
// rigid-body world and the page blocks they bounce off.
package particle

import (
	"math"

	"scrollgl/internal/utils"
)

// System owns every falling glyph. It is stepped from the frame loop.
type System struct {
	Particles []*Particle

	opts      Options
	width     float64
	height    float64
	world     World
	colliders Colliders
}

// NewSystem spawns opts.Count bodies in world, scattered above the screen.
// colliders may be nil.
func NewSystem(opts Options, world World, colliders Colliders) *System {
	opts.withDefaults()
	s := &System{
		opts:      opts,
		width:     opts.Width,
		height:    opts.Height,
		world:     world,
		colliders: colliders,
		Particles: make([]*Particle, 0, opts.Count),
	}

	world.SetMaterial(opts.Gravity, opts.Restitution, opts.Friction)
	for i := 0; i < opts.Count; i++ {
		p := s.spawnParticle()
		if p == nil {
			utils.Warn("Particle: world is full after %d of %d bodies", i, opts.Count)
			break
		}
		s.Particles = append(s.Particles, p)
	}
	utils.Debug("Particle: spawned %d bodies in %.0fx%.0f", len(s.Particles), s.width, s.height)
	return s
}

func (s *System) spawnParticle() *Particle {
	rng := s.opts.Rand
	def := BodyDef{
		Position:   Vec2{X: rng.Float64() * s.width, Y: rng.Float64() * -s.height * 2},
		Size:       s.opts.Size,
		Rotation:   rng.Float64() * math.Pi * 2,
		AngularVel: rng.Float64()*2 - 1,
	}
	body := s.world.AddBody(def)
	if body == nil {
		return nil
	}
	return &Particle{Position: def.Position, Rotation: def.Rotation, Size: def.Size, body: body}
}

// Glyph is the character drawn for every body.
func (s *System) Glyph() string { return s.opts.Glyph }

// Resize updates the spawn and respawn bounds.
func (s *System) Resize(width, height float64) {
	s.width = width
	s.height = height
}

// Step hands the current obstacles to the world, advances it once and reads
// the bodies back. Bodies that fell past the bottom edge are thrown back
// above the top.
func (s *System) Step() {
	var obstacles []Rect
	if s.colliders != nil {
		obstacles = s.colliders()
	}
	s.world.SetObstacles(obstacles)
	s.world.Step()

	for _, p := range s.Particles {
		p.sync()
		if p.Position.Y > s.height+respawnMargin {
			s.respawn(p)
		}
	}
}

func (s *System) respawn(p *Particle) {
	rng := s.opts.Rand
	pos := Vec2{X: rng.Float64() * s.width, Y: -50 - rng.Float64()*200}
	p.body.Teleport(pos)
	p.Position = pos
	p.Velocity = Vec2{}
}
