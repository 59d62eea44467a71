// Package physac runs the particle world on raylib's Physac port.
package physac

import (
	"github.com/gen2brain/raylib-go/physics"
	rl "github.com/gen2brain/raylib-go/raylib"

	"scrollgl/internal/particle"
	"scrollgl/internal/utils"
)

// Physac integrates in milliseconds: velocities are px/ms and gravity is the
// px/ms gained per second.
const msPerSecond = 1000.0

const density = 1

type obstacle struct {
	body          *physics.Body
	width, height float64
}

// World adapts Physac to particle.World. Physac keeps its bodies in package
// state, so only one World may be open at a time.
type World struct {
	restitution float32
	friction    float32
	obstacles   []obstacle
}

var _ particle.World = (*World)(nil)

func NewWorld() *World {
	physics.Init()
	return &World{}
}

func (w *World) SetMaterial(gravity, restitution, friction float64) {
	physics.SetGravity(0, float32(gravity/msPerSecond))
	w.restitution = float32(restitution)
	w.friction = float32(friction)
}

func (w *World) material(b *physics.Body) {
	b.Restitution = w.restitution
	b.StaticFriction = w.friction
	b.DynamicFriction = w.friction
}

func (w *World) AddBody(def particle.BodyDef) particle.Body {
	size := float32(def.Size)
	b := physics.NewBodyRectangle(vec(def.Position), size, size, density)
	if b == nil {
		return nil
	}
	w.material(b)
	b.SetRotation(float32(def.Rotation))
	b.AngularVelocity = float32(def.AngularVel / msPerSecond)
	return body{b}
}

// SetObstacles moves the static bodies onto rects. A body is rebuilt only
// when its rect changed size; empty rects are skipped.
func (w *World) SetObstacles(rects []particle.Rect) {
	solid := rects[:0:0]
	for _, r := range rects {
		if r.Width > 0 && r.Height > 0 {
			solid = append(solid, r)
		}
	}

	for len(w.obstacles) > len(solid) {
		last := w.obstacles[len(w.obstacles)-1]
		if last.body != nil {
			physics.DestroyBody(last.body)
		}
		w.obstacles = w.obstacles[:len(w.obstacles)-1]
	}

	for i, r := range solid {
		center := particle.Vec2{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
		if i == len(w.obstacles) {
			w.obstacles = append(w.obstacles, w.newObstacle(center, r))
			continue
		}

		o := &w.obstacles[i]
		if o.body != nil && o.width == r.Width && o.height == r.Height {
			o.body.Position = vec(center)
			o.body.Velocity = rl.Vector2{}
			continue
		}
		if o.body != nil {
			physics.DestroyBody(o.body)
		}
		*o = w.newObstacle(center, r)
	}
}

func (w *World) newObstacle(center particle.Vec2, r particle.Rect) obstacle {
	o := obstacle{width: r.Width, height: r.Height}
	b := physics.NewBodyRectangle(vec(center), float32(r.Width), float32(r.Height), density)
	if b == nil {
		utils.Debug("Physac: no room for a %.0fx%.0f obstacle", r.Width, r.Height)
		return o
	}

	// Infinite mass: contacts only push the glyph.
	b.Enabled = false
	b.UseGravity = false
	b.FreezeOrient = true
	b.Mass, b.InverseMass = 0, 0
	b.Inertia, b.InverseInertia = 0, 0
	w.material(b)

	o.body = b
	return o
}

// Step runs one Physac update.
func (w *World) Step() {
	physics.Update()
}

func (w *World) Close() {
	physics.Close()
	w.obstacles = nil
}

type body struct{ b *physics.Body }

func (b body) Position() particle.Vec2 {
	return particle.Vec2{X: float64(b.b.Position.X), Y: float64(b.b.Position.Y)}
}

func (b body) Velocity() particle.Vec2 {
	return particle.Vec2{X: float64(b.b.Velocity.X) * msPerSecond, Y: float64(b.b.Velocity.Y) * msPerSecond}
}

func (b body) Rotation() float64 { return float64(b.b.Orient) }

func (b body) Teleport(pos particle.Vec2) {
	b.b.Position = vec(pos)
	b.b.Velocity = rl.Vector2{}
	b.b.Force = rl.Vector2{}
}

func vec(v particle.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}
