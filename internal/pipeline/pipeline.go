// Package pipeline composes the frame: the scene render followed by a
// velocity-driven RGB shift and wave distortion.
package pipeline

import (
	"fmt"

	"scrollgl/internal/camera"
	"scrollgl/internal/scroll"
	"scrollgl/internal/utils"
	"scrollgl/internal/viewport"
)

const (
	// DefaultSmoothing is the per-frame low-pass factor applied to scroll velocity.
	DefaultSmoothing = 0.15

	// DistortionProgram names the fragment program of the second pass.
	DistortionProgram = "rgbshift-wave"
)

// Smoother is a first-order low-pass filter stepped once per frame.
type Smoother struct {
	Factor float64
	Value  float64
}

// Step moves Value toward raw by Factor and returns it.
func (s *Smoother) Step(raw float64) float64 {
	s.Value += (raw - s.Value) * s.Factor
	return s.Value
}

// Composer executes the pass chain into the window.
type Composer interface {
	SetPixelRatio(ratio float64)
	SetSize(width, height float64)
	AddPass(p Pass) error
	Render()
}

// Pipeline owns the two passes and the velocity filter.
type Pipeline struct {
	state    *viewport.State
	scroll   scroll.Source
	composer Composer

	render   *RenderPass
	effect   *ShaderPass
	velocity Smoother
}

func New(state *viewport.State, rig *camera.Rig, src scroll.Source, composer Composer) (*Pipeline, error) {
	p := &Pipeline{
		state:    state,
		scroll:   src,
		composer: composer,
		render:   &RenderPass{Camera: rig},
		effect:   &ShaderPass{Program: DistortionProgram},
		velocity: Smoother{Factor: DefaultSmoothing},
	}

	composer.SetPixelRatio(state.PixelRatio)
	composer.SetSize(state.ScreenWidth, state.ScreenHeight)

	if err := composer.AddPass(p.render); err != nil {
		return nil, fmt.Errorf("add render pass: %w", err)
	}
	if err := composer.AddPass(p.effect); err != nil {
		return nil, fmt.Errorf("add distortion pass: %w", err)
	}
	return p, nil
}

func (p *Pipeline) OnResize() {
	p.composer.SetPixelRatio(p.state.PixelRatio)
	p.composer.SetSize(p.state.ScreenWidth, p.state.ScreenHeight)
}

// Update writes this frame's uniforms and renders the chain. A failing
// render is logged and the next frame tries again.
func (p *Pipeline) Update() {
	defer func() {
		if r := recover(); r != nil {
			utils.Error("Pipeline: frame failed: %v", r)
		}
	}()

	p.effect.Time = p.state.ElapsedTime
	p.effect.Velocity = p.velocity.Step(p.scroll.CurrentVelocity())
	p.composer.Render()
}

// Velocity is the smoothed value last written to uVelocity.
func (p *Pipeline) Velocity() float64 { return p.velocity.Value }

func (p *Pipeline) Effect() *ShaderPass { return p.effect }
