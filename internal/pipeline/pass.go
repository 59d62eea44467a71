package pipeline

import (
	"errors"
	"fmt"

	"scrollgl/internal/camera"
)

// Uniform names of the distortion pass.
const (
	UniformTime     = "uTime"
	UniformVelocity = "uVelocity"
	UniformInput    = "tDiffuse"
)

// Pass is one stage of the post-processing chain.
type Pass interface {
	PassName() string
}

// RenderPass draws the scene through the camera into the chain's first buffer.
type RenderPass struct {
	Camera *camera.Rig
}

func (*RenderPass) PassName() string { return "render" }

// ShaderPass runs a full-screen fragment program over the previous pass
// output, bound as tDiffuse.
type ShaderPass struct {
	Program  string
	Time     float64
	Velocity float64
}

func (p *ShaderPass) PassName() string { return "shader:" + p.Program }

// Uniforms returns the scalar uniforms by name.
func (p *ShaderPass) Uniforms() map[string]float64 {
	return map[string]float64{
		UniformTime:     p.Time,
		UniformVelocity: p.Velocity,
	}
}

var ErrPassOrder = errors.New("pipeline: a render pass must come first and only shader passes may follow")

// Chain is the ordered pass list kept by a composer. It refuses anything but
// one RenderPass followed by ShaderPasses.
type Chain struct {
	passes []Pass
}

func (c *Chain) Add(p Pass) error {
	switch p.(type) {
	case *RenderPass:
		if len(c.passes) != 0 {
			return fmt.Errorf("%w: render pass at position %d", ErrPassOrder, len(c.passes))
		}
	case *ShaderPass:
		if len(c.passes) == 0 {
			return fmt.Errorf("%w: shader pass %q has no input", ErrPassOrder, p.PassName())
		}
	default:
		return fmt.Errorf("pipeline: unsupported pass %T", p)
	}
	c.passes = append(c.passes, p)
	return nil
}

func (c *Chain) Passes() []Pass { return c.passes }
func (c *Chain) Len() int       { return len(c.passes) }
