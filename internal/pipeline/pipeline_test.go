package pipeline

import (
	"errors"
	"math"
	"testing"

	"scrollgl/internal/camera"
	"scrollgl/internal/viewport"
)

type display struct{ w, h, dpr float64 }

func (d *display) ScreenSize() (float64, float64) { return d.w, d.h }
func (d *display) DevicePixelRatio() float64      { return d.dpr }

type velocitySource struct{ v float64 }

func (s *velocitySource) CurrentOffset() float64   { return 0 }
func (s *velocitySource) CurrentVelocity() float64 { return s.v }

type recorder struct {
	Chain
	ratio       float64
	w, h        float64
	renders     int
	velocities  []float64
	lastUniform map[string]float64
	effect      *ShaderPass
	fail        bool
}

func (r *recorder) SetPixelRatio(ratio float64) { r.ratio = ratio }

func (r *recorder) SetSize(w, h float64) {
	r.w, r.h = w, h
}

func (r *recorder) AddPass(p Pass) error {
	if sp, ok := p.(*ShaderPass); ok {
		r.effect = sp
	}
	return r.Chain.Add(p)
}

func (r *recorder) Render() {
	r.renders++
	if r.fail {
		panic("render target lost")
	}
	r.lastUniform = r.effect.Uniforms()
	r.velocities = append(r.velocities, r.effect.Velocity)
}

func setup(t *testing.T) (*Pipeline, *recorder, *velocitySource, *display, *viewport.State) {
	t.Helper()
	d := &display{w: 1280, h: 800, dpr: 3}
	state := viewport.New(d)
	state.Init()
	rig := camera.New(state)
	src := &velocitySource{}
	rec := &recorder{}
	p, err := New(state, rig, src, rec)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p, rec, src, d, state
}

func TestNewConfiguresComposer(t *testing.T) {
	_, rec, _, _, _ := setup(t)

	if rec.ratio != 2 || rec.w != 1280 || rec.h != 800 {
		t.Errorf("composer got ratio=%v size=%vx%v", rec.ratio, rec.w, rec.h)
	}
	passes := rec.Passes()
	if len(passes) != 2 {
		t.Fatalf("got %d passes", len(passes))
	}
	if _, ok := passes[0].(*RenderPass); !ok {
		t.Errorf("first pass is %T", passes[0])
	}
	if sp, ok := passes[1].(*ShaderPass); !ok || sp.Program != DistortionProgram {
		t.Errorf("second pass is %#v", passes[1])
	}
}

func TestChainOrder(t *testing.T) {
	var c Chain
	if err := c.Add(&ShaderPass{Program: "x"}); !errors.Is(err, ErrPassOrder) {
		t.Errorf("shader first: err = %v", err)
	}
	if err := c.Add(&RenderPass{}); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(&RenderPass{}); !errors.Is(err, ErrPassOrder) {
		t.Errorf("second render pass: err = %v", err)
	}
	if err := c.Add(&ShaderPass{Program: "x"}); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Errorf("len = %d", c.Len())
	}
}

func TestVelocityConvergesWithoutOvershoot(t *testing.T) {
	p, rec, src, _, _ := setup(t)
	src.v = 10

	prev := 0.0
	for i := 0; i < 200; i++ {
		p.Update()
		v := p.Velocity()
		if v < prev || v > 10 {
			t.Fatalf("frame %d: velocity %v after %v", i, v, prev)
		}
		prev = v
	}
	if math.Abs(prev-10) > 1e-6 {
		t.Errorf("velocity = %v, want ~10", prev)
	}
	if rec.velocities[0] != 1.5 {
		t.Errorf("first frame velocity = %v, want 1.5", rec.velocities[0])
	}
}

func TestUpdateWritesUniforms(t *testing.T) {
	p, rec, src, _, state := setup(t)
	src.v = -4

	state.ElapsedTime = 0
	p.Update()
	if rec.renders != 1 {
		t.Fatalf("renders = %d", rec.renders)
	}
	if rec.lastUniform[UniformVelocity] != -0.6 {
		t.Errorf("uVelocity = %v", rec.lastUniform[UniformVelocity])
	}
	if _, ok := rec.lastUniform[UniformTime]; !ok {
		t.Error("uTime missing")
	}
}

func TestOnResize(t *testing.T) {
	p, rec, _, d, state := setup(t)

	d.w, d.h, d.dpr = 640, 480, 1
	state.OnResize()
	p.OnResize()
	if rec.ratio != 1 || rec.w != 640 || rec.h != 480 {
		t.Errorf("after resize ratio=%v size=%vx%v", rec.ratio, rec.w, rec.h)
	}
}

func TestUpdateSurvivesRenderFailure(t *testing.T) {
	p, rec, src, _, _ := setup(t)
	rec.fail = true
	src.v = 10

	p.Update()
	if rec.renders != 1 {
		t.Fatalf("renders = %d, want 1", rec.renders)
	}
	if got := p.Velocity(); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("velocity = %v, want 1.5", got)
	}

	rec.fail = false
	p.Update()
	if rec.renders != 2 || len(rec.velocities) != 1 {
		t.Errorf("renders = %d, recorded = %d; want the next frame to render", rec.renders, len(rec.velocities))
	}
}
