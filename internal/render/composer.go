package render

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scrollgl/internal/camera"
	"scrollgl/internal/pipeline"
	"scrollgl/internal/utils"
)

// SceneDrawer paints the 3D layer in window pixels, y down. Prepare runs
// before any pass so it may use texture mode itself.
type SceneDrawer interface {
	Prepare()
	Draw(rig *camera.Rig)
}

// Composer runs the pass chain over two render textures sized to the window
// times the pixel ratio. The last pass draws straight to the screen.
type Composer struct {
	pipeline.Chain

	scene    SceneDrawer
	ratio    float64
	width    float64
	height   float64
	pingPong [2]*rl.RenderTexture2D
	programs map[string]*program
}

func NewComposer(scene SceneDrawer) *Composer {
	return &Composer{
		scene:    scene,
		ratio:    1,
		programs: make(map[string]*program),
	}
}

func (c *Composer) SetPixelRatio(ratio float64) { c.ratio = ratio }

func (c *Composer) SetSize(width, height float64) {
	c.width, c.height = width, height
}

// AddPass appends p, compiling its program on first use.
func (c *Composer) AddPass(p pipeline.Pass) error {
	if err := c.Chain.Add(p); err != nil {
		return err
	}
	if sp, ok := p.(*pipeline.ShaderPass); ok {
		if _, loaded := c.programs[sp.Program]; !loaded {
			c.programs[sp.Program] = loadProgram(sp.Program,
				pipeline.UniformInput, pipeline.UniformTime, pipeline.UniformVelocity)
		}
	}
	return nil
}

func (c *Composer) targetSize() (int32, int32) {
	w := int32(math.Max(1, math.Round(c.width*c.ratio)))
	h := int32(math.Max(1, math.Round(c.height*c.ratio)))
	return w, h
}

// ensureTargets (re)allocates the ping-pong pair when the size changed.
func (c *Composer) ensureTargets() {
	w, h := c.targetSize()
	if c.pingPong[0] != nil &&
		c.pingPong[0].Texture.Width == w &&
		c.pingPong[0].Texture.Height == h {
		return
	}

	if c.pingPong[0] != nil {
		rl.UnloadRenderTexture(*c.pingPong[0])
		rl.UnloadRenderTexture(*c.pingPong[1])
	}

	rt1 := rl.LoadRenderTexture(w, h)
	rt2 := rl.LoadRenderTexture(w, h)
	rl.SetTextureFilter(rt1.Texture, rl.FilterBilinear)
	rl.SetTextureFilter(rt2.Texture, rl.FilterBilinear)
	rl.SetTextureWrap(rt1.Texture, rl.TextureWrapClamp)
	rl.SetTextureWrap(rt2.Texture, rl.TextureWrapClamp)

	c.pingPong[0] = &rt1
	c.pingPong[1] = &rt2
	utils.Debug("Composer: render targets %dx%d (ratio %.2f)", w, h, c.ratio)
}

// Render executes every pass. It must run between BeginDrawing and EndDrawing.
func (c *Composer) Render() {
	passes := c.Passes()
	if len(passes) == 0 {
		return
	}
	c.ensureTargets()
	if c.scene != nil {
		c.scene.Prepare()
	}

	var current *rl.Texture2D
	idx := 0

	for i, p := range passes {
		last := i == len(passes)-1
		target := c.pingPong[idx]

		switch pass := p.(type) {
		case *pipeline.RenderPass:
			rl.BeginTextureMode(*target)
			rl.ClearBackground(rl.Blank)
			rl.BeginMode2D(rl.Camera2D{Zoom: float32(c.ratio)})
			if c.scene != nil {
				c.scene.Draw(pass.Camera)
			}
			rl.EndMode2D()
			rl.EndTextureMode()

			if last {
				c.blit(&target.Texture, nil)
			}

		case *pipeline.ShaderPass:
			prog := c.programs[pass.Program]
			if prog == nil || !prog.ok() {
				// A broken program passes its input through.
				if last {
					c.blit(current, nil)
				}
				continue
			}
			if last {
				c.blit(current, func() { c.bind(prog, pass, current) })
				continue
			}
			rl.BeginTextureMode(*target)
			rl.ClearBackground(rl.Blank)
			c.drawInto(current, target, func() { c.bind(prog, pass, current) })
			rl.EndTextureMode()
		}

		current = &target.Texture
		idx = 1 - idx
	}
}

func (c *Composer) bind(prog *program, pass *pipeline.ShaderPass, input *rl.Texture2D) {
	rl.BeginShaderMode(prog.shader)
	for name, v := range pass.Uniforms() {
		prog.setFloat(name, v)
	}
	prog.setTexture(pipeline.UniformInput, *input)
}

// blit draws a render texture over the whole window, optionally through a
// shader bound by begin.
func (c *Composer) blit(tex *rl.Texture2D, begin func()) {
	if tex == nil {
		return
	}
	if begin != nil {
		begin()
	}
	src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	dst := rl.NewRectangle(0, 0, float32(c.width), float32(c.height))
	rl.DrawTexturePro(*tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
	if begin != nil {
		rl.EndShaderMode()
	}
}

func (c *Composer) drawInto(tex *rl.Texture2D, target *rl.RenderTexture2D, begin func()) {
	if begin != nil {
		begin()
	}
	src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	dst := rl.NewRectangle(0, 0, float32(target.Texture.Width), float32(target.Texture.Height))
	rl.DrawTexturePro(*tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
	if begin != nil {
		rl.EndShaderMode()
	}
}

func (c *Composer) Unload() {
	if c.pingPong[0] != nil {
		rl.UnloadRenderTexture(*c.pingPong[0])
		rl.UnloadRenderTexture(*c.pingPong[1])
		c.pingPong = [2]*rl.RenderTexture2D{}
	}
	for _, p := range c.programs {
		p.unload()
	}
}
