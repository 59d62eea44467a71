package render

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scrollgl/internal/camera"
	"scrollgl/internal/fonts"
	"scrollgl/internal/textlayout"
	"scrollgl/internal/textproxy"
)

type meshTexture struct {
	version int
	text    string
	font    string
	ratio   float64
	width   float64
	height  float64
	rt      rl.RenderTexture2D
}

// TextMeshes draws every mesh of a scene: glyphs are rasterised once into a
// render texture and composited through the reveal shader each frame.
type TextMeshes struct {
	scene *textproxy.MeshScene
	lib   *fonts.Library
	fonts *FontCache
	ratio func() float64

	prog  *program
	cache map[*textproxy.Mesh]*meshTexture
}

func NewTextMeshes(scene *textproxy.MeshScene, lib *fonts.Library, fc *FontCache, ratio func() float64) *TextMeshes {
	return &TextMeshes{
		scene: scene,
		lib:   lib,
		fonts: fc,
		ratio: ratio,
		prog:  loadProgram(textRevealProgram, "uProgress", "uHeight", "uColor"),
		cache: make(map[*textproxy.Mesh]*meshTexture),
	}
}

// Prepare rasterises pending glyph textures and frees those of removed
// meshes. It runs outside any texture mode.
func (t *TextMeshes) Prepare() {
	live := make(map[*textproxy.Mesh]bool, len(t.scene.Meshes()))
	for _, m := range t.scene.Meshes() {
		live[m] = true
		if m.Material.Progress > 0 && m.Text != "" {
			t.texture(m)
		}
	}
	for m, tex := range t.cache {
		if !live[m] {
			rl.UnloadRenderTexture(tex.rt)
			delete(t.cache, m)
		}
	}
}

// Draw implements SceneDrawer.
func (t *TextMeshes) Draw(rig *camera.Rig) {
	for _, m := range t.scene.Meshes() {
		tex, ok := t.cache[m]
		if !ok || m.Material.Progress <= 0 {
			continue
		}

		ox, oy := m.Origin()
		sx, sy := rig.ToScreen(ox, oy, m.Z)
		scale := rig.PixelScale(m.Z)

		src := rl.NewRectangle(0, 0, float32(tex.rt.Texture.Width), -float32(tex.rt.Texture.Height))
		dst := rl.NewRectangle(float32(sx), float32(sy), float32(tex.width*scale), float32(tex.height*scale))
		c := m.Material.Color

		if t.prog.ok() {
			rl.BeginShaderMode(t.prog.shader)
			t.prog.setFloat("uProgress", m.Material.Progress)
			t.prog.setFloat("uHeight", tex.height)
			t.prog.setVec3("uColor", c.R, c.G, c.B)
			rl.DrawTexturePro(tex.rt.Texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)
			rl.EndShaderMode()
			continue
		}

		// Without the shader, fade with progress.
		tint := rl.NewColor(to8(c.R), to8(c.G), to8(c.B), to8(m.Material.Progress))
		rl.DrawTexturePro(tex.rt.Texture, src, dst, rl.NewVector2(0, 0), 0, tint)
	}
}

// texture returns the glyph texture for m, rebuilding it when the text,
// typography or pixel ratio changed.
func (t *TextMeshes) texture(m *textproxy.Mesh) *meshTexture {
	ratio := t.ratio()
	if tex, ok := t.cache[m]; ok {
		if tex.version == m.Version && tex.text == m.Text && tex.font == m.Font && tex.ratio == ratio {
			return tex
		}
		rl.UnloadRenderTexture(tex.rt)
	}

	face := t.lib.Face(m.Font, m.FontSize)
	layout := textlayout.Lay(m.Text, textlayout.FaceMeasurer(face), m.Params())

	tex := &meshTexture{
		version: m.Version,
		text:    m.Text,
		font:    m.Font,
		ratio:   ratio,
		width:   math.Max(1, math.Max(m.MaxWidth, layout.Width)),
		height:  math.Max(1, math.Max(m.Material.Height, layout.Height)),
	}
	tex.rt = rl.LoadRenderTexture(int32(math.Ceil(tex.width*ratio)), int32(math.Ceil(tex.height*ratio)))
	rl.SetTextureFilter(tex.rt.Texture, rl.FilterBilinear)

	font := t.fonts.Get(m.Font, m.FontSize*ratio)
	size := float32(m.FontSize * ratio)
	spacing := float32(m.LetterSpacing * m.FontSize * ratio)
	lineBox := m.LineHeight * m.FontSize

	rl.BeginTextureMode(tex.rt)
	rl.ClearBackground(rl.Blank)
	for _, line := range layout.Lines {
		y := line.Y + (lineBox-m.FontSize)/2
		rl.DrawTextEx(font, line.Text, rl.NewVector2(float32(line.X*ratio), float32(y*ratio)), size, spacing, rl.White)
	}
	rl.EndTextureMode()

	t.cache[m] = tex
	return tex
}

func (t *TextMeshes) Unload() {
	for m, tex := range t.cache {
		rl.UnloadRenderTexture(tex.rt)
		delete(t.cache, m)
	}
	t.prog.unload()
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
