package textproxy

import (
	"scrollgl/internal/dom"
	"scrollgl/internal/textlayout"
)

// Material carries the uniforms of the text shader.
type Material struct {
	Progress float64 // uProgress, 0 hidden .. 1 fully revealed
	Height   float64 // uHeight, source box height in pixels
	Color    dom.RGB // uColor
}

// Mesh is the renderer-facing description of one text proxy. Positions are in
// scene units, which equal CSS pixels at the camera's focal plane, with the
// origin at the viewport centre and y pointing up.
type Mesh struct {
	Text string
	Font string

	// AnchorX and AnchorY are fractions of the text block the position refers to.
	AnchorX float64
	AnchorY float64

	FontSize      float64
	LetterSpacing float64 // em
	LineHeight    float64 // em
	MaxWidth      float64
	WhiteSpace    string
	TextAlign     string

	X, Y, Z float64

	Material Material

	// Version changes whenever a typographic value changes, so renderers know
	// to rebuild cached glyph textures.
	Version int
}

// Params are the layout inputs for the mesh text.
func (m *Mesh) Params() textlayout.Params {
	return textlayout.Params{
		FontSize:      m.FontSize,
		LetterSpacing: m.LetterSpacing,
		LineHeight:    m.LineHeight,
		MaxWidth:      m.MaxWidth,
		WhiteSpace:    m.WhiteSpace,
		TextAlign:     m.TextAlign,
	}
}

// Origin is the world-space top-left corner of the source box, derived from
// the anchored position. Lines of a layout are offset from this point.
func (m *Mesh) Origin() (x, y float64) {
	return m.X - m.AnchorX*m.MaxWidth, m.Y + m.AnchorY*m.Material.Height
}

// Scene receives meshes; it is owned by the host.
type Scene interface {
	Add(mesh *Mesh)
	Remove(mesh *Mesh)
}

// MeshScene is a plain ordered list of meshes.
type MeshScene struct {
	meshes []*Mesh
}

func (s *MeshScene) Add(mesh *Mesh) {
	for _, m := range s.meshes {
		if m == mesh {
			return
		}
	}
	s.meshes = append(s.meshes, mesh)
}

func (s *MeshScene) Remove(mesh *Mesh) {
	for i, m := range s.meshes {
		if m == mesh {
			s.meshes = append(s.meshes[:i], s.meshes[i+1:]...)
			return
		}
	}
}

// Meshes returns the meshes in insertion order.
func (s *MeshScene) Meshes() []*Mesh { return s.meshes }
