package debug

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scrollgl/internal/dom"
	"scrollgl/internal/textproxy"
)

func (d *DebugOverlay) getBoundingBoxToggleRect() rl.Rectangle {
	return rl.NewRectangle(10, 10, float32(d.sidebarWidth-20), 20)
}

func (d *DebugOverlay) drawBoundingBoxToggle() {
	rect := d.getBoundingBoxToggleRect()

	boxSize := float32(d.fontHeight) * 1.2
	boxX := rect.X
	boxY := rect.Y + (rect.Height-boxSize)/2

	rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxSize), int32(boxSize), rl.White)
	if d.ShowBoundingBoxes {
		rl.DrawRectangle(int32(boxX+2), int32(boxY+2), int32(boxSize-4), int32(boxSize-4), rl.White)
	}

	d.DrawText("Show Bounding Boxes", int32(boxX+boxSize+10), int32(boxY), int32(d.fontHeight), rl.White)
}

func phaseColor(p textproxy.Phase) rl.Color {
	switch p {
	case textproxy.Appearing:
		return rl.NewColor(0, 255, 255, 200)
	case textproxy.Visible:
		return rl.NewColor(0, 255, 0, 200)
	case textproxy.Disappearing:
		return rl.NewColor(255, 255, 0, 200)
	}
	return rl.NewColor(255, 0, 0, 150)
}

// drawProxyBoundingBoxes outlines each proxied element where the page has it
// and marks the mesh anchor point.
func (d *DebugOverlay) drawProxyBoundingBoxes(proxies []*textproxy.Proxy, doc dom.DOM) {
	sw, sh := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())

	for _, p := range proxies {
		r, ok := doc.BoundingClientRect(p.Node())
		if !ok {
			continue
		}
		col := phaseColor(p.Phase())
		rl.DrawRectangleLines(int32(r.Left), int32(r.Top), int32(r.Width), int32(r.Height), col)

		m := p.Mesh()
		ax := m.X + sw/2
		ay := sh/2 - m.Y
		rl.DrawRectangle(int32(ax-2), int32(ay-2), 4, 4, rl.Red)
	}
}
