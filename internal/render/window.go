// Package render is the raylib backend: window metrics, the ping-pong
// composer, GPU text meshes and the page layer.
package render

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scrollgl/internal/utils"
)

// Window adapts the raylib window to the viewport's Display and Surface.
type Window struct {
	ratio float64
	x11   bool
}

func NewWindow() *Window {
	w := &Window{ratio: 1}
	if err := utils.InitX11(); err != nil {
		utils.Debug("Render: no X11 connection, using raylib DPI scale: %v", err)
	} else {
		w.x11 = true
	}
	return w
}

func (w *Window) ScreenSize() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

func (w *Window) DevicePixelRatio() float64 {
	if w.x11 {
		r, err := utils.X11DevicePixelRatio()
		if err == nil {
			return r
		}
		utils.Debug("Render: X11 pixel ratio: %v", err)
	}
	return float64(rl.GetWindowScaleDPI().X)
}

// SetSize resizes the window only when it differs from the current size, so
// a resize reported by raylib does not bounce back into it.
func (w *Window) SetSize(width, height float64) {
	wi, hi := int(math.Round(width)), int(math.Round(height))
	if wi == rl.GetScreenWidth() && hi == rl.GetScreenHeight() {
		return
	}
	rl.SetWindowSize(wi, hi)
}

func (w *Window) SetPixelRatio(ratio float64) { w.ratio = ratio }

func (w *Window) PixelRatio() float64 { return w.ratio }

func (w *Window) Close() {
	if w.x11 {
		utils.CloseX11()
		w.x11 = false
	}
}
