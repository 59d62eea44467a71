// Package debug draws the F8 overlay: frame stats, scroll state and the
// boxes of every text proxy.
package debug

import (
	"fmt"
	"math"
	"runtime"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scrollgl/internal/dom"
	"scrollgl/internal/textproxy"
)

// Frame is what the host knows about the current frame.
type Frame struct {
	ScrollOffset   float64
	ScrollTarget   float64
	ScrollVelocity float64
	SmoothVelocity float64
	ScrollLimit    float64
	PixelRatio     float64
	Tweens         int
	Particles      int
}

type DebugOverlay struct {
	ShowBoundingBoxes bool

	fontHeight   int
	lineHeight   int
	sidebarWidth int
	monitorH     int

	prevLeftMouseButton bool
	clicked             bool

	lastUpdateTime time.Time
	frameCount     int
	fps            float64
	memStats       runtime.MemStats
}

func NewDebugOverlay() *DebugOverlay {
	d := &DebugOverlay{
		ShowBoundingBoxes: true,
		monitorH:          rl.GetMonitorHeight(rl.GetCurrentMonitor()),
		lastUpdateTime:    time.Now(),
	}
	d.updateLayout()
	return d
}

func (d *DebugOverlay) updateLayout() {
	scale := math.Max(1.0, float64(d.monitorH)/1080.0)
	d.fontHeight = int(16 * scale)
	d.lineHeight = int(22 * scale)
	d.sidebarWidth = int(340 * scale)
}

func (d *DebugOverlay) Update() {
	d.frameCount++
	now := time.Now()
	if now.Sub(d.lastUpdateTime) >= time.Second {
		d.fps = float64(d.frameCount) / now.Sub(d.lastUpdateTime).Seconds()
		d.frameCount = 0
		d.lastUpdateTime = now
		runtime.ReadMemStats(&d.memStats)
	}

	leftPressed := rl.IsMouseButtonDown(rl.MouseLeftButton)
	d.clicked = leftPressed && !d.prevLeftMouseButton
	d.prevLeftMouseButton = leftPressed

	if d.clicked {
		mPos := rl.GetMousePosition()
		toggle := d.getBoundingBoxToggleRect()
		if rl.CheckCollisionPointRec(mPos, toggle) {
			d.ShowBoundingBoxes = !d.ShowBoundingBoxes
		}
	}
}

// Draw renders the sidebar and, when enabled, the proxy boxes.
func (d *DebugOverlay) Draw(frame Frame, proxies []*textproxy.Proxy, doc dom.DOM) {
	if d.ShowBoundingBoxes {
		d.drawProxyBoundingBoxes(proxies, doc)
	}

	lines := []string{
		fmt.Sprintf("FPS: %.0f", d.fps),
		fmt.Sprintf("Heap: %.1f MB", float64(d.memStats.HeapAlloc)/1024/1024),
		fmt.Sprintf("Pixel ratio: %.2f", frame.PixelRatio),
		fmt.Sprintf("Scroll: %.1f / %.1f (target %.1f)", frame.ScrollOffset, frame.ScrollLimit, frame.ScrollTarget),
		fmt.Sprintf("Velocity: %.2f (smoothed %.2f)", frame.ScrollVelocity, frame.SmoothVelocity),
		fmt.Sprintf("Tweens: %d", frame.Tweens),
		fmt.Sprintf("Proxies: %d  Particles: %d", len(proxies), frame.Particles),
	}
	counts := map[textproxy.Phase]int{}
	for _, p := range proxies {
		counts[p.Phase()]++
	}
	lines = append(lines, fmt.Sprintf("Hidden %d  Appearing %d  Visible %d  Disappearing %d",
		counts[textproxy.Hidden], counts[textproxy.Appearing], counts[textproxy.Visible], counts[textproxy.Disappearing]))

	height := int32(d.lineHeight*(len(lines)+1) + 40)
	rl.DrawRectangle(0, 0, int32(d.sidebarWidth), height, rl.NewColor(0, 0, 0, 200))
	d.drawBoundingBoxToggle()

	y := int32(40)
	for _, line := range lines {
		d.DrawText(line, 10, y, int32(d.fontHeight), rl.White)
		y += int32(d.lineHeight)
	}
}

func (d *DebugOverlay) DrawText(text string, x, y, size int32, color rl.Color) {
	rl.DrawText(text, x, y, size, color)
}
