package main

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scrollgl/internal/camera"
	"scrollgl/internal/config"
	"scrollgl/internal/debug"
	"scrollgl/internal/dom"
	"scrollgl/internal/page"
	"scrollgl/internal/particle"
	"scrollgl/internal/physac"
	"scrollgl/internal/pipeline"
	"scrollgl/internal/render"
	"scrollgl/internal/scroll"
	"scrollgl/internal/textproxy"
	"scrollgl/internal/tween"
	"scrollgl/internal/utils"
	"scrollgl/internal/viewport"
	"scrollgl/internal/visibility"
)

const (
	wheelStep    = 120.0
	keyboardStep = 80.0
)

type App struct {
	cfg config.Config

	window   *render.Window
	state    *viewport.State
	rig      *camera.Rig
	scroller *scroll.Smooth
	page     *page.Page

	meshes  *textproxy.MeshScene
	track   *tween.Track
	gate    *visibility.Gate
	proxies *textproxy.Set

	fontCache *render.FontCache
	text      *render.TextMeshes
	composer  *render.Composer
	pipeline  *pipeline.Pipeline
	world     *physac.World
	particles *particle.System
	layer     *render.PageLayer

	debugOverlay  *debug.DebugOverlay
	lastFrameTime time.Time
}

func NewApp(cfg config.Config, a *assets) (*App, error) {
	rl.SetTraceLogCallback(utils.RaylibLogCallback)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	title := a.doc.Title
	if title == "" {
		title = "scrollgl"
	}
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), title)
	rl.SetTargetFPS(int32(cfg.FPS))

	app := &App{
		cfg:           cfg,
		window:        render.NewWindow(),
		scroller:      scroll.NewSmooth(cfg.Lerp),
		meshes:        &textproxy.MeshScene{},
		track:         tween.NewTrack(),
		lastFrameTime: time.Now(),
	}

	app.state = viewport.New(app.window, viewport.WithSurface(app.window))
	app.state.Init()
	app.rig = camera.New(app.state)

	app.page = page.New(a.doc, a.fonts, app.scroller)
	app.page.Layout(app.state.ScreenWidth, app.state.ScreenHeight)
	app.scroller.SetLimit(app.page.ScrollLimit())

	app.gate = visibility.NewGate(func() visibility.Rect {
		return visibility.Rect{Width: app.state.ScreenWidth, Height: app.state.ScreenHeight}
	})

	blocks := app.page.QueryAll("data-animation", "webgl-text")
	nodes := make([]dom.Node, len(blocks))
	for i, b := range blocks {
		nodes[i] = b
	}
	app.proxies = textproxy.NewSet(nodes, textproxy.Deps{
		DOM:      app.page,
		Viewport: app.state,
		Scroll:   app.scroller,
		Fonts:    a.fonts.Map(),
		Scene:    app.meshes,
		Track:    app.track,
		Gate:     app.gate,
	}, cfg.ProxyOptions()...)
	utils.Info("Text proxies: %d", app.proxies.Len())

	app.fontCache = render.NewFontCache(a.fonts)
	app.text = render.NewTextMeshes(app.meshes, a.fonts, app.fontCache, app.window.PixelRatio)
	app.composer = render.NewComposer(app.text)

	var err error
	app.pipeline, err = pipeline.New(app.state, app.rig, app.scroller, app.composer)
	if err != nil {
		rl.CloseWindow()
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	if cfg.Particles > 0 {
		app.world = physac.NewWorld()
		app.particles = particle.NewSystem(particle.Options{
			Count:  cfg.Particles,
			Width:  app.state.ScreenWidth,
			Height: app.state.ScreenHeight,
		}, app.world, render.Colliders(app.page))
	}
	app.layer = render.NewPageLayer(app.page, app.fontCache, app.particles)
	app.debugOverlay = debug.NewDebugOverlay()

	return app, nil
}

func (app *App) Run() {
	for !rl.WindowShouldClose() {
		app.Update()

		rl.BeginDrawing()
		app.Draw()
		rl.EndDrawing()
	}
}

func (app *App) Update() {
	currentTime := time.Now()
	deltaTime := currentTime.Sub(app.lastFrameTime).Seconds()
	app.lastFrameTime = currentTime

	if rl.IsWindowResized() {
		app.onResize()
	}
	app.handleInput()

	app.scroller.Advance(deltaTime)
	app.gate.Check()
	app.track.Advance(deltaTime)
	app.state.Update()
	app.proxies.Update()
	if app.particles != nil {
		app.particles.Step()
	}

	if utils.ShowDebugUI {
		app.debugOverlay.Update()
	}
}

func (app *App) handleInput() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.scroller.AddDelta(-float64(wheel) * wheelStep)
	}

	switch {
	case rl.IsKeyPressed(rl.KeyF8):
		utils.ShowDebugUI = !utils.ShowDebugUI
	case rl.IsKeyDown(rl.KeyDown):
		app.scroller.AddDelta(keyboardStep)
	case rl.IsKeyDown(rl.KeyUp):
		app.scroller.AddDelta(-keyboardStep)
	case rl.IsKeyPressed(rl.KeyPageDown), rl.IsKeyPressed(rl.KeySpace):
		app.scroller.AddDelta(app.state.ScreenHeight * 0.9)
	case rl.IsKeyPressed(rl.KeyPageUp):
		app.scroller.AddDelta(-app.state.ScreenHeight * 0.9)
	case rl.IsKeyPressed(rl.KeyHome):
		app.scroller.ScrollTo(0, false)
	case rl.IsKeyPressed(rl.KeyEnd):
		app.scroller.ScrollTo(app.scroller.Limit(), false)
	}
}

func (app *App) onResize() {
	app.state.OnResize()
	app.rig.OnResize()
	app.page.Layout(app.state.ScreenWidth, app.state.ScreenHeight)
	app.scroller.SetLimit(app.page.ScrollLimit())
	app.proxies.OnResize()
	app.pipeline.OnResize()
	if app.particles != nil {
		app.particles.Resize(app.state.ScreenWidth, app.state.ScreenHeight)
	}
	utils.Debug("Resized to %.0fx%.0f @%.2f", app.state.ScreenWidth, app.state.ScreenHeight, app.state.PixelRatio)
}

func (app *App) Draw() {
	app.layer.Clear()
	app.layer.Draw(app.state.ScreenWidth, app.state.ScreenHeight)
	app.pipeline.Update()

	if utils.ShowDebugUI {
		particles := 0
		if app.particles != nil {
			particles = len(app.particles.Particles)
		}
		app.debugOverlay.Draw(debug.Frame{
			ScrollOffset:   app.scroller.CurrentOffset(),
			ScrollTarget:   app.scroller.TargetOffset(),
			ScrollVelocity: app.scroller.CurrentVelocity(),
			SmoothVelocity: app.pipeline.Velocity(),
			ScrollLimit:    app.scroller.Limit(),
			PixelRatio:     app.state.PixelRatio,
			Tweens:         app.track.Len(),
			Particles:      particles,
		}, app.proxies.Proxies(), app.page)
	}
}

func (app *App) Close() {
	app.proxies.Destroy()
	app.text.Unload()
	app.composer.Unload()
	app.fontCache.Unload()
	if app.world != nil {
		app.world.Close()
	}
	app.window.Close()
	rl.CloseWindow()
}
