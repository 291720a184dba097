// Package game implements the main loop: input dispatch by focus,
// camera movement and world rendering.
package game

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/slipgate-dev/slipgate/internal/config"
	"github.com/slipgate-dev/slipgate/internal/engine/brush"
	"github.com/slipgate-dev/slipgate/internal/engine/camera"
	"github.com/slipgate-dev/slipgate/internal/engine/input"
	"github.com/slipgate-dev/slipgate/internal/engine/renderer"
	"github.com/slipgate-dev/slipgate/internal/engine/window"
	"github.com/slipgate-dev/slipgate/internal/logger"
	"github.com/slipgate-dev/slipgate/pkg/bsp"
	"github.com/slipgate-dev/slipgate/pkg/math"
	"github.com/slipgate-dev/slipgate/pkg/palette"
)

// Game is the main game instance.
type Game struct {
	cfg     *config.Config
	running bool
	focus   Focus

	window   *window.Window
	frame    *renderer.Renderer
	world    *brush.Renderer
	input    *input.Input
	camera   *camera.Camera
	data     *bsp.Data
	styles   *StyleSet
	levelAge time.Duration
}

// New creates a new game instance. The level is built in code; a map
// loader would slot in where DemoLevel is called.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	g := &Game{
		cfg:   cfg,
		focus: FocusGame,
	}

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      "Slipgate",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Frame renderer initializes OpenGL; must come before any GL call.
	dw, dh := g.window.DrawableSize()
	g.frame, err = renderer.New(renderer.Config{Width: dw, Height: dh})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.data = DemoLevel()
	g.world, err = brush.New(g.data, &g.data.Models[0], palette.Default())
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to build level renderer: %w", err)
	}

	g.input = input.New()
	g.styles = NewStyleSet()

	g.camera = camera.New(cfg.Graphics.Width, cfg.Graphics.Height, cfg.Game.FOV)
	g.camera.Origin = math.Vec3{X: 48, Y: 48, Z: 64}
	g.camera.Angles = math.Vec3{Y: 45} // face the room center

	g.window.CaptureMouse(g.focus.CapturesMouse())

	logger.Info("game initialized",
		zap.Int("faces", len(g.data.Faces)),
		zap.Int("textures", len(g.data.Textures)),
	)
	return g, nil
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	logger.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now
		g.levelAge = now.Sub(start)

		// 1. Process input
		if g.input.Update() {
			break
		}
		g.handleEvents()
		if !g.running {
			break
		}
		if g.focus == FocusGame {
			g.moveCamera(dt)
		}

		// 2. Render
		g.frame.Begin()
		err := g.world.Render(g.levelAge, g.camera, math.Vec3{}, math.Vec3{}, g.styles.Values(g.levelAge))
		if err != nil {
			logger.Error("frame aborted", zap.Error(err))
			return fmt.Errorf("render error: %w", err)
		}

		// 3. Present
		g.window.SwapBuffers()

		frameCount++
		if now.Sub(fpsTimer) >= time.Second {
			if g.cfg.Game.ShowFPS {
				g.window.SetTitle(fmt.Sprintf("Slipgate - %d fps", frameCount))
			}
			logger.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = now
		}
	}

	return nil
}

// handleEvents dispatches pumped events according to the current focus.
func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventQuit:
			g.running = false

		case input.EventWindowResize:
			g.frame.Resize(event.Width, event.Height)
			g.camera.SetViewport(event.Width, event.Height)

		case input.EventKeyDown:
			g.handleKey(event.Key)

		case input.EventMouseMove:
			if g.focus == FocusGame {
				g.mouseLook(event.RelX, event.RelY)
			}
		}
	}
}

// handleKey processes a single key press with focus transitions.
func (g *Game) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		// From the menu, a second escape quits.
		if g.focus == FocusMenu {
			g.running = false
			return
		}
		g.setFocus(g.focus.ToggleMenu())

	case sdl.SCANCODE_GRAVE:
		g.setFocus(g.focus.ToggleConsole())
	}
}

// setFocus switches the input focus and mouse capture together.
func (g *Game) setFocus(f Focus) {
	if f == g.focus {
		return
	}
	logger.Debug("focus changed",
		zap.String("from", g.focus.String()),
		zap.String("to", f.String()),
	)
	g.focus = f
	g.window.CaptureMouse(f.CapturesMouse())
}

// mouseLook applies relative mouse motion to the camera angles.
func (g *Game) mouseLook(relX, relY int) {
	sens := g.cfg.Game.Sensitivity
	g.camera.Angles.Y -= float32(relX) * sens
	g.camera.Angles.X += float32(relY) * sens
	if g.camera.Angles.X > 89 {
		g.camera.Angles.X = 89
	}
	if g.camera.Angles.X < -89 {
		g.camera.Angles.X = -89
	}
}

// moveCamera applies held movement keys in map coordinates
// (x forward, y left, z up).
func (g *Game) moveCamera(dt float32) {
	pitch := float64(g.camera.Angles.X) * gomath.Pi / 180
	yaw := float64(g.camera.Angles.Y) * gomath.Pi / 180

	forward := math.Vec3{
		X: float32(gomath.Cos(pitch) * gomath.Cos(yaw)),
		Y: float32(gomath.Cos(pitch) * gomath.Sin(yaw)),
		Z: float32(-gomath.Sin(pitch)),
	}
	right := math.Vec3{
		X: float32(gomath.Sin(yaw)),
		Y: float32(-gomath.Cos(yaw)),
	}

	var move math.Vec3
	if g.input.IsKeyHeld(sdl.SCANCODE_W) {
		move = move.Add(forward)
	}
	if g.input.IsKeyHeld(sdl.SCANCODE_S) {
		move = move.Sub(forward)
	}
	if g.input.IsKeyHeld(sdl.SCANCODE_D) {
		move = move.Add(right)
	}
	if g.input.IsKeyHeld(sdl.SCANCODE_A) {
		move = move.Sub(right)
	}
	if g.input.IsKeyHeld(sdl.SCANCODE_SPACE) {
		move.Z++
	}
	if g.input.IsKeyHeld(sdl.SCANCODE_C) {
		move.Z--
	}

	if move.Length() == 0 {
		return
	}
	step := move.Normalize().Scale(g.cfg.Game.MoveSpeed * dt)
	g.camera.Origin = g.camera.Origin.Add(step)
}

// Close cleans up game resources.
func (g *Game) Close() {
	logger.Info("closing game")
	if g.world != nil {
		g.world.Destroy()
	}
	if g.window != nil {
		g.window.Close()
	}
}
