package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tinsel/camera"
	"github.com/pthm-cable/tinsel/renderer"
	"github.com/pthm-cable/tinsel/ui"
)

const title = "GRAND LUXURY CHRISTMAS"

// initGraphics creates the camera, scene and HUD. The raylib window must
// already be open.
func (g *Game) initGraphics() {
	c := g.cfg.Camera
	g.cam = camera.New(camera.Options{
		Distance:    c.Distance,
		MinDistance: c.MinDistance,
		MaxDistance: c.MaxDistance,
		MaxPolar:    c.MaxPolar,
		Fovy:        c.Fovy,
		FPS:         g.cfg.Screen.TargetFPS,
		Frequency:   c.Frequency,
		Damping:     c.Damping,
	})
	g.scene = renderer.NewScene(float32(g.cfg.Particles.Size))
	g.hud = ui.NewHUD()
}

func (g *Game) unloadGraphics() {
	if g.scene != nil {
		g.scene.Unload()
		g.scene = nil
	}
}

// Update handles input and advances the simulation by the real frame time.
func (g *Game) Update() {
	g.handleInput()
	g.cam.Update()

	dt := float64(rl.GetFrameTime())
	if g.paused {
		dt = 0
	}
	g.Step(dt)
}

// Draw renders the current frame.
func (g *Game) Draw() {
	g.perf.RecordFrame()
	frame := g.Frame()

	rl.BeginDrawing()
	g.scene.Draw(renderer.Camera3D(g.cam), rl.GetTime(), frame.Particles, frame.Ornaments)

	if mode, ok := g.hud.Draw(ui.HUDData{
		Title:        title,
		Mode:         frame.Mode,
		Photos:       len(frame.Ornaments),
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		ScreenWidth:  int32(rl.GetScreenWidth()),
		ScreenHeight: int32(rl.GetScreenHeight()),
	}); ok {
		g.requestMode(mode)
	}
	rl.EndDrawing()
}
