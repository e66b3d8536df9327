package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tinsel/gesture"
	"github.com/pthm-cable/tinsel/store"
	"github.com/pthm-cable/tinsel/telemetry"
)

const (
	orbitSpeed = 0.005 // Radians per pixel dragged
	zoomStep   = 1.1
)

// handleInput processes keyboard, mouse and file drop input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.requestMode(g.snap.Mode.Toggle())
	}

	// Keyboard stands in for the hand tracker: holding a key shows that
	// gesture on both hands.
	var hands []gesture.Gesture
	rules := GestureRules(g.cfg)
	if rl.IsKeyDown(rl.KeyO) {
		hands = append(hands, gesture.Hands(rules.ExplodeLabel, rules.MinHands)...)
	}
	if rl.IsKeyDown(rl.KeyF) {
		hands = append(hands, gesture.Hands(rules.AssembleLabel, rules.MinHands)...)
	}
	if mode, ok := gesture.Interpret(hands, rules); ok {
		g.requestMode(mode)
	}

	g.handleCameraInput()
	g.handleDroppedFiles()
}

// handleCameraInput orbits on left drag and zooms on wheel.
func (g *Game) handleCameraInput() {
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		g.cam.Orbit(-float64(d.X)*orbitSpeed, -float64(d.Y)*orbitSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel > 0 {
		g.cam.ZoomBy(zoomStep)
	} else if wheel < 0 {
		g.cam.ZoomBy(1 / zoomStep)
	}
}

// handleDroppedFiles imports files dropped onto the window.
func (g *Game) handleDroppedFiles() {
	if !rl.IsFileDropped() {
		return
	}
	paths := rl.LoadDroppedFiles()
	rl.UnloadDroppedFiles()
	g.ImportPhotos(paths...)
}

// requestMode writes a mode the way a producer would.
func (g *Game) requestMode(m store.Mode) {
	if err := g.store.SetMode(m); err != nil {
		g.collector.Record(telemetry.Event{Type: telemetry.EventRejected, Mode: m})
		slog.Warn("mode request rejected", "mode", m, "error", err)
	}
}
