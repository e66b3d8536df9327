// Package ui draws the viewer overlay.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tinsel/store"
)

var (
	titleColor = rl.Color{R: 255, G: 215, B: 0, A: 255}
	hintColor  = rl.Color{R: 180, G: 200, B: 190, A: 255}
)

// HUDData holds everything the HUD shows for one frame.
type HUDData struct {
	Title        string
	Mode         store.Mode
	Photos       int
	FPS          int32
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the title, status line, controls hint and mode buttons.
type HUD struct{}

// NewHUD creates a HUD.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD and returns a mode requested by a button press.
func (h *HUD) Draw(data HUDData) (store.Mode, bool) {
	titleSize := int32(32)
	titleW := rl.MeasureText(data.Title, titleSize)
	rl.DrawText(data.Title, (data.ScreenWidth-titleW)/2, 20, titleSize, titleColor)

	status := fmt.Sprintf("Mode: %s | Photos: %d | FPS: %d", modeLabel(data.Mode), data.Photos, data.FPS)
	if data.Paused {
		status += " | PAUSED"
	}
	rl.DrawText(status, 10, 10, 16, rl.LightGray)

	hint := "Open palms: explode | Fists: assemble | Drop images to hang photos"
	hintW := rl.MeasureText(hint, 14)
	rl.DrawText(hint, (data.ScreenWidth-hintW)/2, data.ScreenHeight-60, 14, hintColor)

	controls := "[O] Open palms  [F] Fists  [Space] Toggle  [P] Pause  [Drag] Orbit  [Wheel] Zoom"
	rl.DrawText(controls, 10, data.ScreenHeight-25, 14, rl.Gray)

	x := float32(data.ScreenWidth) - 260
	if gui.Button(rl.Rectangle{X: x, Y: 10, Width: 120, Height: 30}, "Explode") {
		return store.ModeExploded, true
	}
	if gui.Button(rl.Rectangle{X: x + 130, Y: 10, Width: 120, Height: 30}, "Assemble") {
		return store.ModeTree, true
	}
	return data.Mode, false
}

func modeLabel(m store.Mode) string {
	if m == store.ModeExploded {
		return "Exploded"
	}
	return "Tree"
}
