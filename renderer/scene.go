// Package renderer draws the particle tree and photo ornaments with raylib.
package renderer

import (
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/tinsel/camera"
	"github.com/pthm-cable/tinsel/components"
	"github.com/pthm-cable/tinsel/systems"
)

// Palette
var (
	Background = rl.Color{R: 5, G: 16, B: 10, A: 255}
	Gold       = rl.Color{R: 255, G: 215, B: 0, A: 255}
	Emerald    = rl.Color{R: 0, G: 64, B: 48, A: 255}
)

// Scene owns the GPU resources for one window. Must be created after the
// raylib window is initialized.
type Scene struct {
	particles *ParticleRenderer
	ornaments *OrnamentRenderer
	sparkles  *SparkleRenderer
}

// NewScene creates the scene renderers.
func NewScene(particleSize float32) *Scene {
	return &Scene{
		particles: NewParticleRenderer(particleSize),
		ornaments: NewOrnamentRenderer(),
		sparkles:  NewSparkleRenderer(300, 20, rand.New(rand.NewSource(1))),
	}
}

// Camera3D converts an orbit camera to a raylib camera.
func Camera3D(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(c.Position()),
		Target:     vec3(c.Target()),
		Up:         rl.Vector3{Y: 1},
		Fovy:       float32(c.Fovy),
		Projection: rl.CameraPerspective,
	}
}

// Draw renders particles and ornaments at time t (seconds). Call between
// BeginDrawing and EndDrawing.
func (s *Scene) Draw(cam rl.Camera3D, t float64, particles []components.ParticleTransform, ornaments []systems.OrnamentView) {
	rl.ClearBackground(Background)
	rl.BeginMode3D(cam)
	s.sparkles.Draw(t)
	s.particles.Draw(particles)
	s.ornaments.Draw(ornaments)
	rl.EndMode3D()
}

// Unload releases GPU resources.
func (s *Scene) Unload() {
	s.particles.Unload()
	s.ornaments.Unload()
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
