package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tinsel/components"
)

// ParticleRenderer draws each particle as a small spinning gold cube.
type ParticleRenderer struct {
	model rl.Model
	size  float32
}

// NewParticleRenderer creates a particle renderer.
func NewParticleRenderer(size float32) *ParticleRenderer {
	mesh := rl.GenMeshCube(size, size, size)
	return &ParticleRenderer{
		model: rl.LoadModelFromMesh(mesh),
		size:  size,
	}
}

// Draw renders all particles.
func (r *ParticleRenderer) Draw(particles []components.ParticleTransform) {
	one := rl.Vector3{X: 1, Y: 1, Z: 1}
	for i := range particles {
		p := &particles[i]
		axis, angle := components.AxisAngle(components.EulerQuat(p.Rotation))

		// Every seventh particle is emerald to break up the gold
		color := Gold
		if i%7 == 0 {
			color = Emerald
		}
		rl.DrawModelEx(r.model, vec3(p.Position), vec3(axis), float32(angle*180/math.Pi), one, color)
	}
}

// Unload releases the cube model.
func (r *ParticleRenderer) Unload() {
	rl.UnloadModel(r.model)
}
