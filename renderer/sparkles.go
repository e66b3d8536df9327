package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SparkleRenderer draws twinkling gold motes around the tree.
type SparkleRenderer struct {
	pos   []rl.Vector3
	phase []float64
	speed []float64
}

// NewSparkleRenderer scatters n motes in a box of the given half extent.
func NewSparkleRenderer(n int, extent float32, rng *rand.Rand) *SparkleRenderer {
	s := &SparkleRenderer{
		pos:   make([]rl.Vector3, n),
		phase: make([]float64, n),
		speed: make([]float64, n),
	}
	for i := range n {
		s.pos[i] = rl.Vector3{
			X: (rng.Float32()*2 - 1) * extent,
			Y: (rng.Float32()*2 - 1) * extent,
			Z: (rng.Float32()*2 - 1) * extent,
		}
		s.phase[i] = rng.Float64() * 2 * math.Pi
		s.speed[i] = 1 + rng.Float64()*3
	}
	return s
}

// Draw renders the motes at time t (seconds).
func (s *SparkleRenderer) Draw(t float64) {
	for i, p := range s.pos {
		b := 0.5 + 0.5*math.Sin(t*s.speed[i]+s.phase[i])
		c := Gold
		c.A = uint8(60 + 195*b)
		rl.DrawCubeV(p, rl.Vector3{X: 0.05, Y: 0.05, Z: 0.05}, c)
	}
}
