// Package field generates the two particle position fields the tree morphs
// between: an ascending spiral cone and a uniformly filled sphere.
package field

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/tinsel/store"
)

// ErrInvalidCount is returned when the particle count is not positive.
var ErrInvalidCount = errors.New("field: particle count must be positive")

// Params shapes both fields.
type Params struct {
	AngleStep    float64 // Radians between consecutive particles on the spiral
	Height       float64 // Cone height
	Taper        float64 // radius = (Height - y) * Taper
	Offset       float64 // Vertical recentering of the cone
	SphereRadius float64
}

// DefaultParams returns the canonical tree shape.
func DefaultParams() Params {
	return Params{
		AngleStep:    0.5,
		Height:       15,
		Taper:        0.4,
		Offset:       7,
		SphereRadius: 15,
	}
}

// Fields holds the tree and exploded positions. Index i refers to the same
// particle in both slices. Fields are never modified after Generate returns.
type Fields struct {
	tree     []r3.Vec
	exploded []r3.Vec
}

// Generate builds both fields for n particles. The tree field is
// deterministic; the exploded field draws from rng.
func Generate(n int, rng *rand.Rand, p Params) (*Fields, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
	}
	return &Fields{
		tree:     TreeField(n, p),
		exploded: ExplodedField(n, rng, p.SphereRadius),
	}, nil
}

// TreeField places n points on a spiral cone that narrows as it rises.
func TreeField(n int, p Params) []r3.Vec {
	out := make([]r3.Vec, n)
	for i := range out {
		theta := float64(i) * p.AngleStep
		y := float64(i) / float64(n) * p.Height
		radius := (p.Height - y) * p.Taper
		out[i] = r3.Vec{
			X: math.Cos(theta) * radius,
			Y: y - p.Offset,
			Z: math.Sin(theta) * radius,
		}
	}
	return out
}

// ExplodedField samples n points uniformly by volume inside a sphere.
// The cube root on the radius keeps density constant toward the shell.
func ExplodedField(n int, rng *rand.Rand, radius float64) []r3.Vec {
	out := make([]r3.Vec, n)
	for i := range out {
		r := radius * math.Cbrt(rng.Float64())
		phi := math.Acos(2*rng.Float64() - 1)
		theta := 2 * math.Pi * rng.Float64()
		out[i] = r3.Vec{
			X: r * math.Sin(phi) * math.Cos(theta),
			Y: r * math.Sin(phi) * math.Sin(theta),
			Z: r * math.Cos(phi),
		}
	}
	return out
}

// Len returns the particle count.
func (f *Fields) Len() int {
	return len(f.tree)
}

// Tree returns the tree field. Callers must not modify it.
func (f *Fields) Tree() []r3.Vec {
	return f.tree
}

// Exploded returns the exploded field. Callers must not modify it.
func (f *Fields) Exploded() []r3.Vec {
	return f.exploded
}

// For returns the field that is active in mode.
func (f *Fields) For(mode store.Mode) []r3.Vec {
	if mode == store.ModeExploded {
		return f.exploded
	}
	return f.tree
}

// Target returns particle i's target in mode. ok is false when the index
// has no entry.
func (f *Fields) Target(mode store.Mode, i int) (r3.Vec, bool) {
	pts := f.For(mode)
	if i < 0 || i >= len(pts) {
		return r3.Vec{}, false
	}
	return pts[i], true
}
