package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/tinsel/components"
	"github.com/pthm-cable/tinsel/field"
	"github.com/pthm-cable/tinsel/store"
)

// ParticleParams controls particle motion.
type ParticleParams struct {
	SmoothTime float64 // Damping time constant in seconds
	Epsilon    float64 // Snap distance
	Spin       r3.Vec  // Angular velocity per axis in rad/s
}

// DefaultParticleParams returns the standard breathing motion.
func DefaultParticleParams() ParticleParams {
	return ParticleParams{
		SmoothTime: 0.4,
		Epsilon:    0.001,
		Spin:       r3.Vec{X: 0.2, Y: 0.5},
	}
}

// Step advances every particle by dt toward its target in mode and writes
// the result to dst, which is grown as needed and returned. dst may alias
// prev. A particle without a target keeps its previous transform.
func Step(dst, prev []components.ParticleTransform, f *field.Fields, mode store.Mode, dt float64, p ParticleParams) []components.ParticleTransform {
	if cap(dst) < len(prev) {
		dst = make([]components.ParticleTransform, len(prev))
	}
	dst = dst[:len(prev)]

	var targets []r3.Vec
	if f != nil {
		targets = f.For(mode)
	}

	for i := range prev {
		t := prev[i]
		if i >= len(targets) {
			dst[i] = t
			continue
		}
		t.Position = Damp3(t.Position, targets[i], p.SmoothTime, dt, p.Epsilon)
		t.Rotation.X += p.Spin.X * dt
		t.Rotation.Y += p.Spin.Y * dt
		t.Rotation.Z += p.Spin.Z * dt
		dst[i] = t
	}
	return dst
}

// ParticleSystem owns the particle transforms.
type ParticleSystem struct {
	fields     *field.Fields
	params     ParticleParams
	transforms []components.ParticleTransform
	scratch    []components.ParticleTransform
}

// NewParticleSystem places every particle on its target for the initial mode.
func NewParticleSystem(f *field.Fields, initial store.Mode, p ParticleParams) *ParticleSystem {
	s := &ParticleSystem{
		fields:     f,
		params:     p,
		transforms: make([]components.ParticleTransform, f.Len()),
		scratch:    make([]components.ParticleTransform, f.Len()),
	}
	for i, pos := range f.For(initial) {
		s.transforms[i].Position = pos
	}
	return s
}

// Update advances all particles by dt.
func (s *ParticleSystem) Update(mode store.Mode, dt float64) {
	s.scratch = Step(s.scratch, s.transforms, s.fields, mode, dt, s.params)
	s.transforms, s.scratch = s.scratch, s.transforms
}

// Transforms returns the current transforms. The slice is reused by the next Update.
func (s *ParticleSystem) Transforms() []components.ParticleTransform {
	return s.transforms
}

// Fields returns the target fields.
func (s *ParticleSystem) Fields() *field.Fields {
	return s.fields
}

// Count returns the number of particles.
func (s *ParticleSystem) Count() int {
	return len(s.transforms)
}

// Distances appends each particle's distance to its target in mode to out.
func (s *ParticleSystem) Distances(mode store.Mode, out []float64) []float64 {
	targets := s.fields.For(mode)
	for i := range s.transforms {
		if i >= len(targets) {
			break
		}
		out = append(out, r3.Norm(r3.Sub(s.transforms[i].Position, targets[i])))
	}
	return out
}
