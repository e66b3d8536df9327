// Package components defines the ECS components and per-frame transforms
// produced by the simulation.
package components

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/tinsel/store"
)

// ParticleTransform is a particle's rendered pose.
// Rotation holds XYZ Euler angles in radians.
type ParticleTransform struct {
	Position r3.Vec
	Rotation r3.Vec
}

// OrnamentTransform is a photo ornament's rendered pose.
type OrnamentTransform struct {
	Position r3.Vec
	Rotation r3.Vec // XYZ Euler angles
	Scale    float64
}

// Ornament ties an ECS entity to its photo and its stable list index.
type Ornament struct {
	Index int
	Photo store.Photo
}

// EulerQuat converts XYZ Euler angles (applied X, then Y, then Z in the
// object's local frame) to a unit quaternion.
func EulerQuat(e r3.Vec) quat.Number {
	qx := axisQuat(r3.Vec{X: 1}, e.X)
	qy := axisQuat(r3.Vec{Y: 1}, e.Y)
	qz := axisQuat(r3.Vec{Z: 1}, e.Z)
	return quat.Mul(quat.Mul(qx, qy), qz)
}

// AxisAngle decomposes a unit quaternion. The identity maps to the +Y axis
// with zero angle.
func AxisAngle(q quat.Number) (axis r3.Vec, angle float64) {
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	w := math.Min(1, q.Real)
	angle = 2 * math.Acos(w)
	s := math.Sqrt(1 - w*w)
	if s < 1e-9 {
		return r3.Vec{Y: 1}, 0
	}
	return r3.Vec{X: q.Imag / s, Y: q.Jmag / s, Z: q.Kmag / s}, angle
}

func axisQuat(axis r3.Vec, angle float64) quat.Number {
	s, c := math.Sincos(angle / 2)
	return quat.Number{Real: c, Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s}
}

// Rotate applies a unit quaternion to v.
func Rotate(q quat.Number, v r3.Vec) r3.Vec {
	p := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return r3.Vec{X: p.Imag, Y: p.Jmag, Z: p.Kmag}
}
