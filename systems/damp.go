package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Exponential damping toward a target.
//
// Each call shrinks the gap by exp(-2*dt/smoothTime), so splitting a time
// span into more, smaller steps lands on the same value. A gap at or under
// eps snaps to the target. A non-positive dt changes nothing.

// decay returns the fraction of the gap left after dt.
func decay(smoothTime, dt float64) float64 {
	if smoothTime < 1e-4 {
		smoothTime = 1e-4
	}
	return math.Exp(-2 * dt / smoothTime)
}

// Damp moves current toward target.
func Damp(current, target, smoothTime, dt, eps float64) float64 {
	if dt <= 0 {
		return current
	}
	if math.Abs(current-target) <= eps {
		return target
	}
	return target + (current-target)*decay(smoothTime, dt)
}

// Damp3 moves a point toward target along the straight line between them.
func Damp3(current, target r3.Vec, smoothTime, dt, eps float64) r3.Vec {
	if dt <= 0 {
		return current
	}
	gap := r3.Sub(current, target)
	if r3.Norm(gap) <= eps {
		return target
	}
	return r3.Add(target, r3.Scale(decay(smoothTime, dt), gap))
}

// DampAngle moves an angle toward target along the shorter arc. The result
// is not wrapped; it stays continuous with current.
func DampAngle(current, target, smoothTime, dt, eps float64) float64 {
	if dt <= 0 {
		return current
	}
	delta := wrapAngle(target - current)
	if math.Abs(delta) <= eps {
		return current + delta
	}
	return current + delta*(1-decay(smoothTime, dt))
}

// DampEuler applies DampAngle per axis.
func DampEuler(current, target r3.Vec, smoothTime, dt, eps float64) r3.Vec {
	return r3.Vec{
		X: DampAngle(current.X, target.X, smoothTime, dt, eps),
		Y: DampAngle(current.Y, target.Y, smoothTime, dt, eps),
		Z: DampAngle(current.Z, target.Z, smoothTime, dt, eps),
	}
}

// wrapAngle maps a to [-pi, pi].
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
