// Package camera provides an orbit camera around the tree.
package camera

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"gonum.org/v1/gonum/spatial/r3"
)

// minPolar keeps the camera off the pole so the up vector stays defined.
const minPolar = 0.01

// Camera orbits the origin. Azimuth, Polar and Distance are the requested
// values; the rendered values follow them through a spring.
type Camera struct {
	// Requested orbit. Polar is measured from +Y.
	Azimuth, Polar, Distance float64

	// Constraints
	MinDistance, MaxDistance float64
	MaxPolar                 float64

	// Vertical field of view in degrees
	Fovy float64

	spring        harmonica.Spring
	az, azVel     float64
	pol, polVel   float64
	dist, distVel float64
}

// Options configures New.
type Options struct {
	Distance    float64
	MinDistance float64
	MaxDistance float64
	MaxPolar    float64
	Fovy        float64
	FPS         int     // Update rate the spring is tuned for
	Frequency   float64 // Spring angular frequency
	Damping     float64 // Spring damping ratio (1 = critical)
}

// New creates a camera on the +Z axis looking at the origin.
func New(o Options) *Camera {
	if o.FPS <= 0 {
		o.FPS = 60
	}
	if o.MaxPolar <= minPolar {
		o.MaxPolar = math.Pi - minPolar
	}
	if o.MinDistance <= 0 || o.MinDistance > o.Distance {
		o.MinDistance = o.Distance
	}
	if o.MaxDistance < o.Distance {
		o.MaxDistance = o.Distance
	}

	c := &Camera{
		Polar:       math.Pi / 2,
		Distance:    o.Distance,
		MinDistance: o.MinDistance,
		MaxDistance: o.MaxDistance,
		MaxPolar:    o.MaxPolar,
		Fovy:        o.Fovy,
		spring:      harmonica.NewSpring(harmonica.FPS(o.FPS), o.Frequency, o.Damping),
	}
	c.Polar = clamp(c.Polar, minPolar, c.MaxPolar)
	c.Snap()
	return c
}

// Orbit rotates the requested view. Polar is clamped.
func (c *Camera) Orbit(dAzimuth, dPolar float64) {
	c.Azimuth += dAzimuth
	c.Polar = clamp(c.Polar+dPolar, minPolar, c.MaxPolar)
}

// ZoomBy scales the requested distance. factor > 1 moves closer.
func (c *Camera) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance = clamp(c.Distance/factor, c.MinDistance, c.MaxDistance)
}

// Update advances the spring one frame.
func (c *Camera) Update() {
	c.az, c.azVel = c.spring.Update(c.az, c.azVel, c.Azimuth)
	c.pol, c.polVel = c.spring.Update(c.pol, c.polVel, c.Polar)
	c.dist, c.distVel = c.spring.Update(c.dist, c.distVel, c.Distance)
}

// Snap jumps the rendered orbit to the requested one.
func (c *Camera) Snap() {
	c.az, c.pol, c.dist = c.Azimuth, c.Polar, c.Distance
	c.azVel, c.polVel, c.distVel = 0, 0, 0
}

// Position returns the rendered eye position.
func (c *Camera) Position() r3.Vec {
	sp, cp := math.Sincos(c.pol)
	sa, ca := math.Sincos(c.az)
	return r3.Vec{
		X: c.dist * sp * sa,
		Y: c.dist * cp,
		Z: c.dist * sp * ca,
	}
}

// Target returns the point the camera looks at.
func (c *Camera) Target() r3.Vec {
	return r3.Vec{}
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
