package telemetry

import (
	"sync"
	"sync/atomic"

	"github.com/pthm-cable/tinsel/store"
)

// Collector accumulates events within time windows and produces WindowStats.
// Record may be called from producer goroutines; Flush runs on the frame loop.
type Collector struct {
	windowDurationTicks int32
	dt                  float64
	eps                 float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	modeChanges   atomic.Int64
	photosAdded   atomic.Int64
	rejected      atomic.Int64
	gestureTicks  atomic.Int64
	gestureErrors atomic.Int64

	dists []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick
// eps: distance under which a particle counts as settled
func NewCollector(windowDurationSec, dt, eps float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		eps:                 eps,
	}
}

// Record counts an event.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventModeChange:
		c.modeChanges.Add(1)
	case EventPhotoAdded:
		c.photosAdded.Add(1)
	case EventRejected:
		c.rejected.Add(1)
	case EventGestureTick:
		c.gestureTicks.Add(1)
	case EventGestureError:
		c.gestureErrors.Add(1)
	}
}

// OnChange adapts the collector to store notifications. It compares each
// snapshot with the previous one, starting from initial, to tell mode
// changes from photo additions.
func (c *Collector) OnChange(initial store.Snapshot) store.Listener {
	var mu sync.Mutex
	last := initial
	return func(s store.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		if s.Version <= last.Version {
			return
		}
		if s.Mode != last.Mode {
			c.Record(NewModeChangeEvent(s.Mode))
		}
		for i := len(last.Photos); i < len(s.Photos); i++ {
			c.Record(NewPhotoAddedEvent(s.Photos[i].ID))
		}
		last = s
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Buffer returns a reusable, empty slice for distance sampling.
func (c *Collector) Buffer() []float64 {
	return c.dists[:0]
}

// Flush produces a WindowStats and resets counters for the next window.
// dists holds each particle's distance to its target and is sorted in place.
func (c *Collector) Flush(currentTick int32, mode store.Mode, dists []float64, ornaments int) WindowStats {
	d := ComputeDistanceStats(dists, c.eps)
	c.dists = dists

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Mode:      mode.String(),
		Particles: len(dists),
		Ornaments: ornaments,

		ModeChanges:   int(c.modeChanges.Swap(0)),
		PhotosAdded:   int(c.photosAdded.Swap(0)),
		Rejected:      int(c.rejected.Swap(0)),
		GestureTicks:  int(c.gestureTicks.Swap(0)),
		GestureErrors: int(c.gestureErrors.Swap(0)),

		DistMean: d.Mean,
		DistP50:  d.P50,
		DistP90:  d.P90,
		DistMax:  d.Max,
		Settled:  d.Settled,
	}

	c.windowStartTick = currentTick
	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
