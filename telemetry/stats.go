package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// State at window end
	Mode      string `csv:"mode"`
	Particles int    `csv:"particles"`
	Ornaments int    `csv:"ornaments"`

	// Events during window
	ModeChanges   int `csv:"mode_changes"`
	PhotosAdded   int `csv:"photos_added"`
	Rejected      int `csv:"rejected"`
	GestureTicks  int `csv:"gesture_ticks"`
	GestureErrors int `csv:"gesture_errors"`

	// Distance of particles to their current target (sampled at window end)
	DistMean float64 `csv:"dist_mean"`
	DistP50  float64 `csv:"dist_p50"`
	DistP90  float64 `csv:"dist_p90"`
	DistMax  float64 `csv:"dist_max"`
	Settled  float64 `csv:"settled"` // Fraction of particles within the convergence epsilon
}

// DistanceStats summarizes particle-to-target distances.
type DistanceStats struct {
	Mean, P50, P90, Max float64
	Settled             float64
}

// ComputeDistanceStats summarizes dists. dists is sorted in place.
// eps is the distance under which a particle counts as settled.
func ComputeDistanceStats(dists []float64, eps float64) DistanceStats {
	if len(dists) == 0 {
		return DistanceStats{}
	}
	sort.Float64s(dists)

	settled := sort.SearchFloat64s(dists, eps)
	for settled < len(dists) && dists[settled] <= eps {
		settled++
	}

	return DistanceStats{
		Mean:    stat.Mean(dists, nil),
		P50:     stat.Quantile(0.5, stat.Empirical, dists, nil),
		P90:     stat.Quantile(0.9, stat.Empirical, dists, nil),
		Max:     floats.Max(dists),
		Settled: float64(settled) / float64(len(dists)),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("mode", s.Mode),
		slog.Int("particles", s.Particles),
		slog.Int("ornaments", s.Ornaments),
		slog.Int("mode_changes", s.ModeChanges),
		slog.Int("photos_added", s.PhotosAdded),
		slog.Int("rejected", s.Rejected),
		slog.Int("gesture_ticks", s.GestureTicks),
		slog.Int("gesture_errors", s.GestureErrors),
		slog.Float64("dist_mean", s.DistMean),
		slog.Float64("dist_p50", s.DistP50),
		slog.Float64("dist_p90", s.DistP90),
		slog.Float64("dist_max", s.DistMax),
		slog.Float64("settled", s.Settled),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
