package game

import (
	"log/slog"
)

// flushTelemetry closes the stats window when it is due.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	dists := g.particles.Distances(g.snap.Mode, g.collector.Buffer())
	stats := g.collector.Flush(g.tick, g.snap.Mode, dists, g.ornaments.Count())
	perfStats := g.perf.Stats()

	if g.logStats {
		stats.LogStats()
		slog.Info("perf", "stats", perfStats)
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
