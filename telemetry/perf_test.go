package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSnapshot)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseParticles)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.PhaseAvg[PhaseSnapshot] <= 0 {
		t.Error("expected snapshot phase to be tracked")
	}
	if stats.PhaseAvg[PhaseParticles] < stats.PhaseAvg[PhaseSnapshot] {
		t.Error("expected particles phase to take at least as long as snapshot")
	}
	if stats.PhaseAvg[PhaseOrnaments] != 0 {
		t.Errorf("expected untouched phase to be zero, got %v", stats.PhaseAvg[PhaseOrnaments])
	}
	if stats.MinTickDuration > stats.AvgTickDuration || stats.AvgTickDuration > stats.MaxTickDuration {
		t.Errorf("expected min <= avg <= max, got %v %v %v",
			stats.MinTickDuration, stats.AvgTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 3; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseParticles)
		time.Sleep(500 * time.Microsecond)
		pc.StartPhase(PhaseTelemetry)
		time.Sleep(100 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	var total float64
	for _, pct := range stats.PhasePct {
		total += pct
	}
	if total < 50 || total > 101 {
		t.Errorf("expected phase percentages to cover most of the tick, got %.1f%%", total)
	}
	if stats.PhasePct[PhaseParticles] <= stats.PhasePct[PhaseTelemetry] {
		t.Errorf("expected particles (%.1f%%) > telemetry (%.1f%%)",
			stats.PhasePct[PhaseParticles], stats.PhasePct[PhaseTelemetry])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(3)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseOrnaments)
		pc.EndTick()
	}

	if pc.filled != 3 {
		t.Errorf("expected window to hold 3 samples, got %d", pc.filled)
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	pc := NewPerfCollector(0)
	stats := pc.Stats()
	if stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("expected zero stats with no samples, got %+v", stats)
	}
	if len(pc.samples) != 60 {
		t.Errorf("expected default window of 60, got %d", len(pc.samples))
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	var s PerfStats
	s.AvgTickDuration = 1500 * time.Microsecond
	s.PhasePct[PhaseSnapshot] = 5
	s.PhasePct[PhaseParticles] = 80
	s.PhasePct[PhaseOrnaments] = 10
	s.PhasePct[PhaseTelemetry] = 5

	row := s.ToCSV(120)
	if row.WindowEnd != 120 || row.AvgTickUS != 1500 {
		t.Errorf("unexpected row %+v", row)
	}
	if row.ParticlesPct != 80 || row.OrnamentsPct != 10 || row.SnapshotPct != 5 || row.TelemetryPct != 5 {
		t.Errorf("phase columns not mapped: %+v", row)
	}
}

func TestPhaseString(t *testing.T) {
	names := map[Phase]string{
		PhaseSnapshot:  "snapshot",
		PhaseParticles: "particles",
		PhaseOrnaments: "ornaments",
		PhaseTelemetry: "telemetry",
		numPhases:      "unknown",
	}
	for ph, want := range names {
		if got := ph.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", ph, got, want)
		}
	}
}
