// Package main searches for the particle smoothing time that makes the tree
// settle in a chosen number of seconds after a mode change.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/tinsel/config"
	"github.com/pthm-cable/tinsel/field"
	"github.com/pthm-cable/tinsel/game"
	"github.com/pthm-cable/tinsel/store"
	"github.com/pthm-cable/tinsel/systems"
	"github.com/pthm-cable/tinsel/telemetry"
)

const (
	minSmoothTime = 0.01
	maxSmoothTime = 5.0
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	target := flag.Float64("target", 1.5, "Desired settle time in seconds")
	fraction := flag.Float64("fraction", 0.9, "Fraction of particles that must settle")
	maxEvals := flag.Int("max-evals", 60, "Maximum number of evaluations")
	seed := flag.Int64("seed", 42, "RNG seed for the exploded field")
	outputDir := flag.String("output", "", "Output directory for the tuned config")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	fields, err := field.Generate(cfg.Particles.Count, rand.New(rand.NewSource(*seed)), game.FieldParams(cfg))
	if err != nil {
		log.Fatalf("generating fields: %v", err)
	}

	base := game.ParticleParams(cfg)
	maxTicks := int(10 * *target / cfg.Derived.DT)
	evals := 0

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			p := base
			p.SmoothTime = clamp(x[0])
			settle := settleTime(fields, p, cfg.Derived.DT, cfg.Telemetry.ConvergenceEpsilon, *fraction, maxTicks)
			evals++
			fmt.Printf("Eval %d: smooth_time=%.4f settle=%.3fs\n", evals, p.SmoothTime, settle)
			d := settle - *target
			return d * d
		},
	}

	result, err := optimize.Minimize(problem, []float64{base.SmoothTime}, &optimize.Settings{
		FuncEvaluations: *maxEvals,
	}, &optimize.NelderMead{})
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if result == nil {
		log.Fatal("no result")
	}

	best := clamp(result.X[0])
	fmt.Printf("\nBest smooth_time: %.4f (error %.4fs^2, %d evaluations)\n", best, result.F, evals)

	tuned := tunedConfig(cfg, best)

	out := filepath.Join(*outputDir, "tuned_config.yaml")
	if err := tuned.WriteYAML(out); err != nil {
		log.Fatalf("failed to write tuned config: %v", err)
	}
	fmt.Printf("Tuned config saved to: %s\n", out)
}

// tunedConfig returns a copy of cfg using smoothTime for both particles and
// ornaments.
func tunedConfig(cfg *config.Config, smoothTime float64) *config.Config {
	tuned := *cfg
	tuned.Motion.ParticleSmoothTime = smoothTime
	tuned.Motion.OrnamentSmoothTime = smoothTime
	return &tuned
}

// settleTime runs a tree-to-exploded transition and returns the seconds until
// the given fraction of particles is within eps of its target.
func settleTime(f *field.Fields, p systems.ParticleParams, dt, eps, fraction float64, maxTicks int) float64 {
	sys := systems.NewParticleSystem(f, store.ModeTree, p)
	dists := make([]float64, 0, f.Len())

	for tick := 1; tick <= maxTicks; tick++ {
		sys.Update(store.ModeExploded, dt)
		dists = sys.Distances(store.ModeExploded, dists[:0])
		if telemetry.ComputeDistanceStats(dists, eps).Settled >= fraction {
			return float64(tick) * dt
		}
	}
	return float64(maxTicks) * dt
}

func clamp(x float64) float64 {
	return math.Min(math.Max(x, minSmoothTime), maxSmoothTime)
}
