// Package game runs the frame loop: it reads one store snapshot per frame
// and advances particles and ornaments toward the active mode.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tinsel/camera"
	"github.com/pthm-cable/tinsel/components"
	"github.com/pthm-cable/tinsel/config"
	"github.com/pthm-cable/tinsel/field"
	"github.com/pthm-cable/tinsel/gesture"
	"github.com/pthm-cable/tinsel/renderer"
	"github.com/pthm-cable/tinsel/store"
	"github.com/pthm-cable/tinsel/systems"
	"github.com/pthm-cable/tinsel/telemetry"
	"github.com/pthm-cable/tinsel/ui"
	"github.com/pthm-cable/tinsel/upload"
)

// Options configures a Game.
type Options struct {
	Config    *config.Config // nil = config.Cfg()
	Seed      int64
	LogStats  bool
	OutputDir string
	Headless  bool
}

// Frame is everything a renderer reads for one frame.
type Frame struct {
	Tick      int32
	Mode      store.Mode
	Particles []components.ParticleTransform
	Ornaments []systems.OrnamentView
}

// Game holds the complete visualization state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	world     *ecs.World
	store     *store.Store
	fields    *field.Fields
	particles *systems.ParticleSystem
	ornaments *systems.OrnamentSystem

	// Telemetry
	collector   *telemetry.Collector
	perf        *telemetry.PerfCollector
	output      *telemetry.OutputManager
	unsubscribe func()
	logStats    bool

	// Producers (gesture polling, photo import)
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	importer *upload.Importer
	closed   sync.Once
	closeErr error

	// State
	snap    store.Snapshot
	tick    int32
	elapsed atomic.Int64 // Simulated time in nanoseconds
	paused  bool

	// Graphics (nil when headless)
	cam   *camera.Camera
	scene *renderer.Scene
	hud   *ui.HUD
}

// NewGame builds fields, store and systems from the configuration.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	fields, err := field.Generate(cfg.Particles.Count, rng, FieldParams(cfg))
	if err != nil {
		return nil, fmt.Errorf("generating fields: %w", err)
	}

	st := store.New(
		store.WithRestBox(RestBox(cfg)),
		store.WithRand(rand.New(rand.NewSource(rng.Int63()))),
	)

	world := ecs.NewWorld()
	ctx, cancel := context.WithCancel(context.Background())

	g := &Game{
		cfg:       cfg,
		rng:       rng,
		world:     world,
		store:     st,
		fields:    fields,
		particles: systems.NewParticleSystem(fields, st.Mode(), ParticleParams(cfg)),
		ornaments: systems.NewOrnamentSystem(world, OrnamentParams(cfg)),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.DT, cfg.Telemetry.ConvergenceEpsilon),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:  opts.LogStats,
		ctx:       ctx,
		cancel:    cancel,
		importer:  upload.NewImporter(st),
	}
	g.snap = st.Snapshot()
	g.unsubscribe = st.Subscribe(g.collector.OnChange(g.snap))

	g.output, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		cancel()
		return nil, err
	}
	if err := g.output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	if !opts.Headless {
		g.initGraphics()
	}

	slog.Info("tree initialized",
		"particles", fields.Len(),
		"seed", seed,
		"mode", g.snap.Mode.String(),
	)
	return g, nil
}

// Store exposes the mode store to producers.
func (g *Game) Store() *store.Store {
	return g.store
}

// Step advances the simulation by dt seconds. The whole step sees a single
// store snapshot, so writes made while it runs show up next frame.
//
// dt is capped at motion.max_delta, so motion is frame-rate independent only
// for frames shorter than the cap. A longer frame moves as far as one
// max_delta frame would.
func (g *Game) Step(dt float64) {
	if maxDT := g.cfg.Motion.MaxDelta; maxDT > 0 && dt > maxDT {
		dt = maxDT
	}
	if dt < 0 {
		dt = 0
	}

	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseSnapshot)
	g.snap = g.store.Snapshot()
	g.ornaments.Sync(g.snap.Photos)

	g.perf.StartPhase(telemetry.PhaseParticles)
	g.particles.Update(g.snap.Mode, dt)

	g.perf.StartPhase(telemetry.PhaseOrnaments)
	g.ornaments.Update(g.snap.Mode, dt)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.tick++
	g.elapsed.Add(int64(dt * float64(time.Second)))
	g.flushTelemetry()

	g.perf.EndTick()
}

// UpdateHeadless runs one fixed-size step.
func (g *Game) UpdateHeadless() {
	g.Step(g.cfg.Derived.DT)
}

// Frame returns the renderer view of the last step. Slices are reused by
// the next step.
func (g *Game) Frame() Frame {
	return Frame{
		Tick:      g.tick,
		Mode:      g.snap.Mode,
		Particles: g.particles.Transforms(),
		Ornaments: g.ornaments.Ornaments(),
	}
}

// Tick returns the number of steps run.
func (g *Game) Tick() int32 {
	return g.tick
}

// Elapsed returns simulated time. Safe to call from any goroutine.
func (g *Game) Elapsed() time.Duration {
	return time.Duration(g.elapsed.Load())
}

// Fields returns the particle target fields.
func (g *Game) Fields() *field.Fields {
	return g.fields
}

// StartGestures polls rec in the background until Close.
func (g *Game) StartGestures(rec gesture.Recognizer) {
	ctrl := gesture.NewController(rec, g.store, gesture.Options{
		Interval: time.Duration(g.cfg.Gesture.PollInterval * float64(time.Second)),
		Rules:    GestureRules(g.cfg),
		OnTick: func(err error) {
			if err != nil {
				g.collector.Record(telemetry.Event{Type: telemetry.EventGestureError})
				return
			}
			g.collector.Record(telemetry.Event{Type: telemetry.EventGestureTick})
		},
	})

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		ctrl.Run(g.ctx)
	}()
}

// ImportPhotos reads image files in the background and adds them as photos.
func (g *Game) ImportPhotos(paths ...string) {
	if len(paths) == 0 {
		return
	}
	g.importer.Import(g.ctx, paths...)
}

// WatchPhotos imports images that appear in dir until Close.
func (g *Game) WatchPhotos(dir string) {
	w := upload.NewWatcher(dir, g.importer)
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		if err := w.Run(g.ctx); err != nil && g.ctx.Err() == nil {
			slog.Error("photo watcher stopped", "error", err)
		}
	}()
}

// WaitImports blocks until background photo imports finish.
func (g *Game) WaitImports() {
	g.importer.Wait()
}

// Close stops producers, releases graphics and closes output files.
// Later calls return the first result.
func (g *Game) Close() error {
	g.closed.Do(func() {
		g.cancel()
		g.wg.Wait()
		g.importer.Wait()
		g.unsubscribe()
		g.unloadGraphics()
		g.closeErr = g.output.Close()
	})
	return g.closeErr
}
