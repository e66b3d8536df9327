package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tinsel/config"
	"github.com/pthm-cable/tinsel/game"
	"github.com/pthm-cable/tinsel/gesture"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	photos := flag.String("photos", "", "Comma separated image files to hang as ornaments")
	gestures := flag.String("gestures", "", "CSV gesture script (t,open_palms,closed_fists)")
	watchDir := flag.String("watch-dir", "", "Directory to watch for new photos")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var script []gesture.ScriptStep
	if *gestures != "" {
		var err error
		script, err = gesture.LoadScript(*gestures)
		if err != nil {
			slog.Error("failed to load gesture script", "error", err)
			os.Exit(1)
		}
	}

	opts := game.Options{
		Config:    cfg,
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		Headless:  *headless,
	}

	if *headless {
		g, err := game.NewGame(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Close()
		start(g, script, *photos, *watchDir)

		slog.Info("starting headless run",
			"seed", rngSeed,
			"max_ticks", *maxTicks,
		)

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick(), "mode", g.Frame().Mode.String())
				return
			}
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Tinsel")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Close()
	start(g, script, *photos, *watchDir)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}

// start launches the gesture and photo producers.
func start(g *game.Game, script []gesture.ScriptStep, photos, watchDir string) {
	if script != nil {
		g.StartGestures(gesture.NewScriptRecognizer(script, g.Elapsed))
	}
	if photos != "" {
		g.ImportPhotos(strings.Split(photos, ",")...)
	}
	if watchDir != "" {
		g.WatchPhotos(watchDir)
	}
}
