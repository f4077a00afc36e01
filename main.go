package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/aco/config"
	"github.com/pthm-cable/aco/game"
	"github.com/pthm-cable/aco/layout"
	"github.com/pthm-cable/aco/telemetry"
	"github.com/pthm-cable/aco/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	layoutPath := flag.String("layout", "", "Layout file to open (empty = editor, or the default layout when headless)")
	savePath := flag.String("save-layout", "layout.json", "Where the editor saves layouts")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	duration := flag.Duration("duration", 0, "Stop a headless run after this long (0 = until interrupted)")
	autoStart := flag.Bool("start", false, "Start the board immediately when the layout is complete")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Use config stats window if not overridden by CLI
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var l *layout.Layout
	if *layoutPath != "" {
		var err error
		if l, err = layout.Load(*layoutPath); err != nil {
			slog.Error("failed to load layout", "error", err)
			os.Exit(1)
		}
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *headless {
		if l == nil {
			l = layout.Default()
		}
		if err := runHeadless(ctx, cfg, l, output, rngSeed, *duration, *logStats); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	v := viewer.New(cfg, viewer.Options{
		Layout:    l,
		SavePath:  *savePath,
		Output:    output,
		Seed:      rngSeed,
		LogStats:  *logStats,
		AutoStart: *autoStart,
	})
	if err := v.Run(ctx); err != nil {
		slog.Error("viewer failed", "error", err)
		os.Exit(1)
	}
}

func runHeadless(ctx context.Context, cfg *config.Config, l *layout.Layout, output *telemetry.OutputManager, seed int64, d time.Duration, logStats bool) error {
	window := time.Duration(cfg.Telemetry.StatsWindow * float64(time.Second))
	b := game.NewBoard(l, cfg.Settings(), game.Options{
		Seed:      seed,
		Collector: telemetry.NewCollector(window),
		Perf:      telemetry.NewPerfCollector(120),
	})
	if err := output.WriteLayout(l); err != nil {
		slog.Error("failed to write layout snapshot", "error", err)
	}

	slog.Info("starting headless simulation",
		"seed", seed,
		"stats_window", window,
		"duration", d,
		"max_ants", cfg.Colony.MaxAnts,
	)

	sum, err := game.RunHeadless(ctx, b, game.HeadlessOptions{
		Duration: d,
		Output:   output,
		LogStats: logStats,
	})
	if err != nil {
		return err
	}
	slog.Info("headless simulation finished",
		"elapsed", sum.Elapsed,
		"ants", sum.Ants,
		"returning", sum.Returning,
		"pheromones", sum.Pheromones,
		"active_pheromones", sum.ActivePheromones,
		"arrivals", sum.TotalArrivals,
		"returns", sum.TotalReturns,
		"windows", sum.Windows,
		"bookmarks", len(sum.Bookmarks),
	)
	return nil
}
