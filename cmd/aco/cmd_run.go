package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/aco/config"
	"github.com/pthm-cable/aco/game"
	"github.com/pthm-cable/aco/layout"
	"github.com/pthm-cable/aco/telemetry"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [layout-file]",
		Short: "Run a board headless and print a summary",
		Long: `Run a board headless and print a summary.

Without a layout file the built-in default layout is used.

Examples:
  aco run --duration 30s
  aco run maze.json --duration 2m --output-dir runs/maze
  aco run --seed 42 --log-stats`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			d, _ := cmd.Flags().GetDuration("duration")
			seed, _ := cmd.Flags().GetInt64("seed")
			outputDir, _ := cmd.Flags().GetString("output-dir")
			logStats, _ := cmd.Flags().GetBool("log-stats")

			l := layout.Default()
			if len(args) == 1 {
				var err error
				if l, err = layout.Load(args[0]); err != nil {
					return err
				}
			}

			cfg := config.Cfg()
			output, err := telemetry.NewOutputManager(outputDir)
			if err != nil {
				return err
			}
			defer output.Close()
			if err := output.WriteConfig(cfg); err != nil {
				return fmt.Errorf("writing config snapshot: %w", err)
			}
			if err := output.WriteLayout(l); err != nil {
				return fmt.Errorf("writing layout snapshot: %w", err)
			}

			window := time.Duration(cfg.Telemetry.StatsWindow * float64(time.Second))
			b := game.NewBoard(l, cfg.Settings(), game.Options{
				Seed:      seed,
				Collector: telemetry.NewCollector(window),
				Perf:      telemetry.NewPerfCollector(120),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sum, err := game.RunHeadless(ctx, b, game.HeadlessOptions{
				Duration: d,
				Output:   output,
				LogStats: logStats,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sum)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(sum, output.Dir()))
			return nil
		},
	}

	cmd.Flags().Duration("duration", 10*time.Second, "How long to run (0 = until interrupted)")
	cmd.Flags().Int64("seed", 0, "RNG seed (0 = time-based)")
	cmd.Flags().String("output-dir", "", "Directory for CSV telemetry and snapshots")
	cmd.Flags().Bool("log-stats", false, "Log every telemetry window")
	return cmd
}
