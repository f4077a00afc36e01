// Command aco runs and inspects ant colony boards from the terminal.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/aco/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "aco",
		Short: "Ant colony optimization boards without a window",
		Long: `aco runs colony boards headless and checks layout and config files.

Use the main binary for the interactive editor and viewer.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd)
			path, _ := cmd.Flags().GetString("config")
			return config.Init(path)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Path to config.yaml (empty = use defaults)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log at debug level")

	rootCmd.AddCommand(
		newRunCmd(),
		newValidateCmd(),
		newDefaultsCmd(),
		newLayoutCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging installs a JSON slog handler on stderr so stdout stays
// free for command output.
func setupLogging(cmd *cobra.Command) {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
