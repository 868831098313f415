package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/logging"
)

var (
	dataDir   string
	logFormat string
	logLevel  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "pendsim",
		Short:        "fixed-step cart-pole and pendulum simulator",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pendsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text|json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug|info|warn|error)")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Fprintf(out, "no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Fprintf(out, "  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newListCmd(),
		newPlotCmd(),
		newExportJSONCmd(),
		newAnalyzeCmd(),
		newConvergeCmd(),
		newTuneCmd(),
		newLiveCmd(),
		presetsCmd,
	)
	return rootCmd
}

func newLogger(cmd *cobra.Command) (*logging.Logger, error) {
	return logging.FromFlags(cmd.ErrOrStderr(), logFormat, logLevel)
}
