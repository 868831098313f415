package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/pendsim/internal/experiment"
	"github.com/san-kum/pendsim/internal/storage"
)

func newRunCmd() *cobra.Command {
	var f simFlags
	cmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run simulation and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, args, &f)
		},
	}
	f.register(cmd)
	return cmd
}

func runSimulation(cmd *cobra.Command, args []string, f *simFlags) error {
	out := cmd.OutOrStdout()
	cfg, err := f.resolve(cmd, args)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.Build(experiment.NewRegistry(), cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(out, "running %s simulation (%s, %s)...\n", cfg.Model, cfg.Stepper, cfg.Controller)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.Run{
		Model:      cfg.Model,
		Stepper:    cfg.Stepper,
		Controller: cfg.Controller,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
	}, result)
	if err != nil {
		return err
	}
	logger.WithRun(runID).Info("run stored", "dir", dataDir)

	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "run id: %s\n", runID)
	fmt.Fprintf(out, "steps: %d\n", result.StepsTaken)
	fmt.Fprintf(out, "final state: %.6f\n", []float64(result.Final()))

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(out, "\nmetrics:")
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}
