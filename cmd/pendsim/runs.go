package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pendsim/internal/analysis"
	"github.com/san-kum/pendsim/internal/storage"
)

var captions = map[string][]string{
	"cartpole":   {"cart position", "cart velocity", "pole angle", "pole angular velocity"},
	"pendulum":   {"theta (angle)", "omega (angular velocity)"},
	"oscillator": {"position", "velocity"},
	"decay":      {"value"},
}

func caption(model string, i int) string {
	if c := captions[model]; i < len(c) {
		return c[i]
	}
	return fmt.Sprintf("x%d vs time", i)
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tDT\tSTEPPER\tCTRL\tSTEPS")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%s\t%d\n",
					run.ID,
					run.Model,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Duration,
					run.Dt,
					run.Stepper,
					run.Controller,
					run.Steps,
				)
			}
			return w.Flush()
		},
	}
}

func newPlotCmd() *cobra.Command {
	var showInput bool
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			st := storage.New(dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			states, _, controls, err := st.LoadStates(args[0])
			if err != nil {
				return err
			}
			if len(states) == 0 {
				return fmt.Errorf("no data to plot")
			}

			fmt.Fprintf(out, "run: %s\n", meta.ID)
			fmt.Fprintf(out, "model: %s\n", meta.Model)
			fmt.Fprintf(out, "samples: %d\n\n", len(states))

			for i := range states[0] {
				data := make([]float64, len(states))
				for j := range states {
					data[j] = states[j][i]
				}
				graph := asciigraph.Plot(data,
					asciigraph.Height(10),
					asciigraph.Width(80),
					asciigraph.Caption(caption(meta.Model, i)),
				)
				fmt.Fprintf(out, "%s\n\n", graph)
			}

			if showInput && len(controls) > 1 {
				graph := asciigraph.Plot(controls,
					asciigraph.Height(8),
					asciigraph.Width(80),
					asciigraph.Caption("input u"),
				)
				fmt.Fprintf(out, "%s\n", graph)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showInput, "input", true, "also plot the applied input")
	return cmd
}

func newExportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(cmd.OutOrStdout(), args[0])
		},
	}
}

func newAnalyzeCmd() *cobra.Command {
	var index int
	cmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of one state component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			st := storage.New(dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			states, _, _, err := st.LoadStates(args[0])
			if err != nil {
				return err
			}
			if len(states) == 0 || index < 0 || index >= len(states[0]) {
				return fmt.Errorf("state index %d out of range", index)
			}

			data := make([]float64, len(states))
			for i := range states {
				data[i] = states[i][index]
			}
			freq, spectrum, err := analysis.DominantFrequency(data, meta.Dt)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "signal: %s\n", caption(meta.Model, index))
			fmt.Fprintf(out, "dominant frequency: %.4f Hz\n", freq)
			if freq > 0 {
				fmt.Fprintf(out, "period: %.4f s\n", 1/freq)
			}
			if len(spectrum) > 1 {
				n := min(len(spectrum), 200)
				graph := asciigraph.Plot(spectrum[:n],
					asciigraph.Height(10),
					asciigraph.Width(80),
					asciigraph.Caption("power spectrum"),
				)
				fmt.Fprintf(out, "\n%s\n", graph)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "state index to analyze")
	return cmd
}
