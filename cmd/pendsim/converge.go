package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pendsim/internal/analysis"
	"github.com/san-kum/pendsim/internal/integrators"
)

func newConvergeCmd() *cobra.Command {
	var (
		steppers []string
		h0       float64
		halvings int
		total    float64
	)
	cmd := &cobra.Command{
		Use:   "converge",
		Short: "measure the order of each stepper on the harmonic oscillator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if halvings < 2 {
				return fmt.Errorf("need at least 2 step sizes, got %d", halvings)
			}
			out := cmd.OutOrStdout()
			dts := analysis.Halvings(h0, halvings)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STEPPER\tDT\tSTEPS\tERROR\tORDER")

			series := make([][]float64, 0, len(steppers))
			for _, name := range steppers {
				factory, err := integrators.Factory(name)
				if err != nil {
					return err
				}
				points, err := analysis.Convergence(cmd.Context(), factory, dts, total)
				if err != nil {
					return err
				}
				orders := analysis.ObservedOrders(points)

				logErr := make([]float64, len(points))
				for i, p := range points {
					order := "-"
					if i > 0 && !math.IsNaN(orders[i-1]) {
						order = fmt.Sprintf("%.2f", orders[i-1])
					}
					fmt.Fprintf(w, "%s\t%g\t%d\t%.3e\t%s\n", name, p.Dt, p.Steps, p.Error, order)
					logErr[i] = math.Log10(math.Max(p.Error, 1e-300))
				}
				series = append(series, logErr)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			graph := asciigraph.PlotMany(series,
				asciigraph.Height(10),
				asciigraph.Width(60),
				asciigraph.Caption(fmt.Sprintf("log10 error per halving %v", steppers)),
			)
			fmt.Fprintf(out, "\n%s\n", graph)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&steppers, "stepper", []string{"rk4", "euler"}, "steppers to compare")
	cmd.Flags().Float64Var(&h0, "h0", 0.1, "largest step size")
	cmd.Flags().IntVar(&halvings, "halvings", 5, "number of step sizes")
	cmd.Flags().Float64Var(&total, "time", 10, "integration time")
	return cmd
}
