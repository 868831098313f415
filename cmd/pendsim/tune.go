package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/experiment"
	"github.com/san-kum/pendsim/internal/optim"
)

func newTuneCmd() *cobra.Command {
	var (
		f        simFlags
		grid     []string
		metric   string
		maximize bool
	)
	cmd := &cobra.Command{
		Use:   "tune [model]",
		Short: "grid search controller gains or model params against a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := f.resolve(cmd, args)
			if err != nil {
				return err
			}
			values, err := parseGrid(grid)
			if err != nil {
				return err
			}
			g, err := optim.NewGridSearch(values)
			if err != nil {
				return err
			}

			reg := experiment.NewRegistry()
			build := func(params map[string]float64) (*experiment.Experiment, error) {
				return experiment.Build(reg, withParams(base, params), nil)
			}
			score := func(r *dynamo.Result) float64 {
				v, ok := r.Metrics[metric]
				if !ok {
					return 0
				}
				if maximize {
					return -v
				}
				return v
			}

			best, all, err := g.Search(cmd.Context(), build, score)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "PARAMS\t%s\tNOTE\n", strings.ToUpper(metric))
			for _, c := range all {
				note := ""
				if c.Err != nil {
					note = c.Err.Error()
				}
				fmt.Fprintf(w, "%s\t%.6g\t%s\n", formatParams(c.Params), unscore(c.Score, maximize), note)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nbest: %s (%s %.6g)\n", formatParams(best.Params), metric, unscore(best.Score, maximize))
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringArrayVar(&grid, "grid", nil, "parameter values, e.g. --grid kp=1,5,10 (repeatable)")
	cmd.Flags().StringVar(&metric, "metric", "control_effort", "metric to optimize")
	cmd.Flags().BoolVar(&maximize, "maximize", false, "maximize the metric instead of minimizing")
	return cmd
}

func unscore(s float64, maximize bool) float64 {
	if maximize {
		return -s
	}
	return s
}

func parseGrid(entries []string) (map[string][]float64, error) {
	grid := make(map[string][]float64, len(entries))
	for _, entry := range entries {
		name, list, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("grid %q: want name=v1,v2,...", entry)
		}
		for _, raw := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("grid %s: %w", name, err)
			}
			grid[name] = append(grid[name], v)
		}
	}
	return grid, nil
}

// withParams copies base and applies grid values. Controller gain names go
// to the controller, everything else to the model.
func withParams(base *config.Config, params map[string]float64) *config.Config {
	cfg := *base
	cfg.Params = make(map[string]float64, len(base.Params)+len(params))
	for k, v := range base.Params {
		cfg.Params[k] = v
	}
	cfg.ControllerParams.Gains = append([]float64(nil), base.ControllerParams.Gains...)
	for k, v := range params {
		switch k {
		case "kp":
			cfg.ControllerParams.Kp = v
		case "ki":
			cfg.ControllerParams.Ki = v
		case "kd":
			cfg.ControllerParams.Kd = v
		case "target":
			cfg.ControllerParams.Target = v
		default:
			cfg.Params[k] = v
		}
	}
	return &cfg
}

func formatParams(p map[string]float64) string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%g", k, p[k])
	}
	return strings.Join(parts, " ")
}
