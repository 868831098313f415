package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/pendsim/internal/experiment"
	"github.com/san-kum/pendsim/internal/viz"
)

func newLiveCmd() *cobra.Command {
	var (
		f     simFlags
		nudge float64
	)
	cmd := &cobra.Command{
		Use:   "live",
		Short: "animate the cart-pole in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd, []string{"cartpole"})
			if err != nil {
				return err
			}
			reg := experiment.NewRegistry()
			sys, err := reg.Model(cfg.Model, cfg.Params)
			if err != nil {
				return err
			}
			stepper, err := reg.Stepper(cfg.Stepper, sys.StateDim())
			if err != nil {
				return err
			}
			ctrl, err := reg.Controller(cfg)
			if err != nil {
				return err
			}

			m, err := viz.NewModel(sys, stepper, ctrl, cfg.GetInitState(), viz.Options{
				Name:     fmt.Sprintf("cartpole / %s / %s", cfg.Stepper, cfg.Controller),
				Dt:       cfg.Dt,
				MaxForce: cfg.MaxForce,
				Nudge:    nudge,
			})
			if err != nil {
				return err
			}
			return viz.Run(m)
		},
	}
	f.register(cmd)
	cmd.Flags().Float64Var(&nudge, "nudge", 50, "force applied by the arrow keys")
	return cmd
}
