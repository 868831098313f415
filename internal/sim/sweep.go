package sim

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Sweep repeats one experiment at each step size in dts. Runs execute in
// parallel; each builds its own stepper and controller, because neither may
// be shared across goroutines. sys must be safe for concurrent Derivative
// calls. Results are returned in the order of dts.
func Sweep(
	ctx context.Context,
	sys dynamo.System,
	newStepper dynamo.StepperFactory,
	newController func() dynamo.Controller,
	x0 dynamo.State,
	cfg dynamo.Config,
	dts []float64,
) ([]*dynamo.Result, error) {
	results := make([]*dynamo.Result, len(dts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, dt := range dts {
		g.Go(func() error {
			stepper, err := newStepper(sys.StateDim())
			if err != nil {
				return err
			}
			var ctrl dynamo.Controller
			if newController != nil {
				ctrl = newController()
			}
			s, err := New(sys, stepper, ctrl)
			if err != nil {
				return err
			}

			runCfg := cfg
			runCfg.Dt = dt
			res, err := s.Run(ctx, x0, runCfg)
			if err != nil {
				return fmt.Errorf("sweep dt=%g: %w", dt, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
