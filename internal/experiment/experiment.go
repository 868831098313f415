package experiment

import (
	"context"

	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/logging"
	"github.com/san-kum/pendsim/internal/metrics"
	"github.com/san-kum/pendsim/internal/sim"
)

// Experiment is one configured run: a system, its stepper and controller,
// the default metrics and the initial state.
type Experiment struct {
	Config     *config.Config
	System     dynamo.System
	Controller dynamo.Controller
	X0         dynamo.State

	simulator *sim.Simulator
}

// Build validates cfg and wires everything a run needs.
func Build(reg *Registry, cfg *config.Config, logger *logging.Logger) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sys, err := reg.Model(cfg.Model, cfg.Params)
	if err != nil {
		return nil, err
	}
	stepper, err := reg.Stepper(cfg.Stepper, sys.StateDim())
	if err != nil {
		return nil, err
	}
	ctrl, err := reg.Controller(cfg)
	if err != nil {
		return nil, err
	}

	s, err := sim.New(sys, stepper, ctrl)
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Defaults(sys) {
		s.AddMetric(m)
	}
	if logger != nil {
		s.SetLogger(logger.WithModel(cfg.Model, sys.StateDim()))
	}

	return &Experiment{
		Config:     cfg,
		System:     sys,
		Controller: ctrl,
		X0:         cfg.GetInitState(),
		simulator:  s,
	}, nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	return e.simulator.Run(ctx, e.X0.Clone(), e.Config.SimConfig())
}

// Simulator gives access to the underlying simulator for observers and
// interactive stepping.
func (e *Experiment) Simulator() *sim.Simulator {
	return e.simulator
}
