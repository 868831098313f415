package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/pendsim/internal/control"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/logging"
)

// Simulator owns the time axis of a run. It asks the controller for the
// input once per tick and hands it to the stepper, which holds it constant
// across its stages.
type Simulator struct {
	sys        dynamo.System
	stepper    dynamo.Stepper
	controller dynamo.Controller
	df         dynamo.DerivativeFunc
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
	logger     *logging.Logger
}

// New wires a system to a stepper. A nil controller applies zero input.
func New(sys dynamo.System, stepper dynamo.Stepper, controller dynamo.Controller) (*Simulator, error) {
	if stepper.Dim() != sys.StateDim() {
		return nil, fmt.Errorf("stepper dimension %d, system dimension %d: %w",
			stepper.Dim(), sys.StateDim(), dynamo.ErrDimensionMismatch)
	}
	if controller == nil {
		controller = control.NewNone()
	}
	return &Simulator{
		sys:        sys,
		stepper:    stepper,
		controller: controller,
		df:         dynamo.Func(sys),
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
		logger:     logging.Noop(),
	}, nil
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) SetLogger(l *logging.Logger) {
	if l == nil {
		l = logging.Noop()
	}
	s.logger = l
}

// Tick computes the input for x at time t and advances x in place by dt.
func (s *Simulator) Tick(x dynamo.State, t, dt float64) (float64, error) {
	u := s.controller.Compute(x, t)
	return u, s.stepper.Step(s.df, x, dt, u)
}

func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &dynamo.Result{
		States:   make([]dynamo.State, 0, steps+1),
		Controls: make([]float64, 0, steps),
		Times:    make([]float64, 0, steps+1),
		Metrics:  make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialEnergy := s.computeEnergy(x)
	s.logger.LogRunStart(ctx, cfg.Dt, cfg.Duration, steps)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.logger.LogRunEnd(ctx, result.StepsTaken, t, ctx.Err())
			return result, ctx.Err()
		default:
		}

		u := s.controller.Compute(x, t)

		for _, m := range s.metrics {
			m.Observe(x, u, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, u, t)
		}

		if err := s.stepper.Step(s.df, x, cfg.Dt, u); err != nil {
			s.logger.LogStepFailure(ctx, i, t, err)
			return result, &dynamo.SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: err}
		}

		// Derive t from the step count so it does not accumulate rounding.
		t = float64(i+1) * cfg.Dt

		if cfg.ValidateState && !x.IsValid() {
			err := &dynamo.SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: dynamo.ErrInvalidState}
			s.logger.LogRunEnd(ctx, result.StepsTaken, t, err)
			return result, err
		}

		result.StepsTaken++
		result.States = append(result.States, x.Clone())
		result.Controls = append(result.Controls, u)
		result.Times = append(result.Times, t)
	}

	finalEnergy := s.computeEnergy(x)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.logger.LogRunEnd(ctx, result.StepsTaken, t, nil)
	return result, nil
}

func (s *Simulator) validate(x0 dynamo.State, cfg dynamo.Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", dynamo.ErrInvalidConfig, cfg.Duration)
	}
	if len(x0) != s.sys.StateDim() {
		return fmt.Errorf("initial state length %d, system dimension %d: %w",
			len(x0), s.sys.StateDim(), dynamo.ErrDimensionMismatch)
	}
	return nil
}

func (s *Simulator) computeEnergy(x dynamo.State) float64 {
	if h, ok := s.sys.(dynamo.Hamiltonian); ok {
		return h.Energy(x)
	}
	return 0
}
