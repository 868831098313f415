package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/control"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
	"github.com/san-kum/pendsim/internal/physics"
)

type controllerFunc func(cfg *config.Config) (dynamo.Controller, error)

type Registry struct {
	models      map[string]func() dynamo.System
	controllers map[string]controllerFunc
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]func() dynamo.System),
		controllers: make(map[string]controllerFunc),
	}

	r.models["cartpole"] = func() dynamo.System { return physics.NewCartPole() }
	r.models["pendulum"] = func() dynamo.System { return physics.NewPendulum() }
	r.models["oscillator"] = func() dynamo.System { return physics.NewOscillator() }
	r.models["decay"] = func() dynamo.System { return physics.NewDecay() }

	r.controllers["none"] = func(cfg *config.Config) (dynamo.Controller, error) {
		return control.NewNone(), nil
	}
	r.controllers["pid"] = func(cfg *config.Config) (dynamo.Controller, error) {
		cp := cfg.ControllerParams
		pid := control.NewPID(cp.Kp, cp.Ki, cp.Kd, cp.Target)
		pid.Index = cp.Index
		return pid, nil
	}
	r.controllers["feedback"] = func(cfg *config.Config) (dynamo.Controller, error) {
		var fb *control.Feedback
		switch cfg.Model {
		case "cartpole":
			fb = control.NewCartPoleFeedback()
		case "pendulum":
			fb = control.NewPendulumFeedback()
		default:
			if cfg.ControllerParams.Gains == nil {
				return nil, fmt.Errorf("%w: feedback for %q needs controller_params.gains", dynamo.ErrUnknownController, cfg.Model)
			}
			fb = control.NewFeedback(nil, nil)
		}
		if g := cfg.ControllerParams.Gains; g != nil {
			fb.K = append([]float64(nil), g...)
		}
		return fb, nil
	}

	return r
}

// Model builds the named system and applies params to it. Params are set
// in name order so the first failure is deterministic.
func (r *Registry) Model(name string, params map[string]float64) (dynamo.System, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownModel, name, r.ListModels())
	}
	sys := fn()
	if len(params) == 0 {
		return sys, nil
	}

	c, ok := sys.(dynamo.Configurable)
	if !ok {
		return nil, fmt.Errorf("%w: model %q takes no params", dynamo.ErrParameterBounds, name)
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := c.SetParam(k, params[k]); err != nil {
			return nil, err
		}
	}
	return sys, nil
}

func (r *Registry) Stepper(name string, n int) (dynamo.Stepper, error) {
	f, err := integrators.Factory(name)
	if err != nil {
		return nil, err
	}
	return f(n)
}

// Controller builds cfg.Controller, clamped to cfg.MaxForce when positive.
func (r *Registry) Controller(cfg *config.Config) (dynamo.Controller, error) {
	fn, ok := r.controllers[cfg.Controller]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownController, cfg.Controller, r.ListControllers())
	}
	ctrl, err := fn(cfg)
	if err != nil {
		return nil, err
	}
	return control.Saturate(ctrl, cfg.MaxForce), nil
}

func (r *Registry) ListModels() []string {
	return sortedKeys(r.models)
}

func (r *Registry) ListControllers() []string {
	return sortedKeys(r.controllers)
}

func (r *Registry) ListSteppers() []string {
	return integrators.Names()
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
