package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/san-kum/pendsim/internal/config"
)

// simFlags are the flags shared by run and live. A flag only takes effect
// when set on the command line, so the order is flag > config file >
// preset > default.
type simFlags struct {
	configFile string
	preset     string
	stepper    string
	controller string
	dt         float64
	duration   float64
	maxForce   float64
	pos        float64
	vel        float64
	theta      float64
	omega      float64
	kp         float64
	ki         float64
	kd         float64
	target     float64
	index      int
	gains      []float64
	params     map[string]string
}

func (f *simFlags) register(cmd *cobra.Command) {
	d := config.DefaultConfig()
	fs := cmd.Flags()
	fs.StringVar(&f.configFile, "config", "", "config file path (yaml)")
	fs.StringVar(&f.preset, "preset", "", "use preset configuration")
	fs.StringVar(&f.stepper, "stepper", d.Stepper, "integrator (rk4|euler)")
	fs.StringVar(&f.controller, "controller", d.Controller, "controller (none|pid|feedback)")
	fs.Float64Var(&f.dt, "dt", d.Dt, "timestep")
	fs.Float64Var(&f.duration, "time", d.Duration, "duration")
	fs.Float64Var(&f.maxForce, "max-force", d.MaxForce, "input limit, 0 for none")
	fs.Float64Var(&f.pos, "pos", 0, "initial position")
	fs.Float64Var(&f.vel, "vel", 0, "initial velocity")
	fs.Float64Var(&f.theta, "theta", d.InitState.Theta, "initial angle (cartpole: pi is upright)")
	fs.Float64Var(&f.omega, "omega", 0, "initial angular velocity")
	fs.Float64Var(&f.kp, "kp", d.ControllerParams.Kp, "pid kp")
	fs.Float64Var(&f.ki, "ki", d.ControllerParams.Ki, "pid ki")
	fs.Float64Var(&f.kd, "kd", d.ControllerParams.Kd, "pid kd")
	fs.Float64Var(&f.target, "target", 0, "pid target")
	fs.IntVar(&f.index, "index", 0, "state index regulated by pid")
	fs.Float64SliceVar(&f.gains, "gains", nil, "feedback gains")
	fs.StringToStringVar(&f.params, "param", nil, "model parameter, e.g. --param damping=0")
}

// resolve builds the run configuration for an optional model argument.
func (f *simFlags) resolve(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Model = args[0]
	}

	if f.preset != "" {
		p := config.GetPreset(cfg.Model, f.preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", f.preset, config.ListPresets(cfg.Model))
		}
		cfg = p
	}

	if f.configFile != "" {
		var err error
		cfg, err = config.LoadOver(f.configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 {
			cfg.Model = args[0]
		}
	}

	changed := cmd.Flags().Changed
	setF := func(name string, dst *float64, v float64) {
		if changed(name) {
			*dst = v
		}
	}
	setS := func(name string, dst *string, v string) {
		if changed(name) {
			*dst = v
		}
	}

	setS("stepper", &cfg.Stepper, f.stepper)
	setS("controller", &cfg.Controller, f.controller)
	setF("dt", &cfg.Dt, f.dt)
	setF("time", &cfg.Duration, f.duration)
	setF("max-force", &cfg.MaxForce, f.maxForce)
	setF("pos", &cfg.InitState.Pos, f.pos)
	setF("vel", &cfg.InitState.Vel, f.vel)
	setF("theta", &cfg.InitState.Theta, f.theta)
	setF("omega", &cfg.InitState.Omega, f.omega)
	setF("kp", &cfg.ControllerParams.Kp, f.kp)
	setF("ki", &cfg.ControllerParams.Ki, f.ki)
	setF("kd", &cfg.ControllerParams.Kd, f.kd)
	setF("target", &cfg.ControllerParams.Target, f.target)
	if changed("index") {
		cfg.ControllerParams.Index = f.index
	}
	if changed("gains") {
		cfg.ControllerParams.Gains = append([]float64(nil), f.gains...)
	}
	if changed("param") {
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64, len(f.params))
		}
		for k, raw := range f.params {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("param %s: %w", k, err)
			}
			cfg.Params[k] = v
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
