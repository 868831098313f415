package config

import (
	"math"
	"sort"
)

var Presets = map[string]map[string]*Config{
	"cartpole": {
		"balance": {
			Model: "cartpole", Stepper: "rk4", Controller: "feedback", Dt: 0.01, Duration: 30.0, MaxForce: 1000,
			InitState: InitStateConfig{Theta: math.Pi - 0.1},
		},
		"recover": {
			Model: "cartpole", Stepper: "rk4", Controller: "feedback", Dt: 0.01, Duration: 30.0, MaxForce: 1000,
			InitState: InitStateConfig{Pos: 1.0, Theta: math.Pi - 0.3, Omega: 0.2},
		},
		"freefall": {
			Model: "cartpole", Stepper: "rk4", Controller: "none", Dt: 0.01, Duration: 10.0,
			InitState: InitStateConfig{Theta: math.Pi - 0.1},
		},
		"swing": {
			Model: "cartpole", Stepper: "rk4", Controller: "none", Dt: 0.005, Duration: 20.0,
			InitState: InitStateConfig{Theta: 1.0},
			Params:    map[string]float64{"damping": 0},
		},
	},
	"pendulum": {
		"small": {
			Model: "pendulum", Stepper: "rk4", Controller: "none", Dt: 0.01, Duration: 20.0,
			InitState: InitStateConfig{Theta: 0.2},
		},
		"large": {
			Model: "pendulum", Stepper: "rk4", Controller: "none", Dt: 0.01, Duration: 20.0,
			InitState: InitStateConfig{Theta: 2.5},
		},
	},
	"oscillator": {
		"unit": {
			Model: "oscillator", Stepper: "rk4", Controller: "none", Dt: 0.01, Duration: 20.0,
			InitState: InitStateConfig{Pos: 1.0},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, name string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	p, ok := modelPresets[name]
	if !ok {
		return nil
	}
	c := *p
	if p.Params != nil {
		c.Params = make(map[string]float64, len(p.Params))
		for k, v := range p.Params {
			c.Params[k] = v
		}
	}
	if cp := c.ControllerParams; cp.Kp == 0 && cp.Ki == 0 && cp.Kd == 0 && cp.Gains == nil {
		c.ControllerParams = DefaultConfig().ControllerParams
	}
	return &c
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
