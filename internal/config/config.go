package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pendsim/internal/dynamo"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultTheta    = 0.1
	DefaultMaxForce = 1000.0
	DefaultKp       = 10.0
	DefaultKi       = 0.1
	DefaultKd       = 5.0
)

type Config struct {
	Model            string             `yaml:"model"`
	Stepper          string             `yaml:"stepper"`
	Controller       string             `yaml:"controller"`
	Dt               float64            `yaml:"dt"`
	Duration         float64            `yaml:"duration"`
	MaxForce         float64            `yaml:"max_force"`
	InitState        InitStateConfig    `yaml:"init_state"`
	Params           map[string]float64 `yaml:"params,omitempty"`
	ControllerParams ControllerConfig   `yaml:"controller_params"`
}

// InitStateConfig holds initial values by physical meaning. For the
// cart-pole, Theta is measured from the hanging position.
type InitStateConfig struct {
	Pos   float64 `yaml:"pos"`
	Vel   float64 `yaml:"vel"`
	Theta float64 `yaml:"theta"`
	Omega float64 `yaml:"omega"`
}

type ControllerConfig struct {
	Kp     float64   `yaml:"kp"`
	Ki     float64   `yaml:"ki"`
	Kd     float64   `yaml:"kd"`
	Target float64   `yaml:"target"`
	Index  int       `yaml:"index"`
	Gains  []float64 `yaml:"gains,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "cartpole",
		Stepper:    "rk4",
		Controller: "none",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		MaxForce:   DefaultMaxForce,
		InitState: InitStateConfig{
			Theta: DefaultTheta,
		},
		ControllerParams: ControllerConfig{
			Kp: DefaultKp,
			Ki: DefaultKi,
			Kd: DefaultKd,
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over base, which is modified and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidConfig, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", dynamo.ErrInvalidConfig, c.Duration)
	}
	if c.Dt > c.Duration {
		return fmt.Errorf("%w: dt %f exceeds duration %f", dynamo.ErrInvalidConfig, c.Dt, c.Duration)
	}
	if c.MaxForce < 0 {
		return fmt.Errorf("%w: max_force must not be negative, got %f", dynamo.ErrInvalidConfig, c.MaxForce)
	}
	return nil
}

// SimConfig is the run configuration handed to the simulator.
func (c *Config) SimConfig() dynamo.Config {
	return dynamo.Config{
		Dt:            c.Dt,
		Duration:      c.Duration,
		ValidateState: true,
	}
}

func (c *Config) GetInitState() dynamo.State {
	switch c.Model {
	case "cartpole":
		return dynamo.State{c.InitState.Pos, c.InitState.Vel, c.InitState.Theta, c.InitState.Omega}
	case "oscillator":
		return dynamo.State{c.InitState.Pos, c.InitState.Vel}
	case "decay":
		return dynamo.State{c.InitState.Pos}
	default:
		return dynamo.State{c.InitState.Theta, c.InitState.Omega}
	}
}
