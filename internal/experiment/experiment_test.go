package experiment

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/pendsim/internal/config"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/physics"
)

func TestRegistryLists(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"cartpole", "decay", "oscillator", "pendulum"}, r.ListModels())
	assert.Equal(t, []string{"feedback", "none", "pid"}, r.ListControllers())
	assert.Contains(t, r.ListSteppers(), "rk4")
}

func TestRegistryModelParams(t *testing.T) {
	r := NewRegistry()

	sys, err := r.Model("cartpole", map[string]float64{"damping": 0, "pole_mass": 2})
	require.NoError(t, err)
	cp, ok := sys.(*physics.CartPole)
	require.True(t, ok)
	assert.Equal(t, 0.0, cp.Params()["damping"])
	assert.Equal(t, 2.0, cp.Params()["pole_mass"])

	_, err = r.Model("cartpole", map[string]float64{"pole_mass": -1})
	assert.ErrorIs(t, err, dynamo.ErrParameterBounds)

	_, err = r.Model("rocket", nil)
	assert.ErrorIs(t, err, dynamo.ErrUnknownModel)
}

func TestRegistryStepper(t *testing.T) {
	r := NewRegistry()

	s, err := r.Stepper("rk4", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Dim())

	_, err = r.Stepper("leapfrog", 4)
	assert.ErrorIs(t, err, dynamo.ErrUnknownStepper)
}

func TestRegistryControllerSaturates(t *testing.T) {
	r := NewRegistry()
	cfg := config.DefaultConfig()
	cfg.Controller = "feedback"
	cfg.MaxForce = 5

	ctrl, err := r.Controller(cfg)
	require.NoError(t, err)
	u := ctrl.Compute(dynamo.State{0, 0, math.Pi - 0.5, 0}, 0)
	assert.InDelta(t, 5.0, math.Abs(u), 1e-12)
}

func TestRegistryControllerGainsOverride(t *testing.T) {
	r := NewRegistry()
	cfg := config.DefaultConfig()
	cfg.Model = "oscillator"
	cfg.Controller = "feedback"
	cfg.MaxForce = 0

	_, err := r.Controller(cfg)
	assert.ErrorIs(t, err, dynamo.ErrUnknownController)

	cfg.ControllerParams.Gains = []float64{2, 0}
	ctrl, err := r.Controller(cfg)
	require.NoError(t, err)
	assert.InDelta(t, -3.0, ctrl.Compute(dynamo.State{1.5, 7}, 0), 1e-12)
}

func TestRegistryPIDIndex(t *testing.T) {
	r := NewRegistry()
	cfg := config.DefaultConfig()
	cfg.Controller = "pid"
	cfg.MaxForce = 0
	cfg.ControllerParams = config.ControllerConfig{Kp: 2, Index: 2, Target: math.Pi}

	ctrl, err := r.Controller(cfg)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, ctrl.Compute(dynamo.State{9, 9, math.Pi + 0.5, 0}, 0), 1e-12)

	cfg.Controller = "bang-bang"
	_, err = r.Controller(cfg)
	assert.ErrorIs(t, err, dynamo.ErrUnknownController)
}

func TestBuildAndRunBalance(t *testing.T) {
	cfg := config.GetPreset("cartpole", "balance")
	require.NotNil(t, cfg)

	exp, err := Build(NewRegistry(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, dynamo.State{0, 0, math.Pi - 0.1, 0}, exp.X0)

	res, err := exp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3000, res.StepsTaken)
	assert.InDelta(t, math.Pi, res.Final()[physics.PoleAngle], 0.01)
	assert.Contains(t, res.Metrics, "control_effort")

	// X0 is left untouched by the run.
	assert.Equal(t, math.Pi-0.1, exp.X0[physics.PoleAngle])
}

func TestBuildRejectsBadConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Dt = 0
	_, err := Build(NewRegistry(), cfg, nil)
	assert.ErrorIs(t, err, dynamo.ErrInvalidConfig)

	cfg = config.DefaultConfig()
	cfg.Stepper = "verlet"
	_, err = Build(NewRegistry(), cfg, nil)
	assert.ErrorIs(t, err, dynamo.ErrUnknownStepper)
}
