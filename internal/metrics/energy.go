package metrics

import (
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/physics"
)

// EnergyDrift tracks the largest relative change of a Hamiltonian system's
// energy from its first observed value.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
	sys           dynamo.Hamiltonian
}

func NewEnergyDrift(sys dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		sys:  sys,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, u float64, t float64) {
	energy := e.sys.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// Defaults returns the metrics recorded for every run of sys.
func Defaults(sys dynamo.System) []dynamo.Metric {
	ms := []dynamo.Metric{NewControlEffort()}
	switch sys.(type) {
	case *physics.CartPole:
		ms = append(ms, NewStability(0.2, physics.PoleAngle, math.Pi))
	default:
		ms = append(ms, NewStability(1.0, 0, 0))
	}
	if h, ok := sys.(dynamo.Hamiltonian); ok {
		ms = append(ms, NewEnergyDrift(h))
	}
	return ms
}
