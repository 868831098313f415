package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// MaxAbsDiff returns the largest component-wise distance between s and other.
// Both must have the same length.
func (s State) MaxAbsDiff(other State) float64 {
	maxDiff := 0.0
	for i := range s {
		maxDiff = math.Max(maxDiff, math.Abs(s[i]-other[i]))
	}
	return maxDiff
}

// DerivativeFunc returns dy_i/dt for the state y under the scalar input u.
// It is evaluated at several trial states per step and must not keep
// state between calls.
type DerivativeFunc func(y []float64, u float64, i int) float64

// System is an explicit first-order ODE dy/dt = f(y, u) with one scalar input.
type System interface {
	Derivative(y []float64, u float64, i int) float64
	StateDim() int
}

// Func adapts a System to the derivative capability taken by a Stepper.
func Func(sys System) DerivativeFunc {
	return sys.Derivative
}

// Stepper advances y in place by one step of size h with u held constant.
type Stepper interface {
	Step(df DerivativeFunc, y []float64, h, u float64) error
	Dim() int
}

// StepperFactory builds a Stepper with its buffers sized for dimension n.
type StepperFactory func(n int) (Stepper, error)

type Hamiltonian interface {
	Energy(x State) float64
}

type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

type Controller interface {
	Compute(x State, t float64) float64
}

type Metric interface {
	Name() string
	Observe(x State, u float64, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, u float64, t float64)
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		ValidateState: true,
	}
}

// Steps is the number of fixed steps needed to cover Duration.
func (c Config) Steps() int {
	return int(math.Round(c.Duration / c.Dt))
}

type Result struct {
	States      []State
	Controls    []float64
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}

// Final returns the last recorded state, or nil for an empty result.
func (r *Result) Final() State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}
