package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Oscillator is the undamped harmonic oscillator x'' = -ω0²x + u.
type Oscillator struct {
	Omega float64
}

func NewOscillator() *Oscillator {
	return &Oscillator{Omega: 1.0}
}

func (o *Oscillator) StateDim() int { return 2 }

func (o *Oscillator) Derivative(x []float64, u float64, i int) float64 {
	switch i {
	case 0:
		return x[1]
	case 1:
		return -o.Omega*o.Omega*x[0] + u
	}
	panic(fmt.Sprintf("oscillator: component %d out of range [0, 2)", i))
}

// Exact returns the unforced solution at time t from (x0, v0).
func (o *Oscillator) Exact(t, x0, v0 float64) dynamo.State {
	w := o.Omega
	s, c := math.Sincos(w * t)
	return dynamo.State{
		x0*c + v0/w*s,
		-x0*w*s + v0*c,
	}
}

func (o *Oscillator) Energy(x dynamo.State) float64 {
	return 0.5*x[1]*x[1] + 0.5*o.Omega*o.Omega*x[0]*x[0]
}

func (o *Oscillator) Params() map[string]float64 {
	return map[string]float64{"omega": o.Omega}
}

func (o *Oscillator) SetParam(name string, value float64) error {
	if name != "omega" {
		return fmt.Errorf("%w: unknown param %q", dynamo.ErrParameterBounds, name)
	}
	return setPositive(&o.Omega, name, value)
}

// Decay is the scalar linear system dy/dt = -Rate*y + u.
type Decay struct {
	Rate float64
}

func NewDecay() *Decay {
	return &Decay{Rate: 1.0}
}

func (d *Decay) StateDim() int { return 1 }

func (d *Decay) Derivative(x []float64, u float64, i int) float64 {
	if i != 0 {
		panic(fmt.Sprintf("decay: component %d out of range [0, 1)", i))
	}
	return -d.Rate*x[0] + u
}

// Exact returns the unforced solution y0*exp(-Rate*t).
func (d *Decay) Exact(t, y0 float64) float64 {
	return y0 * math.Exp(-d.Rate*t)
}

func (d *Decay) Params() map[string]float64 {
	return map[string]float64{"rate": d.Rate}
}

func (d *Decay) SetParam(name string, value float64) error {
	if name != "rate" {
		return fmt.Errorf("%w: unknown param %q", dynamo.ErrParameterBounds, name)
	}
	d.Rate = value
	return nil
}
