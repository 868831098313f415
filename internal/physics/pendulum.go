package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Pendulum is a damped rigid pendulum with state [theta, omega] and a
// torque input.
type Pendulum struct {
	Mass    float64
	Length  float64
	Damping float64
	Gravity float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    1.0,
		Length:  1.0,
		Damping: 0.1,
		Gravity: 9.81,
	}
}

func (p *Pendulum) StateDim() int {
	return 2
}

func (p *Pendulum) Derivative(x []float64, u float64, i int) float64 {
	if i == 0 {
		return x[1]
	}
	if i != 1 {
		panic(fmt.Sprintf("pendulum: component %d out of range [0, 2)", i))
	}
	return (-p.Damping*x[1] - p.Mass*p.Gravity*p.Length*math.Sin(x[0]) + u) / (p.Mass * p.Length * p.Length)
}

func (p *Pendulum) Energy(x dynamo.State) float64 {
	// KE = 0.5 * m * (L*omega)^2
	// PE = m * g * L * (1 - cos(theta))
	v := p.Length * x[1]
	ke := 0.5 * p.Mass * v * v
	pe := p.Mass * p.Gravity * p.Length * (1.0 - math.Cos(x[0]))
	return ke + pe
}

func (p *Pendulum) Params() map[string]float64 {
	return map[string]float64{
		"mass":    p.Mass,
		"length":  p.Length,
		"damping": p.Damping,
		"gravity": p.Gravity,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		return setPositive(&p.Mass, name, value)
	case "length":
		return setPositive(&p.Length, name, value)
	case "damping":
		p.Damping = value
	case "gravity":
		p.Gravity = value
	default:
		return fmt.Errorf("%w: unknown param %q", dynamo.ErrParameterBounds, name)
	}
	return nil
}
