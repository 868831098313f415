package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Cart-pole state layout.
const (
	CartPos = iota
	CartVel
	PoleAngle
	PoleVel
)

// CartPole is a pole hinged on a cart driven by a horizontal force u.
// The pole angle is zero hanging down and π upright; Gravity is negative.
type CartPole struct {
	CartMass   float64
	PoleMass   float64
	PoleLength float64
	Damping    float64
	Gravity    float64
}

func NewCartPole() *CartPole {
	return &CartPole{
		CartMass:   5.0,
		PoleMass:   1.0,
		PoleLength: 2.0,
		Damping:    20.0,
		Gravity:    -9.8,
	}
}

func (c *CartPole) StateDim() int {
	return 4
}

func (c *CartPole) Derivative(x []float64, u float64, i int) float64 {
	switch i {
	case CartPos:
		return x[CartVel]
	case PoleAngle:
		return x[PoleVel]
	}

	M := c.CartMass
	m := c.PoleMass
	L := c.PoleLength
	d := c.Damping
	g := c.Gravity

	v := x[CartVel]
	omega := x[PoleVel]
	sy := math.Sin(x[PoleAngle])
	cy := math.Cos(x[PoleAngle])
	den := m * L * L * (M + m*(1-cy*cy))
	coupling := m*L*omega*omega*sy - d*v

	switch i {
	case CartVel:
		return (-m*m*L*L*g*cy*sy+m*L*L*coupling)/den + m*L*L*u/den
	case PoleVel:
		return ((m+M)*m*g*L*sy-m*L*cy*coupling)/den - m*L*cy*u/den
	}
	panic(fmt.Sprintf("cartpole: component %d out of range [0, 4)", i))
}

// Energy is the undamped mechanical energy, with the potential measured
// from the hinge height.
func (c *CartPole) Energy(x dynamo.State) float64 {
	v := x[CartVel]
	omega := x[PoleVel]
	theta := x[PoleAngle]
	L := c.PoleLength

	// pole tip velocity relative to the ground
	vx := v + L*omega*math.Cos(theta)
	vy := L * omega * math.Sin(theta)

	ke := 0.5*c.CartMass*v*v + 0.5*c.PoleMass*(vx*vx+vy*vy)
	pe := c.PoleMass * c.Gravity * L * math.Cos(theta)
	return ke + pe
}

func (c *CartPole) Params() map[string]float64 {
	return map[string]float64{
		"cart_mass":   c.CartMass,
		"pole_mass":   c.PoleMass,
		"pole_length": c.PoleLength,
		"damping":     c.Damping,
		"gravity":     c.Gravity,
	}
}

func (c *CartPole) SetParam(name string, value float64) error {
	switch name {
	case "cart_mass":
		return setPositive(&c.CartMass, name, value)
	case "pole_mass":
		return setPositive(&c.PoleMass, name, value)
	case "pole_length":
		return setPositive(&c.PoleLength, name, value)
	case "damping":
		if value < 0 {
			return fmt.Errorf("%w: damping %v must not be negative", dynamo.ErrParameterBounds, value)
		}
		c.Damping = value
	case "gravity":
		c.Gravity = value
	default:
		return fmt.Errorf("%w: unknown param %q", dynamo.ErrParameterBounds, name)
	}
	return nil
}

func setPositive(dst *float64, name string, value float64) error {
	if value <= 0 {
		return fmt.Errorf("%w: %s %v must be positive", dynamo.ErrParameterBounds, name, value)
	}
	*dst = value
	return nil
}
