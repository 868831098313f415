package integrators

import (
	"fmt"

	"github.com/san-kum/pendsim/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// RK4 is the classic fourth-order Runge-Kutta method with 1-2-2-1 weights.
// Its stage buffers are sized once by NewRK4, so Step never allocates.
type RK4 struct {
	n              int
	k1, k2, k3, k4 []float64
	state          []float64
}

func NewRK4(n int) (*RK4, error) {
	if n <= 0 {
		return nil, fmt.Errorf("rk4: dimension %d: %w", n, dynamo.ErrInvalidDimension)
	}
	return &RK4{
		n:     n,
		k1:    make([]float64, n),
		k2:    make([]float64, n),
		k3:    make([]float64, n),
		k4:    make([]float64, n),
		state: make([]float64, n),
	}, nil
}

func (r *RK4) Dim() int { return r.n }

// Step advances y in place by h, holding u constant over all four stages.
// y is left untouched when its length differs from Dim.
func (r *RK4) Step(df dynamo.DerivativeFunc, y []float64, h, u float64) error {
	if len(y) != r.n {
		return fmt.Errorf("rk4: state length %d, want %d: %w", len(y), r.n, dynamo.ErrDimensionMismatch)
	}

	for i := 0; i < r.n; i++ {
		r.k1[i] = df(y, u, i)
	}

	floats.AddScaledTo(r.state, y, h*0.5, r.k1)
	for i := 0; i < r.n; i++ {
		r.k2[i] = df(r.state, u, i)
	}

	floats.AddScaledTo(r.state, y, h*0.5, r.k2)
	for i := 0; i < r.n; i++ {
		r.k3[i] = df(r.state, u, i)
	}

	floats.AddScaledTo(r.state, y, h, r.k3)
	for i := 0; i < r.n; i++ {
		r.k4[i] = df(r.state, u, i)
	}

	h6 := h / 6.0
	for i := 0; i < r.n; i++ {
		y[i] = y[i] + h6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return nil
}
