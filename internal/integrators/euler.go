package integrators

import (
	"fmt"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Euler is the explicit first-order method. Every derivative is taken at
// the unmodified y before any component is updated.
type Euler struct {
	n  int
	dx []float64
}

func NewEuler(n int) (*Euler, error) {
	if n <= 0 {
		return nil, fmt.Errorf("euler: dimension %d: %w", n, dynamo.ErrInvalidDimension)
	}
	return &Euler{n: n, dx: make([]float64, n)}, nil
}

func (e *Euler) Dim() int { return e.n }

func (e *Euler) Step(df dynamo.DerivativeFunc, y []float64, h, u float64) error {
	if len(y) != e.n {
		return fmt.Errorf("euler: state length %d, want %d: %w", len(y), e.n, dynamo.ErrDimensionMismatch)
	}
	for i := range e.dx {
		e.dx[i] = df(y, u, i)
	}
	for i := range y {
		y[i] += h * e.dx[i]
	}
	return nil
}
