package control

import "github.com/san-kum/pendsim/internal/dynamo"

// Manual passes an externally set input to the system. The live view uses
// it to push the cart from the keyboard.
type Manual struct {
	U float64
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Set(u float64) {
	m.U = u
}

func (m *Manual) Compute(state dynamo.State, t float64) float64 {
	return m.U
}
