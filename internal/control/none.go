package control

import "github.com/san-kum/pendsim/internal/dynamo"

type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Compute(x dynamo.State, t float64) float64 {
	return 0
}
