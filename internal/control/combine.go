package control

import (
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

type saturated struct {
	inner dynamo.Controller
	max   float64
}

// Saturate clamps the output of ctrl to [-max, max]. A non-positive max
// leaves the output unbounded.
func Saturate(ctrl dynamo.Controller, max float64) dynamo.Controller {
	if max <= 0 {
		return ctrl
	}
	return &saturated{inner: ctrl, max: max}
}

func (s *saturated) Compute(x dynamo.State, t float64) float64 {
	u := s.inner.Compute(x, t)
	return math.Max(-s.max, math.Min(s.max, u))
}

type sum []dynamo.Controller

// Sum adds the outputs of several controllers.
func Sum(ctrls ...dynamo.Controller) dynamo.Controller {
	return sum(ctrls)
}

func (s sum) Compute(x dynamo.State, t float64) float64 {
	u := 0.0
	for _, c := range s {
		u += c.Compute(x, t)
	}
	return u
}
