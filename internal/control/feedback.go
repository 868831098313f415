package control

import (
	"fmt"
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Feedback is the full-state law u = -Σ K[j]*(x[j] - Target[j]).
// Missing target entries are zero; extra state entries are ignored.
type Feedback struct {
	K      []float64
	Target dynamo.State
}

func NewFeedback(k []float64, target dynamo.State) *Feedback {
	return &Feedback{K: k, Target: target}
}

func (f *Feedback) Compute(x dynamo.State, t float64) float64 {
	u := 0.0
	for j := range x {
		if j >= len(f.K) {
			break
		}
		target := 0.0
		if j < len(f.Target) {
			target = f.Target[j]
		}
		u -= f.K[j] * (x[j] - target)
	}
	return u
}

var (
	// Pole placement gains for the default cart-pole around the upright state.
	cartpoleGains  = []float64{-10.0000, -51.5393, 356.8637, 154.4146}
	pendulumGains  = []float64{31.62, 10.0}
	cartpoleTarget = dynamo.State{0, 0, math.Pi, 0}
)

// NewCartPoleFeedback balances the default cart-pole upright at the origin.
func NewCartPoleFeedback() *Feedback {
	return NewFeedback(append([]float64(nil), cartpoleGains...), cartpoleTarget.Clone())
}

func NewPendulumFeedback() *Feedback {
	return NewFeedback(append([]float64(nil), pendulumGains...), dynamo.State{0, 0})
}

func errUnknownParam(name string) error {
	return fmt.Errorf("%w: unknown controller param %q", dynamo.ErrParameterBounds, name)
}
