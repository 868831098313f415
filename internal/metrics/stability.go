package metrics

import (
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Stability is the fraction of samples where |x[Index] - Ref| stays within
// the threshold.
type Stability struct {
	name       string
	threshold  float64
	index      int
	ref        float64
	violations int
	samples    int
}

func NewStability(threshold float64, index int, ref float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
		index:     index,
		ref:       ref,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x dynamo.State, u float64, t float64) {
	if s.index >= len(x) {
		return
	}
	s.samples++
	if math.Abs(x[s.index]-s.ref) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
