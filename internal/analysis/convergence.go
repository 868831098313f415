package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/physics"
	"github.com/san-kum/pendsim/internal/sim"
)

type ConvergencePoint struct {
	Dt    float64 `json:"dt"`
	Steps int     `json:"steps"`
	Error float64 `json:"error"`
}

// Convergence integrates the unit oscillator from (1, 0) up to time total
// at each step size and reports the max-norm error of the final state.
func Convergence(ctx context.Context, factory dynamo.StepperFactory, dts []float64, total float64) ([]ConvergencePoint, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: total time must be positive, got %f", dynamo.ErrInvalidConfig, total)
	}

	osc := physics.NewOscillator()
	x0 := dynamo.State{1, 0}
	results, err := sim.Sweep(ctx, osc, factory, nil, x0, dynamo.Config{Duration: total}, dts)
	if err != nil {
		return nil, err
	}

	points := make([]ConvergencePoint, len(results))
	for i, r := range results {
		tEnd := r.Times[len(r.Times)-1]
		exact := osc.Exact(tEnd, x0[0], x0[1])
		points[i] = ConvergencePoint{
			Dt:    dts[i],
			Steps: r.StepsTaken,
			Error: r.Final().MaxAbsDiff(exact),
		}
	}
	return points, nil
}

// ObservedOrders estimates the order between consecutive points as
// log(e_i/e_{i+1}) / log(h_i/h_{i+1}). A pair with a zero error or equal
// step sizes yields NaN.
func ObservedOrders(points []ConvergencePoint) []float64 {
	if len(points) < 2 {
		return nil
	}
	orders := make([]float64, len(points)-1)
	for i := range orders {
		a, b := points[i], points[i+1]
		if a.Error == 0 || b.Error == 0 || a.Dt == b.Dt {
			orders[i] = math.NaN()
			continue
		}
		orders[i] = math.Log(a.Error/b.Error) / math.Log(a.Dt/b.Dt)
	}
	return orders
}

// Halvings returns n step sizes starting at h0, each half the previous.
func Halvings(h0 float64, n int) []float64 {
	dts := make([]float64, n)
	for i := range dts {
		dts[i] = h0 / math.Pow(2, float64(i))
	}
	return dts
}
