package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/pendsim/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

func oscillator(y []float64, u float64, i int) float64 {
	if i == 0 {
		return y[1]
	}
	return -y[0] + u
}

func TestRK4Accuracy(t *testing.T) {
	integ, err := NewRK4(2)
	if err != nil {
		t.Fatalf("new rk4: %v", err)
	}

	x := []float64{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		if err := integ.Step(oscillator, x, dt, 0); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-9 {
		t.Errorf("position error too large: got %.12f, expected %.12f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-9 {
		t.Errorf("velocity error too large: got %.12f, expected %.12f", x[1], expectedV)
	}
}

func TestNewRK4InvalidDimension(t *testing.T) {
	for _, n := range []int{0, -1, -10} {
		r, err := NewRK4(n)
		if !errors.Is(err, dynamo.ErrInvalidDimension) {
			t.Errorf("NewRK4(%d): expected ErrInvalidDimension, got %v", n, err)
		}
		if r != nil {
			t.Errorf("NewRK4(%d): expected nil integrator", n)
		}
	}
}

func TestRK4DimensionMismatch(t *testing.T) {
	tests := []struct {
		name string
		dim  int
		y    []float64
	}{
		{"shorter", 2, []float64{1}},
		{"longer", 2, []float64{1, 2, 3}},
		{"empty", 1, []float64{}},
		{"nil", 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integ, err := NewRK4(tt.dim)
			if err != nil {
				t.Fatalf("new rk4: %v", err)
			}
			before := append([]float64(nil), tt.y...)
			calls := 0
			df := func(y []float64, u float64, i int) float64 {
				calls++
				return 1
			}

			err = integ.Step(df, tt.y, 0.1, 0)
			if !errors.Is(err, dynamo.ErrDimensionMismatch) {
				t.Fatalf("expected ErrDimensionMismatch, got %v", err)
			}
			if !floats.Equal(before, tt.y) {
				t.Errorf("state mutated on failure: before %v, after %v", before, tt.y)
			}
			if calls != 0 {
				t.Errorf("derivative evaluated %d times on failure", calls)
			}
		})
	}
}

func TestRK4StageOrder(t *testing.T) {
	integ, _ := NewRK4(3)
	var seen []int
	df := func(y []float64, u float64, i int) float64 {
		seen = append(seen, i)
		return 0
	}

	if err := integ.Step(df, []float64{0, 0, 0}, 0.1, 0); err != nil {
		t.Fatalf("step: %v", err)
	}

	want := []int{0, 1, 2, 0, 1, 2, 0, 1, 2, 0, 1, 2}
	if len(seen) != len(want) {
		t.Fatalf("expected %d evaluations, got %d", len(want), len(seen))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("evaluation order %v, want %v", seen, want)
		}
	}
}

func TestRK4TrialStates(t *testing.T) {
	// dy/dt = 1 gives trial states y+h/2, y+h/2, y+h for stages 2-4.
	integ, _ := NewRK4(1)
	var trials []float64
	df := func(y []float64, u float64, i int) float64 {
		trials = append(trials, y[0])
		return 1
	}

	y := []float64{2}
	if err := integ.Step(df, y, 0.5, 0); err != nil {
		t.Fatalf("step: %v", err)
	}

	want := []float64{2, 2.25, 2.25, 2.5}
	if !floats.EqualApprox(trials, want, 1e-15) {
		t.Errorf("trial states %v, want %v", trials, want)
	}
	if math.Abs(y[0]-2.5) > 1e-15 {
		t.Errorf("final state %v, want 2.5", y[0])
	}
}

func TestRK4InputHeldConstant(t *testing.T) {
	integ, _ := NewRK4(2)
	df := func(y []float64, u float64, i int) float64 {
		if u != 3.5 {
			t.Fatalf("stage saw u=%v, want 3.5", u)
		}
		return u
	}

	y := []float64{0, 1}
	if err := integ.Step(df, y, 0.2, 3.5); err != nil {
		t.Fatalf("step: %v", err)
	}
	if !floats.EqualApprox(y, []float64{0.7, 1.7}, 1e-12) {
		t.Errorf("got %v, want [0.7 1.7]", y)
	}
}

func TestRK4DerivativePanicPropagates(t *testing.T) {
	integ, _ := NewRK4(1)
	defer func() {
		if recover() == nil {
			t.Error("expected panic from derivative to propagate")
		}
	}()
	_ = integ.Step(func(y []float64, u float64, i int) float64 {
		panic("domain error")
	}, []float64{1}, 0.1, 0)
}

func TestRK4ZeroAllocations(t *testing.T) {
	integ, _ := NewRK4(4)
	y := []float64{0.1, 0.2, 0.3, 0.4}
	var df dynamo.DerivativeFunc = func(y []float64, u float64, i int) float64 {
		return -y[i] + u
	}

	allocs := testing.AllocsPerRun(100, func() {
		_ = integ.Step(df, y, 0.01, 0.5)
	})
	if allocs != 0 {
		t.Errorf("expected zero allocations per step, got %v", allocs)
	}
}

func TestEulerStep(t *testing.T) {
	integ, err := NewEuler(2)
	if err != nil {
		t.Fatalf("new euler: %v", err)
	}

	y := []float64{1, 0}
	if err := integ.Step(oscillator, y, 0.1, 0); err != nil {
		t.Fatalf("step: %v", err)
	}
	// Both components use the derivative at the original state.
	if !floats.EqualApprox(y, []float64{1, -0.1}, 1e-15) {
		t.Errorf("got %v, want [1 -0.1]", y)
	}

	if err := integ.Step(oscillator, []float64{1}, 0.1, 0); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := NewEuler(0); !errors.Is(err, dynamo.ErrInvalidDimension) {
		t.Errorf("expected ErrInvalidDimension, got %v", err)
	}
}

func TestFactory(t *testing.T) {
	for _, name := range Names() {
		f, err := Factory(name)
		if err != nil {
			t.Fatalf("factory %s: %v", name, err)
		}
		s, err := f(3)
		if err != nil {
			t.Fatalf("build %s: %v", name, err)
		}
		if s.Dim() != 3 {
			t.Errorf("%s: Dim() = %d, want 3", name, s.Dim())
		}
	}

	if _, err := Factory("rk45"); !errors.Is(err, dynamo.ErrUnknownStepper) {
		t.Errorf("expected ErrUnknownStepper, got %v", err)
	}

	f, _ := Factory("rk4")
	if s, err := f(0); err == nil || s != nil {
		t.Errorf("expected error and nil stepper for dimension 0, got %v, %v", s, err)
	}
}
