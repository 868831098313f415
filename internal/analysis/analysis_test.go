package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/integrators"
)

func TestConvergenceRK4IsFourthOrder(t *testing.T) {
	f, err := integrators.Factory("rk4")
	if err != nil {
		t.Fatal(err)
	}

	points, err := Convergence(context.Background(), f, Halvings(0.1, 3), 10)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i < len(points); i++ {
		if points[i].Error >= points[i-1].Error {
			t.Errorf("error did not shrink: %v", points)
		}
	}
	for i, p := range ObservedOrders(points) {
		if math.Abs(p-4) > 0.3 {
			t.Errorf("order %d = %.3f, want ~4", i, p)
		}
	}
}

func TestConvergenceEulerIsFirstOrder(t *testing.T) {
	f, _ := integrators.Factory("euler")

	points, err := Convergence(context.Background(), f, Halvings(0.001, 3), 1)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range ObservedOrders(points) {
		if math.Abs(p-1) > 0.1 {
			t.Errorf("order %d = %.3f, want ~1", i, p)
		}
	}
}

func TestConvergenceInvalid(t *testing.T) {
	f, _ := integrators.Factory("rk4")
	if _, err := Convergence(context.Background(), f, []float64{0.1}, 0); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestObservedOrders(t *testing.T) {
	points := []ConvergencePoint{
		{Dt: 0.2, Error: 16},
		{Dt: 0.1, Error: 1},
		{Dt: 0.05, Error: 0},
	}
	orders := ObservedOrders(points)
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if math.Abs(orders[0]-4) > 1e-12 {
		t.Errorf("order = %v, want 4", orders[0])
	}
	if !math.IsNaN(orders[1]) {
		t.Errorf("zero error should give NaN, got %v", orders[1])
	}
	if ObservedOrders(points[:1]) != nil {
		t.Error("single point should give no orders")
	}
}

func TestHalvings(t *testing.T) {
	got := Halvings(0.4, 3)
	want := []float64{0.4, 0.2, 0.1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Halvings[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDominantFrequency(t *testing.T) {
	dt := 0.01
	n := 1000
	data := make([]float64, n)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*2.0*float64(i)*dt)
	}

	freq, ps, err := DominantFrequency(data, dt)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(freq-2.0) > 0.11 {
		t.Errorf("dominant frequency = %v, want 2", freq)
	}
	if len(ps) != n/2+1 {
		t.Errorf("spectrum length = %d, want %d", len(ps), n/2+1)
	}

	if _, _, err := DominantFrequency(data[:2], dt); err == nil {
		t.Error("expected error for too few samples")
	}
}
