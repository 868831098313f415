package integrators

import "testing"

func nbody5(x []float64, u float64, i int) float64 {
	if i%4 < 2 {
		return x[i+2]
	}
	return -x[i-2] * 0.1
}

func BenchmarkEuler(b *testing.B) {
	integrator, _ := NewEuler(2)
	x := []float64{1.0, 0.0}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = integrator.Step(oscillator, x, 0.01, 0)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator, _ := NewRK4(2)
	x := []float64{1.0, 0.0}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = integrator.Step(oscillator, x, 0.01, 0)
	}
}

func BenchmarkRK4_NBody5(b *testing.B) {
	integrator, _ := NewRK4(20)
	x := make([]float64, 20)
	for i := range x {
		x[i] = float64(i) * 0.1
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = integrator.Step(nbody5, x, 0.001, 0)
	}
}
