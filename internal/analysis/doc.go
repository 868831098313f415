// Package analysis provides numerical studies built on the steppers and
// stored trajectories.
//
//   - [Convergence]: global error of a stepper on the harmonic oscillator
//     over a range of step sizes
//   - [ObservedOrders]: empirical order of accuracy from a convergence table
//   - [DominantFrequency]: strongest oscillation in a sampled signal
//
// # Order of Accuracy
//
// Halving h should cut the RK4 error by about 2^4:
//
//	f, _ := integrators.Factory("rk4")
//	pts, _ := analysis.Convergence(ctx, f, []float64{0.1, 0.05, 0.025}, 10)
//	orders := analysis.ObservedOrders(pts) // ≈ [4, 4]
package analysis
