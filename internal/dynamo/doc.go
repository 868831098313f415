// Package dynamo provides core simulation primitives for single-input
// dynamical systems.
//
// The package defines the fundamental interfaces and types shared by the
// models, steppers, controllers and the simulation driver:
//
//   - [State]: vector representing system state
//   - [DerivativeFunc]: the per-component right-hand side dy_i/dt = f(y, u, i)
//   - [System]: interface for ODE models
//   - [Stepper]: fixed-step numerical integrator interface
//   - [Controller]: feedback law producing the scalar input u
//
// # Example
//
//	cp := physics.NewCartPole()
//	rk, _ := integrators.NewRK4(cp.StateDim())
//	y := []float64{0, 0, 0.1, 0}
//	for i := 0; i < 1000; i++ {
//	    if err := rk.Step(dynamo.Func(cp), y, 0.001, 0); err != nil {
//	        return err
//	    }
//	}
//
// # Thread Safety
//
// Steppers own scratch buffers that every Step overwrites. A Stepper must
// not be shared between goroutines without external locking; build one per
// goroutine with a [StepperFactory] instead.
package dynamo
