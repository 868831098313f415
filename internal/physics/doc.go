// Package physics provides single-input dynamical system models.
//
// Each model implements [dynamo.System]: its Derivative method returns one
// component of dy/dt per call, so a method value can be handed straight to
// a [dynamo.Stepper]:
//
//   - [CartPole]: damped cart with a hinged pole, driven by a cart force
//   - [Pendulum]: damped rigid pendulum, driven by a torque
//   - [Oscillator]: harmonic oscillator with a closed-form solution
//   - [Decay]: scalar linear decay with a closed-form solution
//
// All models implement [dynamo.Configurable] for parameter overrides and
// [dynamo.Hamiltonian] where an energy is defined.
package physics
