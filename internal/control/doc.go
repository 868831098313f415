// Package control provides feedback laws that produce the single scalar
// input of a [dynamo.System].
//
// Controllers implement [dynamo.Controller]:
//
//   - [None]: zero input
//   - [PID]: Proportional-Integral-Derivative on one state component
//   - [Feedback]: full-state feedback u = -K(x - target)
//   - [Manual]: externally set input, used by the live view
//
// [Saturate] and [Sum] combine controllers.
//
// # Usage
//
//	ctrl := control.Saturate(control.NewCartPoleFeedback(), 1000)
//	s, _ := sim.New(physics.NewCartPole(), rk, ctrl)
//	// Controller.Compute is called once per step and held for all RK4 stages
package control
