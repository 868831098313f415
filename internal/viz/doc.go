// Package viz draws a cart-pole in the terminal with Bubble Tea.
//
// The pole and cart are drawn on a braille [Canvas]. The side panel shows
// the state, the applied force and a rolling plot of the pole angle.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset to the initial state
//	←/→   - Push the cart for one frame
//	Q     - Quit
package viz
