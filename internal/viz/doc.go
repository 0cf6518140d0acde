// Package viz renders a running simulation in the terminal.
//
// The live view is a Bubble Tea program drawing bodies on a braille
// [Canvas], each in its own color, with fading trails and an energy graph:
//
//   - [Model]: live view of one simulation
//   - [Picker]: preset menu that starts a live view
//   - [Transform]: maps a point between two rectangles
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset bodies to their initial state
//	M     - Cycle integration method
//	S     - Toggle softening
//	O     - Toggle update ordering
//	+/-   - Zoom in/out
//	Arrows- Pan
//	F/D   - More/fewer steps per frame
//	C     - Center on the center of mass
//	L     - Toggle trails
//	T     - Cycle color themes
//	?     - Help overlay
package viz
