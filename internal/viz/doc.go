// Package viz renders split-tree frames in the terminal.
//
// Triangles are projected through a [Camera] and their edges are rasterised
// onto a braille [Canvas], two by four dots per cell, with each cell tinted by
// the additive sum of the colours drawn into it. [Terminal] wraps this as a
// frame.Backend, [Model] is the Bubble Tea program that drives a frame.Driver
// live, and the preset picker returned by [NewInteractiveApp] lets the user
// tune parameters before starting.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart with the same seed
//	N     - Restart with the next seed
//	x/y/z - Rotate (shift reverses)
//	+/-   - Zoom
//	A     - Toggle auto-rotation
//	B     - Toggle bounding box
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// GIF recordings are written to splitbox.gif in the current directory.
package viz
