// Package scroll drives an interactive slice viewer with single raw
// keystrokes.
//
// A [Controller] steps one dimension of a slice selection through a
// blocking read-one-byte loop: forward and backward keys move the
// index (clamped to the dimension), resume redraws, pause blanks the
// display, and quit shuts the session down. Frames go to a [Display],
// which the controller owns exclusively for the session.
//
// # Keys
//
//	f, space             step forward
//	b, backspace, delete step backward
//	r                    redraw the current slice
//	p                    blank the display
//	q, ESC, ^C, ^D       quit
//
// Raw terminal input is scoped through [TTY]: acquired before the
// loop, restored on every exit path.
package scroll
