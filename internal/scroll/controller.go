package scroll

import (
	"errors"
	"fmt"
	"io"

	"github.com/termpane/termpane/internal/dataset"
)

// State of a scroll session.
type State int

const (
	// StateIdle waits for the next keystroke.
	StateIdle State = iota
	// StateRendering draws the current slice.
	StateRendering
	// StateTerminated has shut the display down; the session is over.
	StateTerminated
)

// Display receives the frames of a scrolling session.
type Display interface {
	// Show renders the slice at the given scroll index under title.
	Show(index int, title string) error
	// Blank clears the display without ending the session.
	Blank() error
	// Close clears and releases the display at session end.
	Close() error
}

// Controller steps one dimension of a slice selection under
// single-keystroke control. It owns the display exclusively for the
// session: exactly one byte of input is outstanding at a time and a
// keystroke is never processed while a frame is being drawn.
type Controller struct {
	display Display
	dim     dataset.Dimension
	title   string
	input   io.Reader
	index   int
	state   State
}

// NewController prepares a session over dim starting at the given
// index, which is clamped to the dimension's bounds.
func NewController(display Display, dim dataset.Dimension, title string, input io.Reader, start int) (*Controller, error) {
	if dim.Len() == 0 {
		return nil, errors.New("scroll: scroll dimension has no coordinates")
	}
	return &Controller{
		display: display,
		dim:     dim,
		title:   title,
		input:   input,
		index:   clamp(start, 0, dim.Len()-1),
	}, nil
}

// State returns the session state.
func (c *Controller) State() State { return c.state }

// Index returns the current scroll index.
func (c *Controller) Index() int { return c.index }

// Run drives the keystroke loop until quit or error. The first
// iteration acts as a forward key that does not advance, so the
// starting index is drawn before any input is read. After that each
// iteration blocks on one byte of input. A keystroke that resolves to
// the index already shown is skipped unless it is a resume, which
// redraws unconditionally. End of input shuts the session down the
// same way a quit key does.
func (c *Controller) Run() error {
	first := true
	var buf [1]byte
	for {
		act := ActionForward
		if !first {
			if _, err := io.ReadFull(c.input, buf[:]); err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
					act = ActionQuit
				} else {
					c.state = StateTerminated
					return fmt.Errorf("scroll: reading keystroke: %w", err)
				}
			} else {
				act = DecodeKey(buf[0])
			}
		}

		switch act {
		case ActionNone:
			continue
		case ActionPause:
			if err := c.display.Blank(); err != nil {
				c.state = StateTerminated
				return err
			}
			continue
		case ActionQuit:
			c.state = StateTerminated
			return c.display.Close()
		}

		next := c.index
		switch act {
		case ActionForward:
			if !first {
				next++
			}
		case ActionBackward:
			next--
		}
		next = clamp(next, 0, c.dim.Len()-1)
		if next == c.index && act != ActionResume && !first {
			// Position unchanged, skip the redraw.
			continue
		}

		c.index = next
		first = false
		c.state = StateRendering
		if err := c.display.Show(c.index, c.frameTitle()); err != nil {
			c.state = StateTerminated
			return err
		}
		c.state = StateIdle
	}
}

// frameTitle suffixes the base title with the 1-based position and
// the scroll coordinate's current value.
func (c *Controller) frameTitle() string {
	return fmt.Sprintf("%s [%d/%d] %s=%.6g",
		c.title, c.index+1, c.dim.Len(), c.dim.Name, c.dim.Coords[c.index])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
