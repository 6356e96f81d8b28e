package scroll

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// TTY scopes the terminal's raw input mode. The raw state is a scoped
// resource: acquired before the keystroke loop starts and restored on
// every exit path, including signal handlers.
type TTY struct {
	fd    int
	state *term.State
	once  sync.Once
}

// MakeRaw switches f into raw (unbuffered, unechoed) input mode when
// it is a terminal. When f is not a terminal the guard is inert, so
// piped input works without special cases.
func MakeRaw(f *os.File) (*TTY, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return &TTY{fd: -1}, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("scroll: entering raw mode: %w", err)
	}
	return &TTY{fd: fd, state: state}, nil
}

// Restore reinstates the terminal mode saved by MakeRaw. It is safe
// to call from both a defer and a signal handler; only the first call
// acts.
func (t *TTY) Restore() {
	t.once.Do(func() {
		if t.state != nil {
			term.Restore(t.fd, t.state)
		}
	})
}
