package pane

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variable names exported by the host terminal into every
// shell it spawns. Their presence is how helper commands discover that
// they are running inside a pane-capable terminal.
const (
	EnvCookie     = "TERMPANE_COOKIE"
	EnvPath       = "TERMPANE_PATH"
	EnvURL        = "TERMPANE_URL"
	EnvDimensions = "TERMPANE_DIMENSIONS"
	EnvAPI        = "TERMPANE_API"
	EnvExport     = "TERMPANE_EXPORT"
)

// APIVersion is the newest revision of the payload convention this
// package knows how to populate.
const APIVersion = 1

// Dimensions describes the host pane geometry: character cells plus an
// optional pixel size, encoded as "80x24" or "80x24;1024x768".
type Dimensions struct {
	Cols   int
	Rows   int
	Width  int // pixels, 0 when unknown
	Height int // pixels, 0 when unknown
}

// ParseDimensions decodes the TERMPANE_DIMENSIONS encoding.
func ParseDimensions(s string) (Dimensions, error) {
	var d Dimensions
	if s == "" {
		return d, fmt.Errorf("pane: empty dimensions")
	}
	cells, pixels, _ := strings.Cut(s, ";")
	var err error
	if d.Cols, d.Rows, err = splitPair(cells); err != nil {
		return d, fmt.Errorf("pane: bad dimensions %q: %w", s, err)
	}
	if pixels != "" {
		if d.Width, d.Height, err = splitPair(pixels); err != nil {
			return d, fmt.Errorf("pane: bad dimensions %q: %w", s, err)
		}
	}
	return d, nil
}

func splitPair(s string) (a, b int, err error) {
	first, second, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("missing %q separator", "x")
	}
	if a, err = strconv.Atoi(first); err != nil {
		return 0, 0, err
	}
	if b, err = strconv.Atoi(second); err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// Env carries the host terminal context read from the process
// environment. A zero Env means the command is running in an ordinary
// terminal and must fall back to plain output.
type Env struct {
	Cookie     string
	Path       string // "host/session"
	URL        string
	API        int
	Dimensions Dimensions
	Export     bool
}

// FromOS reads the pane environment. Malformed optional fields
// (dimensions, API version) are ignored rather than treated as fatal:
// a half-set environment still identifies the host.
func FromOS() Env {
	env := Env{
		Cookie: os.Getenv(EnvCookie),
		Path:   os.Getenv(EnvPath),
		URL:    os.Getenv(EnvURL),
		Export: os.Getenv(EnvExport) != "",
	}
	if v := os.Getenv(EnvAPI); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			env.API = n
		}
	}
	if v := os.Getenv(EnvDimensions); v != "" {
		if d, err := ParseDimensions(v); err == nil {
			env.Dimensions = d
		}
	}
	return env
}

// Active reports whether payloads emitted by this process will be
// honored by a host terminal.
func (e Env) Active() bool {
	return e.Cookie != "" && e.Path != ""
}

// Host returns the host component of the terminal path.
func (e Env) Host() string {
	host, _, _ := strings.Cut(e.Path, "/")
	return host
}

// Session returns the session component of the terminal path.
func (e Env) Session() string {
	_, session, _ := strings.Cut(e.Path, "/")
	return session
}
