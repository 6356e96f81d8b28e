// Package logger provides the component logger used by the CLI
// commands. Debug and Info lines appear only while the verbose check
// reports true; Warn and Error always print.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Logger writes timestamped component log lines.
type Logger struct {
	component string
	verbose   func() bool
	w         io.Writer
}

// New returns a logger for component writing to stderr. A nil verbose
// check disables Debug and Info permanently.
func New(component string, verbose func() bool) *Logger {
	return &Logger{component: component, verbose: verbose, w: os.Stderr}
}

// WithComponent returns a logger sharing the verbose check and writer
// under a different component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{component: component, verbose: l.verbose, w: l.w}
}

// Debug logs a debug message when verbose.
func (l *Logger) Debug(msg string, args ...any) {
	if l.verbose != nil && l.verbose() {
		l.log("DEBUG", msg, args...)
	}
}

// Info logs an informational message when verbose.
func (l *Logger) Info(msg string, args ...any) {
	if l.verbose != nil && l.verbose() {
		l.log("INFO", msg, args...)
	}
}

// Warn logs a warning unconditionally.
func (l *Logger) Warn(msg string, args ...any) {
	l.log("WARN", msg, args...)
}

// Error logs an error unconditionally.
func (l *Logger) Error(msg string, args ...any) {
	l.log("ERROR", msg, args...)
}

func (l *Logger) log(level, msg string, args ...any) {
	component := l.component
	if component == "" {
		component = "main"
	}
	line := fmt.Sprintf("[%s] %s [%s] %s\n",
		time.Now().Format("15:04:05.000"), level, component, fmt.Sprintf(msg, args...))
	_, _ = io.WriteString(l.w, line)
}
