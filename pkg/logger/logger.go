// Package logger holds the progress logging contract shared by the library
// packages, plus a colored terminal implementation for the CLI.
package logger

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// Logger receives progress messages. A nil Logger means silent operation;
// use Safe to obtain a non-nil value.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Infof(string, ...any)  {}
func (Nop) Warnf(string, ...any)  {}
func (Nop) Errorf(string, ...any) {}

// Safe returns l, or Nop when l is nil.
func Safe(l Logger) Logger {
	if l == nil {
		return Nop{}
	}
	return l
}

// Terminal writes colored lines: yellow for info, a warning sign for warnings
// and a red cross for errors.
type Terminal struct {
	Out io.Writer
}

// NewTerminal returns a Terminal logger writing to stdout.
func NewTerminal() *Terminal {
	return &Terminal{Out: os.Stdout}
}

func (l *Terminal) Infof(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(l.Out, format+"\n", args...)
}

func (l *Terminal) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(l.Out, "⚠ "+format+"\n", args...)
}

func (l *Terminal) Errorf(format string, args ...any) {
	color.New(color.FgRed).Fprintf(l.Out, "✗ "+format+"\n", args...)
}
