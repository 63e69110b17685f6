// Package logging builds the hclog loggers used across artforge.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/term"
)

// Options controls logger construction.
type Options struct {
	Verbose bool
	Quiet   bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New creates the root "artforge" logger. Verbose enables debug output and
// Quiet limits output to errors; Quiet wins when both are set. Colour is
// enabled only when writing to a terminal.
func New(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := hclog.Info
	switch {
	case opts.Quiet:
		level = hclog.Error
	case opts.Verbose:
		level = hclog.Debug
	}

	colour := hclog.ColorOff
	if IsTerminal(out) {
		colour = hclog.AutoColor
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:            "artforge",
		Output:          out,
		Level:           level,
		Color:           colour,
		DisableTime:     true,
		ColorHeaderOnly: true,
	})
}

// Discard returns a logger that drops everything, for tests and plugins
// running without --verbose.
func Discard() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "artforge",
		Output: io.Discard,
		Level:  hclog.Off,
	})
}

// IsTerminal reports whether w is a file descriptor attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the column count of the terminal behind w, or
// fallback when w is not a terminal.
func TerminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
