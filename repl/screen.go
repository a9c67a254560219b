package repl

import (
	"fmt"
	"io"
)

// Screen writes user-visible output. Every line first erases the current
// terminal line so printed output never interleaves with the edit line; the
// caller redraws the editor afterwards.
type Screen struct {
	out   io.Writer
	theme Theme
}

// NewScreen constructs a screen writing to out with the given theme.
func NewScreen(out io.Writer, theme Theme) *Screen {
	return &Screen{out: out, theme: theme}
}

// Theme exposes the palette so callers can color prompts consistently.
func (s *Screen) Theme() Theme {
	return s.theme
}

// Printf prints a plain line.
func (s *Screen) Printf(format string, args ...any) {
	fmt.Fprintf(s.out, eraseLine+format+"\n", args...)
}

// Infof prints an informational line.
func (s *Screen) Infof(format string, args ...any) {
	s.colored(s.theme.Info, format, args...)
}

// Warnf prints a warning line.
func (s *Screen) Warnf(format string, args ...any) {
	s.colored(s.theme.Warn, format, args...)
}

// Errorf prints an error line.
func (s *Screen) Errorf(format string, args ...any) {
	s.colored(s.theme.Error, format, args...)
}

// Selff prints the user's own outgoing message line.
func (s *Screen) Selff(format string, args ...any) {
	s.colored(s.theme.Self, format, args...)
}

// Guestf prints an incoming message line.
func (s *Screen) Guestf(format string, args ...any) {
	s.colored(s.theme.Guest, format, args...)
}

func (s *Screen) colored(color string, format string, args ...any) {
	reset := s.theme.Reset
	if color == "" {
		reset = ""
	}
	fmt.Fprintf(s.out, eraseLine+color+format+reset+"\n", args...)
}
