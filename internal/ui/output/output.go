// Package output provides utilities for creating termenv.Output with
// consistent color profile and TTY handling across the CLI.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ColorMode is the user-facing color selection.
type ColorMode string

const (
	// ColorAuto detects the terminal's capabilities, honoring NO_COLOR.
	ColorAuto ColorMode = "auto"
	// ColorAlways forces ANSI colors even when output is not a terminal.
	ColorAlways ColorMode = "always"
	// ColorNever disables colors entirely.
	ColorNever ColorMode = "never"
)

// Profile resolves a ColorMode into a termenv profile. The decision is made
// once at startup and threaded into the renderer rather than consulted as
// ambient global state.
func Profile(mode ColorMode) termenv.Profile {
	switch mode {
	case ColorAlways:
		return termenv.ANSI
	case ColorNever:
		return termenv.Ascii
	default:
		if os.Getenv("NO_COLOR") != "" {
			return termenv.Ascii
		}
		return termenv.EnvColorProfile()
	}
}

// New creates a new termenv.Output writing to w with the resolved profile.
func New(w io.Writer, mode ColorMode, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(Profile(mode)),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
