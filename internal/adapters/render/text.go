// Package render implements the Renderer port: plain or colorized text in
// the original line-oriented layout, and structured JSON.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/dupes/internal/core/domain"
	"go.trai.ch/dupes/internal/ui/output"
	"go.trai.ch/dupes/internal/ui/style"
	"go.trai.ch/zerr"
)

// TextRenderer writes the report as human-readable lines:
//
//	serde (1.0.100) 2 packages (latest 1.0.210)
//	  - foo (0.1.0) -> app (1.0.0)
type TextRenderer struct {
	w io.Writer

	name    lipgloss.Style
	stale   lipgloss.Style
	latest  lipgloss.Style
	chain   lipgloss.Style
	cycleMk lipgloss.Style
}

// NewText creates a TextRenderer writing to w with the given color mode.
// The color decision is resolved here, once, and baked into the styles.
func NewText(w io.Writer, mode output.ColorMode) *TextRenderer {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(output.Profile(mode)), termenv.WithTTY(true))

	return &TextRenderer{
		w:       w,
		name:    r.NewStyle().Bold(true),
		stale:   r.NewStyle().Foreground(style.Red),
		latest:  r.NewStyle().Foreground(style.Green),
		chain:   r.NewStyle().Foreground(style.Slate),
		cycleMk: r.NewStyle().Foreground(style.Yellow),
	}
}

// Render writes the report.
func (t *TextRenderer) Render(report *domain.Report) error {
	if len(report.Duplicates) == 0 {
		if _, err := fmt.Fprintln(t.w, "no duplicate dependencies found"); err != nil {
			return zerr.Wrap(err, domain.ErrRenderFailed.Error())
		}
		return nil
	}

	for _, occ := range report.Duplicates {
		header := fmt.Sprintf("%s (%s) %d packages (latest %s)",
			t.name.Render(occ.Package),
			t.stale.Render(occ.Version),
			len(occ.Users),
			t.latest.Render(occ.Latest),
		)
		if _, err := fmt.Fprintln(t.w, header); err != nil {
			return zerr.Wrap(err, domain.ErrRenderFailed.Error())
		}

		for _, user := range occ.Users {
			line := "  - " + t.chain.Render(strings.Join(user.Chain, " "+style.Arrow+" "))
			if user.Cycle {
				line += " " + t.cycleMk.Render(style.Arrow+" [cycle]")
			}
			if _, err := fmt.Fprintln(t.w, line); err != nil {
				return zerr.Wrap(err, domain.ErrRenderFailed.Error())
			}
		}
	}

	return nil
}
