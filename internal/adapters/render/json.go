package render

import (
	"encoding/json"
	"io"

	"go.trai.ch/dupes/internal/core/domain"
	"go.trai.ch/zerr"
)

// JSONRenderer writes the report as indented JSON, suitable for piping into
// other tooling.
type JSONRenderer struct {
	w io.Writer
}

// NewJSON creates a JSONRenderer writing to w.
func NewJSON(w io.Writer) *JSONRenderer {
	return &JSONRenderer{w: w}
}

// Render writes the report.
func (j *JSONRenderer) Render(report *domain.Report) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return zerr.Wrap(err, domain.ErrRenderFailed.Error())
	}
	return nil
}
