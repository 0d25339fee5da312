package ports

import "go.trai.ch/dupes/internal/core/domain"

// Renderer defines the interface for writing a report to the user.
type Renderer interface {
	// Render writes the report to the renderer's output.
	Render(report *domain.Report) error
}
