// Package app implements the application layer for dupes.
package app

import (
	"context"
	"io"
	"os"
	"time"

	"go.trai.ch/dupes/internal/adapters/render"
	"go.trai.ch/dupes/internal/core/domain"
	"go.trai.ch/dupes/internal/core/ports"
	"go.trai.ch/dupes/internal/engine/detector"
	"go.trai.ch/dupes/internal/ui/output"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	reader       ports.LockfileReader
	configLoader ports.ConfigLoader
	detector     *detector.Detector
	logger       ports.Logger
	stdout       io.Writer
}

// New creates a new App instance.
func New(
	reader ports.LockfileReader,
	loader ports.ConfigLoader,
	det *detector.Detector,
	log ports.Logger,
) *App {
	return &App{
		reader:       reader,
		configLoader: loader,
		detector:     det,
		logger:       log,
		stdout:       os.Stdout,
	}
}

// WithStdout redirects report output. Used for testing.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// verboser is implemented by loggers that can raise their verbosity.
type verboser interface {
	SetVerbose(bool)
}

// CheckOptions configuration for the Check method.
type CheckOptions struct {
	LockfilePath string
	Offline      bool
	Output       string
	Color        string
	Verbose      bool
	Timeout      time.Duration
	Concurrency  int
}

// Check runs the duplicate analysis: read the lock file, build the index,
// detect duplicates, and render the report. Lock file errors are fatal;
// everything else degrades to diagnostics.
func (a *App) Check(ctx context.Context, opts CheckOptions) error {
	if v, ok := a.logger.(verboser); ok {
		v.SetVerbose(opts.Verbose)
	}

	// 1. Resolve settings (defaults <- dupes.yaml <- flags)
	settings, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if opts.Offline {
		settings.Offline = true
	}
	if opts.Timeout > 0 {
		settings.Timeout = opts.Timeout
	}
	if opts.Concurrency > 0 {
		settings.Concurrency = opts.Concurrency
	}

	renderer, err := a.newRenderer(opts)
	if err != nil {
		return err
	}

	// 2. Parse the lock file
	records, err := a.reader.Read(opts.LockfilePath)
	if err != nil {
		return err
	}

	// 3. Build the index and detect duplicates
	ix := domain.BuildIndex(records)

	report, err := a.detector.Detect(ctx, ix, settings)
	if err != nil {
		return err
	}

	// 4. Surface diagnostics, then render
	for _, diag := range report.Diagnostics {
		switch diag.Kind {
		case domain.DiagUnresolvedDependency:
			a.logger.Warn("dependency " + diag.Package + " not found (declared by " + diag.DeclaredBy + ")")
		case domain.DiagInvalidVersion:
			a.logger.Warn("skipped " + diag.Package + ": " + diag.Detail)
		}
	}

	return renderer.Render(report)
}

// newRenderer picks the output renderer from the options.
func (a *App) newRenderer(opts CheckOptions) (ports.Renderer, error) {
	switch opts.Output {
	case "", "text":
		return render.NewText(a.stdout, output.ColorMode(opts.Color)), nil
	case "json":
		return render.NewJSON(a.stdout), nil
	default:
		return nil, zerr.With(domain.ErrUnknownOutputFormat, "output", opts.Output)
	}
}
