// Package detector implements the duplicate version analysis over the
// dependency index.
package detector

import (
	"context"
	"slices"

	"go.trai.ch/dupes/internal/core/domain"
	"go.trai.ch/dupes/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Detector finds package names pinned at more than one version and explains,
// per stale pin, which dependents force it into the graph.
type Detector struct {
	registry ports.Registry
	logger   ports.Logger
}

// New creates a new Detector. The registry may be nil when every run is
// expected to be offline.
func New(registry ports.Registry, logger ports.Logger) *Detector {
	return &Detector{
		registry: registry,
		logger:   logger,
	}
}

// candidate is a duplicated package name awaiting its reference version.
type candidate struct {
	name    string
	entries []*domain.VersionEntry

	// reference starts as the highest locally observed version and is
	// replaced by the registry's newest version when a lookup succeeds.
	reference string
}

// Detect produces the duplicate report for the index.
//
// Names are processed in lexicographic order. A name with a single version
// can never be a duplicate and is skipped. A name whose version strings fail
// semver parsing is skipped with a diagnostic; the rest of the run continues.
//
// The reference version per name is the registry's newest version when
// online, or the highest version present in the lock file when offline or
// when the lookup fails. An occurrence is emitted for every version entry
// that does not equal the reference.
func (d *Detector) Detect(ctx context.Context, ix *domain.DependencyIndex, settings domain.Settings) (*domain.Report, error) {
	report := &domain.Report{
		Diagnostics: slices.Clone(ix.Diagnostics()),
	}

	var candidates []*candidate
	for _, name := range ix.Names() {
		entries := ix.Versions(name)
		if len(entries) < 2 {
			continue
		}
		localMax, err := domain.MaxVersion(entries)
		if err != nil {
			report.Diagnostics = append(report.Diagnostics, domain.Diagnostic{
				Kind:    domain.DiagInvalidVersion,
				Package: name,
				Detail:  err.Error(),
			})
			d.logger.Warn("skipping analysis of " + name + ": unparseable version")
			continue
		}
		candidates = append(candidates, &candidate{
			name:      name,
			entries:   entries,
			reference: localMax,
		})
	}

	if !settings.Offline && d.registry != nil {
		if err := d.resolveLatest(ctx, candidates, settings); err != nil {
			return nil, err
		}
	}

	for _, c := range candidates {
		for _, entry := range c.entries {
			if entry.Version.String() == c.reference {
				continue
			}
			occ := domain.DuplicateOccurrence{
				Package: c.name,
				Version: entry.Version.String(),
				Latest:  c.reference,
				Users:   make([]domain.ChainUser, 0, len(entry.Dependents)),
			}
			for _, depIdx := range entry.Dependents {
				rec := ix.Record(depIdx)
				chain, cycle := ix.TraceChain(rec)
				occ.Users = append(occ.Users, domain.ChainUser{
					Name:    rec.Name.String(),
					Version: rec.Version.String(),
					Chain:   chain,
					Cycle:   cycle,
				})
			}
			report.Duplicates = append(report.Duplicates, occ)
		}
	}

	return report, nil
}

// resolveLatest queries the registry for every duplicated name concurrently,
// bounded by the configured concurrency. Lookups are independent; each
// goroutine writes only its own candidate, and results join back into the
// sorted iteration before reporting. Any lookup failure, timeout, or
// unparseable version falls back to the local maximum for that name alone.
// Cancellation abandons in-flight lookups without touching completed ones.
func (d *Detector) resolveLatest(ctx context.Context, candidates []*candidate, settings domain.Settings) error {
	g, gctx := errgroup.WithContext(ctx)

	limit := settings.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for _, c := range candidates {
		g.Go(func() error {
			reqCtx := gctx
			if settings.Timeout > 0 {
				var cancel context.CancelFunc
				reqCtx, cancel = context.WithTimeout(gctx, settings.Timeout)
				defer cancel()
			}

			latest, err := d.registry.Latest(reqCtx, c.name)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				d.logger.Debug("registry lookup for " + c.name + " failed, using local maximum " + c.reference)
				return nil
			}
			if _, err := domain.ParseVersion(latest); err != nil {
				d.logger.Debug("registry returned unparseable version for " + c.name + ", using local maximum " + c.reference)
				return nil
			}
			c.reference = latest
			return nil
		})
	}

	return g.Wait()
}
