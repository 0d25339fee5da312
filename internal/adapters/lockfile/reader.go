// Package lockfile implements the LockfileReader port for Cargo.lock files.
package lockfile

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/dupes/internal/core/domain"
	"go.trai.ch/dupes/internal/core/ports"
	"go.trai.ch/zerr"
)

// Reader implements ports.LockfileReader for the Cargo.lock TOML format.
type Reader struct {
	logger ports.Logger
}

// NewReader creates a new Reader with the given logger.
func NewReader(logger ports.Logger) *Reader {
	return &Reader{logger: logger}
}

// lockfileDoc mirrors the on-disk Cargo.lock schema.
type lockfileDoc struct {
	Version  int            `toml:"version"`
	Packages []packageEntry `toml:"package"`
}

type packageEntry struct {
	Name         string   `toml:"name"`
	Version      string   `toml:"version"`
	Source       string   `toml:"source"`
	Checksum     string   `toml:"checksum"`
	Dependencies []string `toml:"dependencies"`
}

// Read parses the lock file at path into package records.
//
// Cargo writes a dependency as a bare name when only one version of that
// name exists in the file, and as "name version" (optionally followed by a
// parenthesized source) when the name is ambiguous. Bare names are resolved
// against the file's own package set; references that stay ambiguous or
// point outside the set keep an empty version and surface later as
// unresolved-edge diagnostics.
func (r *Reader) Read(path string) ([]domain.PackageRecord, error) {
	//nolint:gosec // Path is user-supplied by design; this tool reads lock files.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrLockfileNotFound, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileNotFound.Error()), "path", path)
	}

	var doc lockfileDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileParseFailed.Error()), "path", path)
	}

	// Versions per name, used to resolve bare dependency references.
	versionsByName := make(map[string][]string)
	for _, pkg := range doc.Packages {
		versionsByName[pkg.Name] = append(versionsByName[pkg.Name], pkg.Version)
	}

	records := make([]domain.PackageRecord, 0, len(doc.Packages))
	for _, pkg := range doc.Packages {
		if pkg.Name == "" {
			return nil, zerr.With(domain.ErrEmptyPackageName, "path", path)
		}

		deps := make([]domain.DependencyRef, 0, len(pkg.Dependencies))
		for _, raw := range pkg.Dependencies {
			name, version := splitDependency(raw)
			if version == "" {
				if versions := versionsByName[name]; len(versions) == 1 {
					version = versions[0]
				}
			}
			deps = append(deps, domain.DependencyRef{
				Name:    domain.Intern(name),
				Version: domain.Intern(version),
			})
		}

		records = append(records, domain.PackageRecord{
			Name:         domain.Intern(pkg.Name),
			Version:      domain.Intern(pkg.Version),
			Dependencies: deps,
		})
	}

	r.logger.Debug("parsed lock file " + path)
	return records, nil
}

// splitDependency splits a Cargo.lock dependency string into name and
// version. Forms: "name", "name version", "name version (source)".
func splitDependency(raw string) (name, version string) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "", ""
	}
	name = fields[0]
	if len(fields) > 1 && !strings.HasPrefix(fields[1], "(") {
		version = fields[1]
	}
	return name, version
}
