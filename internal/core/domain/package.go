// Package domain contains the core domain models and analysis logic for the
// duplicate dependency report.
package domain

// DependencyRef references another resolved package by exact name and version.
type DependencyRef struct {
	// Name is the referenced package name.
	Name InternedString

	// Version is the exact resolved version of the referenced package.
	// It may be empty when the lock file could not disambiguate the
	// reference; such edges surface as unresolved-edge diagnostics.
	Version InternedString
}

// PackageRecord is one resolved package from the lock file. Records are
// constructed once by the lock file reader and never mutated.
type PackageRecord struct {
	// Name is the package name. Always non-empty.
	Name InternedString

	// Version is the resolved version string (e.g., "1.0.210").
	Version InternedString

	// Dependencies lists the packages this record depends on, in the order
	// they were declared in the lock file.
	Dependencies []DependencyRef
}

// Label renders the record as "name (version)", the form used in usage chains.
func (r PackageRecord) Label() string {
	return r.Name.String() + " (" + r.Version.String() + ")"
}
