package domain

// DiagnosticKind classifies a non-fatal problem found during analysis.
type DiagnosticKind string

const (
	// DiagUnresolvedDependency marks a dependency edge referencing a
	// (name, version) pair absent from the lock file's package set.
	DiagUnresolvedDependency DiagnosticKind = "unresolved-dependency"

	// DiagInvalidVersion marks a package whose version string failed semver
	// parsing; that package's duplicate analysis is skipped.
	DiagInvalidVersion DiagnosticKind = "invalid-version"
)

// Diagnostic is a non-fatal problem surfaced to the user alongside the report.
type Diagnostic struct {
	Kind       DiagnosticKind `json:"kind"`
	Package    string         `json:"package"`
	Version    string         `json:"version,omitempty"`
	DeclaredBy string         `json:"declared_by,omitempty"`
	Detail     string         `json:"detail,omitempty"`
}

// ChainUser is one dependent of a duplicated version, annotated with the
// usage chain explaining why the pin is present.
type ChainUser struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Chain   []string `json:"chain"`
	Cycle   bool     `json:"cycle,omitempty"`
}

// DuplicateOccurrence reports one non-latest version of a package name that
// coexists with at least one other version in the resolved graph.
type DuplicateOccurrence struct {
	Package string      `json:"package"`
	Version string      `json:"version"`
	Latest  string      `json:"latest"`
	Users   []ChainUser `json:"users"`
}

// Report is the full analysis result handed to the renderer. Duplicates are
// ordered by package name, then by index insertion order per name.
type Report struct {
	Duplicates  []DuplicateOccurrence `json:"duplicates"`
	Diagnostics []Diagnostic          `json:"diagnostics,omitempty"`
}
