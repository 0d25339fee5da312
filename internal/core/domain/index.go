package domain

import (
	"slices"
)

// VersionEntry is one distinct version of a named package together with the
// records that depend on it. Dependents are indices into the record arena,
// kept in original declaration order.
type VersionEntry struct {
	Version    InternedString
	Dependents []int
}

// versionKey identifies a (name, version) pair in the index.
type versionKey struct {
	name    InternedString
	version InternedString
}

// DependencyIndex maps package names to their distinct versions and, per
// version, the dependents that pin it. It is built once from an immutable
// record list and is read-only afterwards, so concurrent reads need no
// synchronization.
type DependencyIndex struct {
	records  []PackageRecord
	versions map[InternedString][]*VersionEntry
	byKey    map[versionKey]*VersionEntry
	diags    []Diagnostic
}

// BuildIndex constructs the index from the parsed record list.
//
// Dependency edges that reference a (name, version) absent from the record
// set are recorded as unresolved-edge diagnostics and skipped; a lock file
// may legitimately reference packages outside its own set (path or workspace
// entries) and one bad edge must not corrupt the rest of the index.
func BuildIndex(records []PackageRecord) *DependencyIndex {
	ix := &DependencyIndex{
		records:  records,
		versions: make(map[InternedString][]*VersionEntry),
		byKey:    make(map[versionKey]*VersionEntry, len(records)),
	}

	// First pass: one entry per distinct (name, version) pair. Identical
	// pairs across records collapse into the same entry.
	for _, rec := range records {
		key := versionKey{name: rec.Name, version: rec.Version}
		if _, exists := ix.byKey[key]; exists {
			continue
		}
		entry := &VersionEntry{Version: rec.Version}
		ix.byKey[key] = entry
		ix.versions[rec.Name] = append(ix.versions[rec.Name], entry)
	}

	// Second pass: attach each record to the entries it depends on.
	for i, rec := range records {
		for _, dep := range rec.Dependencies {
			entry, ok := ix.byKey[versionKey{name: dep.Name, version: dep.Version}]
			if !ok {
				ix.diags = append(ix.diags, Diagnostic{
					Kind:       DiagUnresolvedDependency,
					Package:    dep.Name.String(),
					Version:    dep.Version.String(),
					DeclaredBy: rec.Label(),
				})
				continue
			}
			entry.Dependents = append(entry.Dependents, i)
		}
	}

	return ix
}

// Names returns all package names in lexicographic order. Output consumers
// iterate this for determinism.
func (ix *DependencyIndex) Names() []string {
	names := make([]string, 0, len(ix.versions))
	for name := range ix.versions {
		names = append(names, name.String())
	}
	slices.Sort(names)
	return names
}

// Versions returns the version entries for a package name in insertion order.
func (ix *DependencyIndex) Versions(name string) []*VersionEntry {
	return ix.versions[Intern(name)]
}

// Lookup returns the entry for an exact (name, version) pair.
func (ix *DependencyIndex) Lookup(name, version InternedString) (*VersionEntry, bool) {
	entry, ok := ix.byKey[versionKey{name: name, version: version}]
	return entry, ok
}

// Record returns the record at the given arena index.
func (ix *DependencyIndex) Record(i int) PackageRecord {
	return ix.records[i]
}

// Diagnostics returns the unresolved-edge diagnostics collected during the build.
func (ix *DependencyIndex) Diagnostics() []Diagnostic {
	return ix.diags
}
