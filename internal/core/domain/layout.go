package domain

import (
	"path/filepath"
	"time"
)

const (
	// LockfileName is the default lock file name looked up in the current directory.
	LockfileName = "Cargo.lock"

	// ConfigFileName is the optional configuration file discovered upward from cwd.
	ConfigFileName = "dupes.yaml"

	// DupesDirName is the root directory for dupes metadata.
	DupesDirName = ".dupes"

	// CacheDirName is the subdirectory holding cached registry responses.
	CacheDirName = "cache"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultRegistryCachePath returns the default path for the registry
// response cache. It joins .dupes and cache.
func DefaultRegistryCachePath() string {
	return filepath.Join(DupesDirName, CacheDirName)
}

// Settings are the tunables resolved from dupes.yaml and CLI flags.
// Flags win over file values, file values win over defaults.
type Settings struct {
	// Registry is the base URL of the package registry.
	Registry string

	// Timeout bounds each registry lookup.
	Timeout time.Duration

	// Concurrency caps the number of registry lookups in flight.
	Concurrency int

	// Offline skips registry lookups entirely; the reference version is the
	// highest version present in the lock file.
	Offline bool
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Registry:    "https://crates.io",
		Timeout:     30 * time.Second,
		Concurrency: 8,
	}
}
