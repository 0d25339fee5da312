package domain

import "go.trai.ch/zerr"

var (
	// ErrLockfileNotFound is returned when the lock file path does not exist.
	ErrLockfileNotFound = zerr.New("lock file not found")

	// ErrLockfileParseFailed is returned when the lock file cannot be parsed.
	ErrLockfileParseFailed = zerr.New("failed to parse lock file")

	// ErrEmptyPackageName is returned when a lock file entry has no name.
	ErrEmptyPackageName = zerr.New("lock file entry has an empty package name")

	// ErrVersionParseFailed is returned when a version string is not valid
	// semver. It scopes to the package name being analyzed, never to the run.
	ErrVersionParseFailed = zerr.New("failed to parse version")

	// ErrRegistryRequestFailed is returned when the registry request fails.
	ErrRegistryRequestFailed = zerr.New("registry request failed")

	// ErrRegistryParseFailed is returned when a registry response cannot be parsed.
	ErrRegistryParseFailed = zerr.New("failed to parse registry response")

	// ErrCrateNotFound is returned when the registry does not know the crate.
	ErrCrateNotFound = zerr.New("crate not found in registry")

	// ErrCacheCreateFailed is returned when the registry cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create registry cache directory")

	// ErrCacheReadFailed is returned when a registry cache entry cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read registry cache entry")

	// ErrCacheWriteFailed is returned when a registry cache entry cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write registry cache entry")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnknownOutputFormat is returned when the output format flag is invalid.
	ErrUnknownOutputFormat = zerr.New("unknown output format, expected 'text' or 'json'")

	// ErrRenderFailed is returned when writing the report fails.
	ErrRenderFailed = zerr.New("failed to render report")
)
