package ports

import "go.trai.ch/dupes/internal/core/domain"

// LockfileReader defines the interface for parsing a lock file into records.
//
//go:generate mockgen -source=lockfile.go -destination=mocks/mock_lockfile.go -package=mocks
type LockfileReader interface {
	// Read parses the lock file at path into package records.
	// Returns domain.ErrLockfileNotFound when the path does not exist and
	// domain.ErrLockfileParseFailed when the contents cannot be parsed.
	Read(path string) ([]domain.PackageRecord, error)
}
