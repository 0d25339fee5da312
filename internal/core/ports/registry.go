package ports

import "context"

// Registry defines the interface for resolving the newest published version
// of a package name from a remote registry.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type Registry interface {
	// Latest returns the newest published version string for name.
	// Failures are non-fatal for the caller, which falls back to the highest
	// locally observed version.
	Latest(ctx context.Context, name string) (string, error)
}
