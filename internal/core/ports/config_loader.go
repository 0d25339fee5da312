package ports

import "go.trai.ch/dupes/internal/core/domain"

// ConfigLoader defines the interface for loading the optional dupes.yaml.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers dupes.yaml upward from cwd and returns the resolved
	// settings. When no file exists the built-in defaults are returned.
	Load(cwd string) (domain.Settings, error)
}
