// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/dupes/internal/adapters/config"
	_ "go.trai.ch/dupes/internal/adapters/lockfile"
	_ "go.trai.ch/dupes/internal/adapters/logger"
	_ "go.trai.ch/dupes/internal/adapters/registry"
	// Register app and engine nodes.
	_ "go.trai.ch/dupes/internal/app"
	_ "go.trai.ch/dupes/internal/engine/detector"
)
