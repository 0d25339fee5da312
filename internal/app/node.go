package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dupes/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/dupes/internal/adapters/lockfile" //nolint:depguard // Wired in app layer
	"go.trai.ch/dupes/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/dupes/internal/core/ports"
	"go.trai.ch/dupes/internal/engine/detector"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			lockfile.NodeID,
			config.NodeID,
			detector.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			reader, err := graft.Dep[ports.LockfileReader](ctx)
			if err != nil {
				return nil, err
			}

			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			det, err := graft.Dep[*detector.Detector](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(reader, loader, det, log), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    a,
				Logger: log,
			}, nil
		},
	})
}
