package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dupes/internal/adapters/config"
	"go.trai.ch/dupes/internal/core/ports"
)

// NodeID is the unique identifier for the registry client Graft node.
const NodeID graft.ID = "adapter.registry"

func init() {
	graft.Register(graft.Node[ports.Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Registry, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			settings, err := loader.Load(".")
			if err != nil {
				return nil, err
			}

			return NewClient(settings.Registry)
		},
	})
}
