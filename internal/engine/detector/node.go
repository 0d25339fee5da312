package detector

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dupes/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/dupes/internal/adapters/registry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/dupes/internal/core/ports"
)

// NodeID is the unique identifier for the detector Graft node.
const NodeID graft.ID = "engine.detector"

func init() {
	graft.Register(graft.Node[*Detector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			registry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Detector, error) {
			reg, err := graft.Dep[ports.Registry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(reg, log), nil
		},
	})
}
