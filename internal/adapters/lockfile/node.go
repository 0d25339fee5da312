package lockfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dupes/internal/adapters/logger"
	"go.trai.ch/dupes/internal/core/ports"
)

// NodeID is the unique identifier for the lock file reader Graft node.
const NodeID graft.ID = "adapter.lockfile_reader"

func init() {
	graft.Register(graft.Node[ports.LockfileReader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.LockfileReader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewReader(log), nil
		},
	})
}
