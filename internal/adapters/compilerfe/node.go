package compilerfe

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/benjaminforras/analog/internal/core/ports"
)

// NodeID is the unique identifier for the frontend Graft node.
const NodeID graft.ID = "adapter.frontend"

func init() {
	graft.Register(graft.Node[ports.Frontend]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Frontend, error) {
			return New(), nil
		},
	})
}
