package sourcecache

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/benjaminforras/analog/internal/core/ports"
)

// NodeID is the unique identifier for the source cache Graft node.
const NodeID graft.ID = "adapter.source_cache"

func init() {
	graft.Register(graft.Node[ports.SourceCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.SourceCache, error) {
			return New(), nil
		},
	})
}
