package catalog

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/taskmill/internal/core/ports"
)

// NodeID is the unique identifier for the catalog opener Graft node.
const NodeID graft.ID = "adapter.catalog"

func init() {
	graft.Register(graft.Node[ports.CatalogOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CatalogOpener, error) {
			return NewOpener(), nil
		},
	})
}
