package render

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/taskmill/internal/core/ports"
)

// NodeID is the unique identifier for the renderer factory Graft node.
const NodeID graft.ID = "adapter.renderer"

func init() {
	graft.Register(graft.Node[ports.RendererFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RendererFactory, error) {
			return NewFactory(), nil
		},
	})
}
