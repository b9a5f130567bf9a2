package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/taskmill/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/taskmill/internal/adapters/catalog"            //nolint:depguard // Wired in app layer
	"go.trai.ch/taskmill/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/taskmill/internal/adapters/fingerprint"        //nolint:depguard // Wired in app layer
	"go.trai.ch/taskmill/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/taskmill/internal/adapters/render"             //nolint:depguard // Wired in app layer
	"go.trai.ch/taskmill/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/taskmill/internal/core/ports"
	"go.trai.ch/taskmill/internal/engine/simulator"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			catalog.NodeID,
			simulator.NodeID,
			fingerprint.NodeID,
			cas.NodeID,
			render.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.PlanLoader](ctx)
	if err != nil {
		return nil, err
	}

	opener, err := graft.Dep[ports.CatalogOpener](ctx)
	if err != nil {
		return nil, err
	}

	sim, err := graft.Dep[*simulator.Simulator](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.RunStore](ctx)
	if err != nil {
		return nil, err
	}

	renderers, err := graft.Dep[ports.RendererFactory](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, opener, sim, hasher, store, renderers, log, telemetry), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, telemetry), nil
}
