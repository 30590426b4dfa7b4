package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/benjaminforras/analog/internal/adapters/compilerfe"  //nolint:depguard // Wired in app layer
	"github.com/benjaminforras/analog/internal/adapters/config"      //nolint:depguard // Wired in app layer
	"github.com/benjaminforras/analog/internal/adapters/logger"      //nolint:depguard // Wired in app layer
	"github.com/benjaminforras/analog/internal/adapters/notify"      //nolint:depguard // Wired in app layer
	"github.com/benjaminforras/analog/internal/adapters/sourcecache" //nolint:depguard // Wired in app layer
	"github.com/benjaminforras/analog/internal/adapters/telemetry"   //nolint:depguard // Wired in app layer
	"github.com/benjaminforras/analog/internal/core/ports"
)

const (
	// EngineNodeID is the unique identifier for the engine Graft node.
	EngineNodeID graft.ID = "app.engine"
	// ComponentsNodeID is the unique identifier for the components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        EngineNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			compilerfe.NodeID,
			sourcecache.NodeID,
			notify.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runEngineNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			EngineNodeID,
			logger.NodeID,
			notify.NodeID,
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runEngineNode(ctx context.Context) (*Engine, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	frontend, err := graft.Dep[ports.Frontend](ctx)
	if err != nil {
		return nil, err
	}
	cache, err := graft.Dep[ports.SourceCache](ctx)
	if err != nil {
		return nil, err
	}
	notifier, err := graft.Dep[ports.Notifier](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	return New(loader, frontend, cache, notifier, log, tracer), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	engine, err := graft.Dep[*Engine](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	notifier, err := graft.Dep[ports.Notifier](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	return &Components{
		Engine:   engine,
		Logger:   log,
		Notifier: notifier,
		Tracer:   tracer,
	}, nil
}
