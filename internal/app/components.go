package app

import "github.com/benjaminforras/analog/internal/core/ports"

// Components bundles the wired application pieces handed to the CLI.
type Components struct {
	Engine   *Engine
	Logger   ports.Logger
	Notifier ports.Notifier
	Tracer   ports.Tracer
}
