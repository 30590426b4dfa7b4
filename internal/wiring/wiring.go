// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/benjaminforras/analog/internal/adapters/compilerfe"
	_ "github.com/benjaminforras/analog/internal/adapters/config"
	_ "github.com/benjaminforras/analog/internal/adapters/logger"
	_ "github.com/benjaminforras/analog/internal/adapters/notify"
	_ "github.com/benjaminforras/analog/internal/adapters/sourcecache"
	_ "github.com/benjaminforras/analog/internal/adapters/telemetry"
	// Register app nodes.
	_ "github.com/benjaminforras/analog/internal/app"
)
