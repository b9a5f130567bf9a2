// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/taskmill/internal/adapters/cas"
	_ "go.trai.ch/taskmill/internal/adapters/catalog"
	_ "go.trai.ch/taskmill/internal/adapters/config"
	_ "go.trai.ch/taskmill/internal/adapters/fingerprint"
	_ "go.trai.ch/taskmill/internal/adapters/logger"
	_ "go.trai.ch/taskmill/internal/adapters/render"
	_ "go.trai.ch/taskmill/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/taskmill/internal/app"
	_ "go.trai.ch/taskmill/internal/engine/simulator"
)
