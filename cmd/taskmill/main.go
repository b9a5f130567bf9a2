// Package main is the entry point for the taskmill production scheduler.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/taskmill/cmd/taskmill/commands"
	"go.trai.ch/taskmill/internal/app"
	"go.trai.ch/taskmill/internal/core/domain"
	_ "go.trai.ch/taskmill/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run(opts ...func(*app.App)) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = components.Telemetry.Close() }()

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)
	if err := cli.Execute(ctx); err != nil {
		// The aborted result has already been rendered.
		if errors.Is(err, domain.ErrSimulationAborted) {
			return 2
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
