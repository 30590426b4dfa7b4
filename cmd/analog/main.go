// Package main is the entry point for the analog CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"

	"github.com/benjaminforras/analog/cmd/analog/commands"
	"github.com/benjaminforras/analog/internal/app"
	_ "github.com/benjaminforras/analog/internal/wiring"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		return 1
	}
	defer func() { _ = components.Tracer.Close() }()

	cli := commands.New(components)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, os.Stderr)

	if err := cli.Execute(ctx); err != nil {
		// zerr prints a report with stack trace and metadata under %+v.
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}
	return 0
}
