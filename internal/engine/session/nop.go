package session

import (
	"context"

	"github.com/benjaminforras/analog/internal/core/ports"
)

// nopTracer and nopLogger back sessions constructed without telemetry, so
// callers outside the wired application (tests, library embedders) need not
// supply adapters.
type nopTracer struct{}

func (nopTracer) Span(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, nopSpan{}
}

func (nopTracer) Close() error { return nil }

type nopSpan struct{}

func (nopSpan) Done(error) {}
func (nopSpan) Cached()    {}

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}
