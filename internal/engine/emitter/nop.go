package emitter

import (
	"context"

	"github.com/benjaminforras/analog/internal/core/ports"
)

type nopTracer struct{}

func (nopTracer) Span(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, nopSpan{}
}

func (nopTracer) Close() error { return nil }

type nopSpan struct{}

func (nopSpan) Done(error) {}
func (nopSpan) Cached()    {}
