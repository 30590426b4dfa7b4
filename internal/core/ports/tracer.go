package ports

import "context"

// Tracer records progress of analyze and emit passes.
//
//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Tracer interface {
	// Span starts recording a unit of work and returns its handle.
	Span(ctx context.Context, name string) (context.Context, Span)
	// Close flushes the recording session.
	Close() error
}

// Span represents one recorded unit of work.
type Span interface {
	// Done completes the span, recording the error if non-nil.
	Done(err error)
	// Cached marks the span as served from cache.
	Cached()
}
