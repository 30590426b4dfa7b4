// Package telemetry provides the progrock implementation of the tracer port,
// recording one vertex per analyze and emit pass.
package telemetry

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"github.com/benjaminforras/analog/internal/core/ports"
)

var _ ports.Tracer = (*Recorder)(nil)

// Recorder implements ports.Tracer using progrock.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Span starts recording a new vertex.
func (r *Recorder) Span(ctx context.Context, name string) (context.Context, ports.Span) {
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	return ctx, &vertexSpan{vertex: v}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

type vertexSpan struct {
	vertex *progrock.VertexRecorder
}

// Done completes the vertex, recording the error if non-nil.
func (s *vertexSpan) Done(err error) {
	s.vertex.Done(err)
}

// Cached marks the vertex as a cache hit.
func (s *vertexSpan) Cached() {
	s.vertex.Cached()
}
