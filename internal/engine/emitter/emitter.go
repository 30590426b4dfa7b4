// Package emitter performs code generation, diagnostic collection and HMR
// short-circuit analysis against one immutable program snapshot.
package emitter

import (
	"context"
	"slices"

	"go.trai.ch/zerr"

	"github.com/benjaminforras/analog/internal/core/domain"
	"github.com/benjaminforras/analog/internal/core/ports"
	"github.com/benjaminforras/analog/internal/engine/hmr"
)

// Config binds an emitter to its session's state.
type Config struct {
	Program  *domain.Program
	Frontend ports.Frontend
	Pipeline domain.TransformerPipeline
	Notifier ports.Notifier
	Tracer   ports.Tracer
	Watch    bool
}

// FileEmitter emits one module per call against a program snapshot that is
// immutable until the next rebuild. Calls are logically sequential reads and
// need no locking; repeated calls against an unchanged program yield
// identical diagnostics and content.
type FileEmitter struct {
	cfg      Config
	analyzer *hmr.Analyzer
}

// New creates a file emitter bound to the given session state.
func New(cfg Config) *FileEmitter {
	if cfg.Tracer == nil {
		cfg.Tracer = nopTracer{}
	}
	return &FileEmitter{
		cfg:      cfg,
		analyzer: hmr.New(),
	}
}

// Emit compiles exactly one module.
//
// A file id outside the session's module graph returns (nil, nil): callers
// may probe files outside scope. When stale is supplied the call
// short-circuits into HMR-analysis mode: no code is generated and the result
// carries only the eligibility verdict. Compile problems are returned as
// diagnostics, never as errors; errors are reserved for host and programmer
// failures.
func (e *FileEmitter) Emit(ctx context.Context, fileID string, stale *domain.Module) (*domain.EmitResult, error) {
	analysis, ok := e.cfg.Program.Analysis(fileID)
	if !ok {
		return nil, nil
	}

	if stale != nil {
		return e.emitProbe(analysis, stale)
	}

	_, span := e.cfg.Tracer.Span(ctx, "emit "+fileID)
	result, err := e.emitFull(analysis)
	span.Done(err)
	return result, err
}

// emitProbe is HMR-analysis mode: no module code generation, only the
// eligibility verdict. An eligible change under live reload also carries the
// patch module for the hot-reloadable class, and registers the class for
// outbound notification addressing.
func (e *FileEmitter) emitProbe(analysis *domain.ModuleAnalysis, stale *domain.Module) (*domain.EmitResult, error) {
	m := analysis.Module
	result := &domain.EmitResult{
		Dependencies: []string{},
		HMR: domain.HMRInfo{
			Analyzed: true,
			Eligible: e.analyzer.Eligible(stale, m),
		},
	}
	if !result.HMR.Eligible || !e.cfg.Watch || !e.cfg.Program.Options.LiveReload {
		return result, nil
	}
	if domain.HasErrors(analysis.Diagnostics) {
		return result, nil
	}
	class, ok := m.FirstHotReloadable()
	if !ok {
		return result, nil
	}
	code, err := e.cfg.Frontend.EmitHotPatch(m, class)
	if err != nil {
		return nil, zerr.Wrap(err, "hot patch generation failed")
	}
	result.HMR.UpdateCode = code
	if e.cfg.Notifier != nil {
		e.cfg.Notifier.RegisterClass(m.ID.String(), class.Name)
	}
	return result, nil
}

func (e *FileEmitter) emitFull(analysis *domain.ModuleAnalysis) (*domain.EmitResult, error) {
	m := analysis.Module

	collector := NewCollector()
	if e.cfg.Program.Options.StrictAnnotations {
		collector = NewStrictCollector()
	}
	collector.Collect(analysis.Diagnostics...)

	content, sourceMap, emitDiags, err := e.cfg.Frontend.EmitModule(m, e.cfg.Program.Options, analysis.Resources)
	if err != nil {
		return nil, zerr.Wrap(err, "code generation failed")
	}
	collector.Collect(emitDiags...)
	content = e.cfg.Pipeline.Apply(content, m)

	result := &domain.EmitResult{
		Content:      content,
		SourceMap:    sourceMap,
		Dependencies: slices.Clone(analysis.Deps),
		Errors:       collector.Errors(),
		Warnings:     collector.Warnings(),
	}
	if result.Dependencies == nil {
		result.Dependencies = []string{}
	}

	// A hot-reloadable class in a clean module gets a patch module computed
	// alongside the full emit, and its name recorded for outbound
	// notification addressing.
	if e.cfg.Watch && e.cfg.Program.Options.LiveReload && !collector.HasErrors() {
		if class, ok := m.FirstHotReloadable(); ok {
			code, err := e.cfg.Frontend.EmitHotPatch(m, class)
			if err != nil {
				return nil, zerr.Wrap(err, "hot patch generation failed")
			}
			result.HMR.UpdateCode = code
			if e.cfg.Notifier != nil {
				e.cfg.Notifier.RegisterClass(m.ID.String(), class.Name)
			}
		}
	}

	return result, nil
}
