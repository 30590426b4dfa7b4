// Package app implements the application layer: the engine orchestrating
// one-shot builds and live incremental rebuilds.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.trai.ch/zerr"

	"github.com/benjaminforras/analog/internal/adapters/host"
	"github.com/benjaminforras/analog/internal/adapters/watcher"
	"github.com/benjaminforras/analog/internal/core/domain"
	"github.com/benjaminforras/analog/internal/core/ports"
	"github.com/benjaminforras/analog/internal/engine/emitter"
	"github.com/benjaminforras/analog/internal/engine/session"
)

// debounceWindow coalesces editor save bursts into one rebuild.
const debounceWindow = 75 * time.Millisecond

// Engine owns the singleton live session and drives rebuilds.
//
// Rebuild serialization policy: triggers arriving while a rebuild is running
// are coalesced into a pending set and handled by exactly one follow-up
// rebuild after the current one completes. A started rebuild always runs to
// completion; there is no mid-analysis cancellation.
type Engine struct {
	configLoader ports.ConfigLoader
	frontend     ports.Frontend
	cache        ports.SourceCache
	notifier     ports.Notifier
	logger       ports.Logger
	tracer       ports.Tracer

	mu      sync.Mutex
	project *ports.ProjectConfig
	host    ports.Host
	session *session.Session
	program *domain.Program
	emit    *emitter.FileEmitter

	pendingMu  sync.Mutex
	pending    []string
	rebuilding bool
}

// New creates an engine.
func New(
	loader ports.ConfigLoader,
	frontend ports.Frontend,
	cache ports.SourceCache,
	notifier ports.Notifier,
	log ports.Logger,
	tracer ports.Tracer,
) *Engine {
	return &Engine{
		configLoader: loader,
		frontend:     frontend,
		cache:        cache,
		notifier:     notifier,
		logger:       log,
		tracer:       tracer,
	}
}

// Build runs a one-shot build: a non-incremental session, full analysis and
// an emit of every module in the graph. Output is written under the
// configured out directory; modules carrying error diagnostics produce no
// output and fail the build.
func (e *Engine) Build(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.loadProject(); err != nil {
		return err
	}
	if err := e.newSession(false); err != nil {
		return err
	}
	if _, err := e.session.Analyze(ctx); err != nil {
		return zerr.Wrap(err, "analysis failed")
	}
	e.program = e.session.Program()

	em, err := e.session.Emitter(domain.TransformerPipeline{})
	if err != nil {
		return err
	}
	e.emit = em

	errorCount := 0
	for _, id := range e.program.ModuleIDs() {
		result, err := e.emit.Emit(ctx, id.String(), nil)
		if err != nil {
			return err
		}
		e.logDiagnostics(result)
		if len(result.Errors) > 0 {
			errorCount += len(result.Errors)
			continue
		}
		if err := e.writeOutput(id.String(), result); err != nil {
			return err
		}
	}
	if errorCount > 0 {
		return zerr.With(domain.ErrCompileErrors, "error_count", errorCount)
	}
	e.logger.Info(fmt.Sprintf("built %d modules to %s", e.program.Len(), e.project.Options.OutDir))
	return nil
}

// Watch runs the live rebuild loop until the context is canceled. Each
// coalesced change batch invalidates the cache, rebuilds the session reusing
// the previous program, and hot-patches or fully re-emits the changed files.
func (e *Engine) Watch(ctx context.Context) error {
	e.mu.Lock()
	if err := e.loadProject(); err != nil {
		e.mu.Unlock()
		return err
	}
	if err := e.newSession(true); err != nil {
		e.mu.Unlock()
		return err
	}
	if _, err := e.session.Analyze(ctx); err != nil {
		e.mu.Unlock()
		return zerr.Wrap(err, "initial analysis failed")
	}
	e.program = e.session.Program()
	em, err := e.session.Emitter(domain.TransformerPipeline{})
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.emit = em
	rootDir := e.project.RootDir
	outDir := e.project.Options.OutDir
	e.mu.Unlock()

	w, err := watcher.New(outDir)
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}
	defer func() { _ = w.Stop() }()

	debouncer := watcher.NewDebouncer(debounceWindow, func(paths []string) {
		e.enqueue(ctx, paths)
	})

	if err := w.Start(ctx, rootDir); err != nil {
		return zerr.Wrap(err, "failed to start file watcher")
	}
	e.logger.Info("watching " + rootDir)

	for event := range w.Events() {
		if event.Operation == ports.OpCreate {
			continue // a create with no content yet; the write will follow
		}
		if rel, err := filepath.Rel(rootDir, event.Path); err == nil {
			debouncer.Add(domain.NormalizeID(rel))
		}
	}
	debouncer.Flush()
	return ctx.Err()
}

// Invalidate removes the cache entries for the given file ids, plus any
// module whose inlined resources reference them. It returns the expanded id
// list so callers can re-emit modules owning a changed resource. Must precede
// the next analyze to take effect.
func (e *Engine) Invalidate(ids []string) []string {
	e.mu.Lock()
	program := e.program
	e.mu.Unlock()

	normalized := make([]string, 0, len(ids))
	for _, id := range ids {
		normalized = append(normalized, domain.NormalizeID(id))
	}
	all := normalized
	if program != nil {
		for _, moduleID := range program.ModuleIDs() {
			a, ok := program.Analysis(moduleID.String())
			if !ok {
				continue
			}
		refs:
			for ref := range a.Resources {
				for _, changed := range normalized {
					if resourceMatches(ref, moduleID.String(), changed) {
						all = append(all, moduleID.String())
						break refs
					}
				}
			}
		}
	}
	e.cache.Invalidate(all)
	return all
}

// resourceMatches reports whether a changed file id is the resolved location
// of a resource reference from the given module.
func resourceMatches(ref, moduleID, changed string) bool {
	if ref == changed {
		return true
	}
	resolved := filepath.ToSlash(filepath.Join(filepath.Dir(moduleID), ref))
	return domain.NormalizeID(resolved) == changed
}

// enqueue coalesces a change batch and guarantees exactly one follow-up
// rebuild for triggers that arrive mid-rebuild.
func (e *Engine) enqueue(ctx context.Context, paths []string) {
	e.pendingMu.Lock()
	e.pending = append(e.pending, paths...)
	if e.rebuilding {
		e.pendingMu.Unlock()
		return
	}
	e.rebuilding = true
	e.pendingMu.Unlock()

	for {
		e.pendingMu.Lock()
		batch := e.pending
		e.pending = nil
		if len(batch) == 0 {
			e.rebuilding = false
			e.pendingMu.Unlock()
			return
		}
		e.pendingMu.Unlock()

		if err := e.Rebuild(ctx, batch); err != nil {
			e.logger.Error(err)
		}
	}
}

// Rebuild invalidates the changed paths, replaces the session (reusing the
// previous program snapshot) and re-emits the changed modules, hot-patching
// where the change is eligible.
func (e *Engine) Rebuild(ctx context.Context, changed []string) error {
	changed = e.Invalidate(changed)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.project == nil {
		return domain.ErrNotStarted
	}

	previous := e.program
	if err := e.newSession(true); err != nil {
		return err
	}
	if _, err := e.session.Analyze(ctx); err != nil {
		return zerr.Wrap(err, "rebuild analysis failed")
	}
	e.program = e.session.Program()
	em, err := e.session.Emitter(domain.TransformerPipeline{})
	if err != nil {
		return err
	}
	e.emit = em

	for _, id := range changed {
		if _, ok := e.program.Module(id); !ok {
			continue
		}
		if err := e.emitChanged(ctx, id, previous); err != nil {
			return err
		}
	}
	return nil
}

// emitChanged handles one changed module: an HMR probe against the previous
// program's version, then either a hot-patch dispatch or a full re-emit.
func (e *Engine) emitChanged(ctx context.Context, id string, previous *domain.Program) error {
	var stale *domain.Module
	if previous != nil {
		if m, ok := previous.Module(id); ok {
			stale = m
		}
	}

	if stale != nil {
		probe, err := e.emit.Emit(ctx, id, stale)
		if err != nil {
			return err
		}
		if probe != nil && probe.HMR.Eligible && probe.HMR.UpdateCode != "" {
			if update, ok := e.notifier.Dispatch(id); ok {
				e.logger.Info("hot update " + update.Class.String() + " (" + id + ")")
			}
			result, err := e.emit.Emit(ctx, id, nil)
			if err != nil {
				return err
			}
			e.logDiagnostics(result)
			return e.writeOutput(id, result)
		}
	}

	// Not eligible (or no prior version): full re-emit and a full reload.
	result, err := e.emit.Emit(ctx, id, nil)
	if err != nil {
		return err
	}
	e.logDiagnostics(result)
	if len(result.Errors) > 0 {
		return nil // diagnostics already reported, keep watching
	}
	e.logger.Info("full reload required for " + id)
	return e.writeOutput(id, result)
}

// loadProject loads the configuration and composes the host decorator chain.
func (e *Engine) loadProject() error {
	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to determine working directory")
	}
	project, err := e.configLoader.Load(cwd)
	if err != nil {
		return err
	}
	e.project = project
	base := host.NewOS(project.RootDir, project.Options.DefaultLib)
	e.host = host.Compose(base, host.WithCache(e.cache), host.WithResources())
	return nil
}

// newSession replaces the live session. The previous program is threaded in
// for structural reuse; outside watch mode no previous state is carried.
func (e *Engine) newSession(watch bool) error {
	cfg := session.Config{
		Roots:    e.project.Roots,
		Options:  e.project.Options,
		Host:     e.host,
		Frontend: e.frontend,
		Cache:    e.cache,
		Notifier: e.notifier,
		Logger:   e.logger,
		Tracer:   e.tracer,
		Watch:    watch,
	}
	if watch {
		cfg.Previous = e.program
	}
	s, err := session.New(cfg)
	if err != nil {
		return err
	}
	e.session = s
	return nil
}

func (e *Engine) logDiagnostics(result *domain.EmitResult) {
	for _, d := range result.Warnings {
		e.logger.Warn(d.String())
	}
	for _, d := range result.Errors {
		e.logger.Error(zerr.New(d.String()))
	}
}

// writeOutput writes emitted content (and source map) under the out directory.
func (e *Engine) writeOutput(id string, result *domain.EmitResult) error {
	out := filepath.Join(e.project.RootDir, e.project.Options.OutDir, outputName(id))
	if err := os.MkdirAll(filepath.Dir(out), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create output directory")
	}
	if err := os.WriteFile(out, []byte(result.Content), 0o600); err != nil {
		return zerr.Wrap(err, "failed to write output")
	}
	if result.SourceMap != "" {
		if err := os.WriteFile(out+".map", []byte(result.SourceMap), 0o600); err != nil {
			return zerr.Wrap(err, "failed to write source map")
		}
	}
	return nil
}

// outputName maps a source id to its generated file name.
func outputName(id string) string {
	if i := strings.LastIndexByte(id, '.'); i > 0 {
		id = id[:i]
	}
	return id + ".js"
}
