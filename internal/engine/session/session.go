// Package session owns one type-checked module graph and its incremental
// builder for a fixed root-module set and options. Sessions are recreated,
// never mutated, when roots or options change; the previous session's program
// is threaded into the new session's construction to reuse structurally
// unchanged analyses.
package session

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/benjaminforras/analog/internal/core/domain"
	"github.com/benjaminforras/analog/internal/core/ports"
	"github.com/benjaminforras/analog/internal/engine/emitter"
)

// analyzeParallelism bounds concurrent per-module analysis. Analysis may
// suspend on auxiliary resource reads, so a small fan-out pays off without
// violating the single-rebuild-at-a-time model.
const analyzeParallelism = 4

// Config carries everything a session is constructed with.
type Config struct {
	Roots    []string
	Options  domain.CompilerOptions
	Host     ports.Host
	Frontend ports.Frontend
	Cache    ports.SourceCache
	Notifier ports.Notifier
	Logger   ports.Logger
	Tracer   ports.Tracer
	// Previous is the prior session's program snapshot, if any.
	Previous *domain.Program
	// Watch enables the incremental builder. Outside watch mode the session
	// downgrades to an abstract builder with no cross-rebuild bookkeeping.
	Watch bool
}

// Session is the full state needed to compile a fixed root-module set under
// fixed options. It exclusively owns its program and builder for its lifetime.
type Session struct {
	roots   []domain.InternedString
	cfg     Config
	builder *builder

	mu       sync.Mutex
	program  *domain.Program
	analyzed bool
}

// New validates the configuration and constructs a session. It fails with
// domain.ErrEmptyRootSet when no roots remain after normalization, and with
// domain.ErrInvalidOptions when options fail structural validation.
func New(cfg Config) (*Session, error) {
	var roots []domain.InternedString
	seen := make(map[domain.InternedString]struct{})
	for _, r := range cfg.Roots {
		id := domain.NewInternedString(domain.NormalizeID(r))
		if id.String() == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		roots = append(roots, id)
	}
	if len(roots) == 0 {
		return nil, domain.ErrEmptyRootSet
	}
	if err := cfg.Options.Validate(); err != nil {
		return nil, err
	}
	if cfg.Tracer == nil {
		cfg.Tracer = nopTracer{}
	}
	if cfg.Logger == nil {
		cfg.Logger = nopLogger{}
	}

	return &Session{
		roots:   roots,
		cfg:     cfg,
		builder: newBuilder(cfg.Previous, cfg.Watch),
	}, nil
}

// Roots returns the session's normalized, deduplicated root ids.
func (s *Session) Roots() []domain.InternedString {
	return slices.Clone(s.roots)
}

// Analyze performs full semantic analysis of the root set and its transitive
// imports, returning an immutable program snapshot. It must complete before
// any emit against this session. Unreadable module files propagate as host
// errors; per-module compile problems surface as diagnostics on the program.
func (s *Session) Analyze(ctx context.Context) (*domain.Program, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, span := s.cfg.Tracer.Span(ctx, "analyze")
	program, err := s.analyzeLocked(ctx)
	span.Done(err)
	if err != nil {
		return nil, err
	}

	s.program = program
	s.analyzed = true
	s.cfg.Logger.Info(fmt.Sprintf("analyzed %d modules, %d reused", program.Len(), program.ReusedCount()))
	return program, nil
}

func (s *Session) analyzeLocked(ctx context.Context) (*domain.Program, error) {
	generation := int64(1)
	if s.cfg.Previous != nil {
		generation = s.cfg.Previous.Generation + 1
	}

	analyses := make(map[domain.InternedString]*domain.ModuleAnalysis)
	var order []domain.InternedString

	// Discover the module graph breadth-first from the roots. Parses come
	// from the cache when the entry survived invalidation; a miss reads
	// current host content and stores the reparse at a higher version.
	queue := slices.Clone(s.roots)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, done := analyses[id]; done {
			continue
		}

		m, parseDiags, err := s.loadModule(id)
		if err != nil {
			return nil, err
		}

		a := &domain.ModuleAnalysis{Module: m, Diagnostics: parseDiags}
		analyses[id] = a
		order = append(order, id)

		for _, spec := range m.Imports {
			resolved, ok := s.cfg.Host.ResolveModuleName(spec, id.String())
			if !ok {
				continue // external or unresolvable import, outside the graph
			}
			rid := domain.NewInternedString(resolved)
			a.Deps = append(a.Deps, resolved)
			if _, done := analyses[rid]; !done {
				queue = append(queue, rid)
			}
		}
	}

	if err := s.analyzeModules(ctx, analyses, order); err != nil {
		return nil, err
	}

	return domain.NewProgram(generation, slices.Clone(s.roots), s.cfg.Options, analyses, order), nil
}

// loadModule returns the parsed module for an id, from cache or by reading
// and parsing current host content.
func (s *Session) loadModule(id domain.InternedString) (*domain.Module, []domain.Diagnostic, error) {
	// The cached slice is cloned so later appends of analysis diagnostics
	// cannot grow into the cache entry's backing array.
	if m, diags, ok := s.cfg.Cache.Get(id.String()); ok {
		return m, slices.Clone(diags), nil
	}
	text, ok := s.cfg.Host.ReadFile(id.String())
	if !ok {
		return nil, nil, zerr.With(domain.ErrHostRead, "file", id.String())
	}
	m, diags := s.cfg.Frontend.ParseModule(id.String(), text, 0)
	m.Version = s.cfg.Cache.Put(id.String(), text, m, diags)
	return m, diags, nil
}

// analyzeModules runs semantic analysis over all discovered modules,
// reusing prior analyses for structurally unchanged files.
func (s *Session) analyzeModules(ctx context.Context, analyses map[domain.InternedString]*domain.ModuleAnalysis, order []domain.InternedString) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(analyzeParallelism)

	for _, id := range order {
		a := analyses[id]
		if prior, ok := s.builder.reusable(id, a.Module.Version); ok {
			analyses[id] = &domain.ModuleAnalysis{
				Module:      prior.Module,
				Diagnostics: prior.Diagnostics,
				Resources:   prior.Resources,
				Deps:        prior.Deps,
				Reused:      true,
			}
			continue
		}
		g.Go(func() error {
			resources, diags := s.cfg.Frontend.AnalyzeModule(a.Module, s.cfg.Host)
			a.Resources = resources
			a.Diagnostics = append(a.Diagnostics, diags...)
			return nil
		})
	}
	return g.Wait()
}

// Emitter binds the current builder state and a fixed transformer pipeline
// into a fresh file emitter. It fails with domain.ErrNotAnalyzed before the
// first completed Analyze.
func (s *Session) Emitter(pipeline domain.TransformerPipeline) (*emitter.FileEmitter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.analyzed {
		return nil, domain.ErrNotAnalyzed
	}
	return emitter.New(emitter.Config{
		Program:  s.program,
		Frontend: s.cfg.Frontend,
		Pipeline: pipeline,
		Notifier: s.cfg.Notifier,
		Tracer:   s.cfg.Tracer,
		Watch:    s.cfg.Watch,
	}), nil
}

// Program returns the current program snapshot, nil before Analyze.
func (s *Session) Program() *domain.Program {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.program
}
