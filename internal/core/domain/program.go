package domain

import "go.trai.ch/zerr"

// CompilerOptions is the fixed option set a session is constructed with.
// A session is never mutated into a different option set; changing options
// means constructing a new session.
type CompilerOptions struct {
	OutDir            string
	SourceMap         bool
	LiveReload        bool
	DefaultLib        string
	StrictAnnotations bool
}

// Validate performs structural validation of the options.
func (o CompilerOptions) Validate() error {
	if o.OutDir == "" {
		return zerr.With(ErrInvalidOptions, "field", "outDir")
	}
	if o.DefaultLib == "" {
		return zerr.With(ErrInvalidOptions, "field", "defaultLib")
	}
	return nil
}

// DefaultOptions returns the option set used when the config file omits values.
func DefaultOptions() CompilerOptions {
	return CompilerOptions{
		OutDir:     "dist",
		DefaultLib: "lib.analog.d.mod",
	}
}

// Transformer rewrites emitted module content. Transformers are pure string
// rewrites over the generated output, parameterized by the source module.
type Transformer func(content string, m *Module) string

// TransformerPipeline is a fixed ordered pipeline bound to an emitter.
// Phases apply in declaration order: Before, After, AfterDeclarations.
type TransformerPipeline struct {
	Before            []Transformer
	After             []Transformer
	AfterDeclarations []Transformer
}

// Apply runs all phases over the content in order.
func (p TransformerPipeline) Apply(content string, m *Module) string {
	for _, phase := range [][]Transformer{p.Before, p.After, p.AfterDeclarations} {
		for _, t := range phase {
			content = t(content, m)
		}
	}
	return content
}

// ModuleAnalysis is the per-module output of semantic analysis.
type ModuleAnalysis struct {
	Module      *Module
	Diagnostics []Diagnostic
	// Resources maps template/style references to their inlined text.
	Resources map[string]string
	// Deps is the ordered list of resolved in-graph dependency file ids.
	Deps []string
	// Reused is true when the analysis was carried over structurally unchanged
	// from the previous program.
	Reused bool
}

// Program is an immutable snapshot of one full semantic analysis pass over a
// root-module set. It is returned by Analyze and threaded as input into the
// next session's construction; nothing mutates a Program after creation.
type Program struct {
	Generation int64
	Roots      []InternedString
	Options    CompilerOptions
	modules    map[InternedString]*ModuleAnalysis
	order      []InternedString
}

// NewProgram assembles a program snapshot. The analyses map is owned by the
// program from this point on.
func NewProgram(generation int64, roots []InternedString, opts CompilerOptions, analyses map[InternedString]*ModuleAnalysis, order []InternedString) *Program {
	return &Program{
		Generation: generation,
		Roots:      roots,
		Options:    opts,
		modules:    analyses,
		order:      order,
	}
}

// Analysis returns the analysis for a file id, if the file is part of the graph.
func (p *Program) Analysis(id string) (*ModuleAnalysis, bool) {
	a, ok := p.modules[NewInternedString(NormalizeID(id))]
	return a, ok
}

// Module returns the parsed module for a file id, if part of the graph.
func (p *Program) Module(id string) (*Module, bool) {
	a, ok := p.Analysis(id)
	if !ok {
		return nil, false
	}
	return a.Module, true
}

// ModuleIDs returns the graph's file ids in deterministic discovery order.
func (p *Program) ModuleIDs() []InternedString {
	return p.order
}

// Len returns the number of modules in the graph.
func (p *Program) Len() int {
	return len(p.modules)
}

// ReusedCount returns how many analyses were carried over from the previous
// program. Exposed for rebuild telemetry.
func (p *Program) ReusedCount() int {
	n := 0
	for _, a := range p.modules {
		if a.Reused {
			n++
		}
	}
	return n
}
