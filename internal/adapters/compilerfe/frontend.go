// Package compilerfe is the reference annotation-compiler frontend. It
// implements ports.Frontend for a narrow dialect of metadata-annotated class
// modules: @Component/@Directive/@Injectable/@Pipe declarations on exported
// classes, with relative imports and external template/style references.
package compilerfe

import (
	"github.com/benjaminforras/analog/internal/core/domain"
	"github.com/benjaminforras/analog/internal/core/ports"
)

var _ ports.Frontend = (*Frontend)(nil)

// Frontend implements ports.Frontend. It is stateless; all cross-rebuild
// state lives in the engine's session and cache.
type Frontend struct{}

// New creates the reference frontend.
func New() *Frontend {
	return &Frontend{}
}

// ParseModule parses module text into its class declarations.
func (f *Frontend) ParseModule(id, text string, version int64) (*domain.Module, []domain.Diagnostic) {
	return parseModule(id, text, version)
}

// AnalyzeModule resolves template and style references through the host and
// returns the inlined resources. A missing resource is a per-module compile
// error, not a host failure.
func (f *Frontend) AnalyzeModule(m *domain.Module, h ports.Host) (map[string]string, []domain.Diagnostic) {
	resources := make(map[string]string)
	var diags []domain.Diagnostic
	file := m.ID.String()

	read := func(ref string) (string, bool) {
		if rr, ok := h.(ports.ResourceReader); ok {
			return rr.ReadResource(ref, file)
		}
		return h.ReadFile(ref)
	}

	for _, c := range m.Classes {
		if ref := c.Surface.TemplateRef; ref != "" {
			text, ok := read(ref)
			if !ok {
				diags = append(diags, domain.Error(file, "AG3001",
					"template "+ref+" of class "+c.Name.String()+" not found"))
				continue
			}
			resources[ref] = text
		}
		for _, ref := range c.Surface.StyleRefs {
			text, ok := read(ref)
			if !ok {
				diags = append(diags, domain.Warning(file, "AG3002",
					"style "+ref+" of class "+c.Name.String()+" not found"))
				continue
			}
			resources[ref] = text
		}
	}
	return resources, diags
}

// EmitModule generates runtime-executable module code for exactly this module.
func (f *Frontend) EmitModule(m *domain.Module, opts domain.CompilerOptions, resources map[string]string) (string, string, []domain.Diagnostic, error) {
	return emitModule(m, opts, resources)
}

// EmitHotPatch generates a standalone patch module for one class. The patch
// carries the class's current method bodies and replaces behavior without
// reinitializing instance state.
func (f *Frontend) EmitHotPatch(m *domain.Module, class domain.ClassDecl) (string, error) {
	return emitHotPatch(m, class)
}
