// Package domain contains the core types of the compilation engine: parsed
// modules, class annotation surfaces, analyzed programs and emit results.
package domain

import (
	"slices"
	"strings"
)

// AnnotationKind identifies the runtime role an annotated class plays.
type AnnotationKind string

const (
	// KindComponent marks a hot-reloadable class with a template and selector.
	KindComponent AnnotationKind = "Component"
	// KindDirective marks a selector-bound class without its own template.
	KindDirective AnnotationKind = "Directive"
	// KindInjectable marks a plain injectable service class.
	KindInjectable AnnotationKind = "Injectable"
	// KindPipe marks a value-transform class.
	KindPipe AnnotationKind = "Pipe"
)

// ClassSurface is the annotation-relevant surface of a class declaration: the
// metadata configuring its runtime wiring. Method bodies are excluded; two
// classes with equal surfaces differ at most in behavior, not in wiring.
type ClassSurface struct {
	Kind        AnnotationKind
	Selector    string
	Inputs      []string          // exposed inbound bindings
	Outputs     []string          // exposed outbound bindings
	HostHooks   map[string]string // host-level listeners and bindings
	TemplateRef string            // external template reference, empty if inline
	Template    string            // inline template text
	StyleRefs   []string          // external style references
}

// Equal reports whether two surfaces configure identical runtime wiring.
// Binding lists are order-insensitive; hooks compare as maps.
func (s ClassSurface) Equal(other ClassSurface) bool {
	if s.Kind != other.Kind || s.Selector != other.Selector {
		return false
	}
	if s.TemplateRef != other.TemplateRef || s.Template != other.Template {
		return false
	}
	if !equalUnordered(s.Inputs, other.Inputs) || !equalUnordered(s.Outputs, other.Outputs) {
		return false
	}
	if !slices.Equal(s.StyleRefs, other.StyleRefs) {
		return false
	}
	if len(s.HostHooks) != len(other.HostHooks) {
		return false
	}
	for k, v := range s.HostHooks {
		if ov, ok := other.HostHooks[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

func equalUnordered(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := slices.Clone(a)
	bs := slices.Clone(b)
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(as, bs)
}

// ClassDecl is one top-level annotated class declaration in a module.
type ClassDecl struct {
	Name    InternedString
	Surface ClassSurface
	// BodyFingerprint hashes the method bodies only. It changes on body edits
	// and is deliberately not part of the surface comparison.
	BodyFingerprint uint64
}

// HotReloadable reports whether the class can be addressed by a hot patch.
// Only components carry replaceable templates and render state.
func (c ClassDecl) HotReloadable() bool {
	return c.Surface.Kind == KindComponent
}

// Module is a single parsed compilable source unit.
type Module struct {
	ID      InternedString
	Version int64
	Text    string
	Imports []string // ordered import specifiers as written
	Classes []ClassDecl
}

// Class returns the declaration with the given name, if present.
func (m *Module) Class(name string) (ClassDecl, bool) {
	for _, c := range m.Classes {
		if c.Name.String() == name {
			return c, true
		}
	}
	return ClassDecl{}, false
}

// FirstHotReloadable returns the first hot-reloadable class, if any.
func (m *Module) FirstHotReloadable() (ClassDecl, bool) {
	for _, c := range m.Classes {
		if c.HotReloadable() {
			return c, true
		}
	}
	return ClassDecl{}, false
}

// NormalizeID canonicalizes a file identifier: forward slashes, no leading "./".
func NormalizeID(id string) string {
	id = strings.ReplaceAll(id, "\\", "/")
	id = strings.TrimPrefix(id, "./")
	return id
}
