package ports

import "github.com/benjaminforras/analog/internal/core/domain"

// Frontend is the annotation-driven compiler the engine drives as an opaque
// capability. The engine owns sessions, caching and hot-patch decisions; the
// frontend owns parsing, per-class analysis and code generation.
//
//go:generate mockgen -source=frontend.go -destination=mocks/mock_frontend.go -package=mocks
type Frontend interface {
	// ParseModule parses module text into its class declarations. Parse
	// failures are reported as diagnostics on a best-effort module, not as
	// errors; the returned module is always non-nil.
	ParseModule(id, text string, version int64) (*domain.Module, []domain.Diagnostic)

	// AnalyzeModule performs semantic analysis of the module's annotated
	// classes, resolving template/style references through the host. It
	// returns the inlined resources keyed by reference alongside any
	// diagnostics.
	AnalyzeModule(m *domain.Module, host Host) (map[string]string, []domain.Diagnostic)

	// EmitModule generates runtime-executable module code. The resources map
	// holds inlined template/style text keyed by reference, as produced by
	// AnalyzeModule.
	EmitModule(m *domain.Module, opts domain.CompilerOptions, resources map[string]string) (content, sourceMap string, diags []domain.Diagnostic, err error)

	// EmitHotPatch generates a standalone patch module replacing the class's
	// behavior in a running instance without reinitializing its state.
	EmitHotPatch(m *domain.Module, class domain.ClassDecl) (string, error)
}
