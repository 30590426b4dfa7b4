package ports

import "github.com/benjaminforras/analog/internal/core/domain"

// SourceCache is the versioned store of parsed module text shared across
// rebuilds. It is purely advisory: correctness never depends on a hit, a miss
// always triggers a reparse from the host's current content.
//
//go:generate mockgen -source=source_cache.go -destination=mocks/mock_source_cache.go -package=mocks
type SourceCache interface {
	// Get returns the cached parse and its parse diagnostics for a file id,
	// if present.
	Get(id string) (*domain.Module, []domain.Diagnostic, bool)
	// Text returns the last-read text for a file id, if present.
	Text(id string) (string, bool)
	// Put stores a parse with its source text and parse diagnostics, and
	// returns the assigned version, strictly higher than any version assigned
	// before.
	Put(id, text string, m *domain.Module, diags []domain.Diagnostic) int64
	// Version returns the version of the cached entry, if present.
	Version(id string) (int64, bool)
	// Invalidate removes the entries for the given ids. Entries are removed,
	// never mutated in place; the next read reparses at a higher version.
	Invalidate(ids []string)
	// Len returns the number of live entries.
	Len() int
}
