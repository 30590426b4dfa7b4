// Package hmr decides whether a changed module can be hot-patched into a
// running instance or requires a full reload.
package hmr

import "github.com/benjaminforras/analog/internal/core/domain"

// Analyzer compares two versions of a module's top-level class declarations.
// It never produces user-visible diagnostics; its only output is the verdict.
type Analyzer struct{}

// New creates an Analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Eligible reports whether the change from stale to fresh is a body-only
// change hot-patchable as a unit. The verdict is per whole file: one
// ineligible class makes the file ineligible, since the file is replaced and
// notified as a single unit.
//
// A class is hot-patchable when its annotation surface is unchanged between
// the two versions; method-body text is excluded from the comparison. Any
// surface change, any added or removed class, or the absence of any annotated
// class forces a full reload.
func (a *Analyzer) Eligible(stale, fresh *domain.Module) bool {
	if stale == nil || fresh == nil {
		return false
	}
	if len(fresh.Classes) == 0 || len(stale.Classes) == 0 {
		return false
	}
	if len(fresh.Classes) != len(stale.Classes) {
		return false
	}
	for _, old := range stale.Classes {
		current, ok := fresh.Class(old.Name.String())
		if !ok {
			return false
		}
		if !current.Surface.Equal(old.Surface) {
			return false
		}
	}
	return true
}
