package session

import "github.com/benjaminforras/analog/internal/core/domain"

// builder is the incremental wrapper over the previous program. In watch mode
// it retains the prior per-file analyses so structurally unchanged modules
// skip re-analysis; outside watch mode it downgrades to an abstract builder
// retaining nothing, because the bookkeeping is unamortized for one build.
type builder struct {
	previous map[domain.InternedString]*domain.ModuleAnalysis
}

func newBuilder(previous *domain.Program, watch bool) *builder {
	b := &builder{}
	if !watch || previous == nil {
		return b
	}
	b.previous = make(map[domain.InternedString]*domain.ModuleAnalysis, previous.Len())
	for _, id := range previous.ModuleIDs() {
		if a, ok := previous.Analysis(id.String()); ok {
			b.previous[id] = a
		}
	}
	return b
}

// reusable returns the prior analysis when the file's parse version is
// unchanged, meaning neither the file nor its cached parse were invalidated.
func (b *builder) reusable(id domain.InternedString, version int64) (*domain.ModuleAnalysis, bool) {
	if b.previous == nil {
		return nil, false
	}
	a, ok := b.previous[id]
	if !ok || a.Module.Version != version {
		return nil, false
	}
	return a, true
}
