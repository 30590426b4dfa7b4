package domain

import "time"

// HMRInfo carries the hot-patch verdict for an emit call.
type HMRInfo struct {
	// Analyzed is true when the emitter ran in HMR-analysis mode, i.e. a
	// stale module was supplied and eligibility was decided.
	Analyzed bool
	// Eligible is true when the change can be hot-patched into a running
	// instance without a full reload.
	Eligible bool
	// UpdateCode is a standalone patch module replacing the class's behavior
	// without reinitializing its state. Computed under live reload when the
	// module holds a hot-reloadable class: alongside a full emit, and on an
	// eligible stale probe.
	UpdateCode string
}

// EmitResult is the transient outcome of one emit call. It is never persisted.
type EmitResult struct {
	Content      string
	SourceMap    string
	Dependencies []string
	Errors       []Diagnostic
	Warnings     []Diagnostic
	HMR          HMRInfo
}

// HotUpdate is the outbound notification produced when an eligible change
// yielded non-empty update code.
type HotUpdate struct {
	ID        string // dispatch id, unique per notification
	Class     InternedString
	File      InternedString
	Timestamp time.Time
}
