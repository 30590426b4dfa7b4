// Package testkit provides an in-memory host for engine tests.
package testkit

import (
	"path"
	"strings"
	"sync"

	"github.com/benjaminforras/analog/internal/core/domain"
	"github.com/benjaminforras/analog/internal/core/ports"
)

var _ ports.Host = (*MemHost)(nil)

var extensions = []string{"", ".mod", ".ag", ".ts"}

// MemHost is a ports.Host backed by an in-memory file map.
type MemHost struct {
	mu    sync.RWMutex
	files map[string]string
	reads map[string]int
}

// NewMemHost creates a host over the given files, keyed by normalized id.
func NewMemHost(files map[string]string) *MemHost {
	normalized := make(map[string]string, len(files))
	for k, v := range files {
		normalized[domain.NormalizeID(k)] = v
	}
	return &MemHost{files: normalized, reads: make(map[string]int)}
}

// Set writes or replaces a file.
func (h *MemHost) Set(id, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.files[domain.NormalizeID(id)] = text
}

// Delete removes a file.
func (h *MemHost) Delete(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.files, domain.NormalizeID(id))
}

// Reads returns how many times a file was read through the host.
func (h *MemHost) Reads(id string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.reads[domain.NormalizeID(id)]
}

// ReadFile implements ports.Host.
func (h *MemHost) ReadFile(p string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := domain.NormalizeID(p)
	text, ok := h.files[id]
	if ok {
		h.reads[id]++
	}
	return text, ok
}

// FileExists implements ports.Host.
func (h *MemHost) FileExists(p string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.files[domain.NormalizeID(p)]
	return ok
}

// ResolveModuleName implements ports.Host for relative specifiers.
func (h *MemHost) ResolveModuleName(specifier, containingFile string) (string, bool) {
	if !strings.HasPrefix(specifier, "./") && !strings.HasPrefix(specifier, "../") {
		return "", false
	}
	candidate := path.Join(path.Dir(domain.NormalizeID(containingFile)), specifier)
	for _, ext := range extensions {
		if h.FileExists(candidate + ext) {
			return domain.NormalizeID(candidate + ext), true
		}
	}
	return "", false
}

// DefaultLibFileName implements ports.Host.
func (h *MemHost) DefaultLibFileName() string {
	return "lib.analog.d.mod"
}
