package host

import (
	"github.com/benjaminforras/analog/internal/core/ports"
)

// WithCache returns a layer that serves reads from the source cache's
// last-read text, falling back to the wrapped host on a miss. The cache stays
// advisory: the layer never stores, only the session populates entries after
// a successful parse.
func WithCache(cache ports.SourceCache) Layer {
	return func(base ports.Host) ports.Host {
		return &cachingHost{Host: base, cache: cache}
	}
}

type cachingHost struct {
	ports.Host
	cache ports.SourceCache
}

func (h *cachingHost) ReadFile(path string) (string, bool) {
	if text, ok := h.cache.Text(path); ok {
		return text, true
	}
	return h.Host.ReadFile(path)
}

func (h *cachingHost) FileExists(path string) bool {
	if _, ok := h.cache.Text(path); ok {
		return true
	}
	return h.Host.FileExists(path)
}
