package host

import (
	"path/filepath"
	"strings"

	"github.com/benjaminforras/analog/internal/core/domain"
	"github.com/benjaminforras/analog/internal/core/ports"
)

// WithResources returns a layer that adds resource reads for template and
// style references, resolved relative to the annotated module.
func WithResources() Layer {
	return func(base ports.Host) ports.Host {
		return &resourceHost{Host: base}
	}
}

type resourceHost struct {
	ports.Host
}

var _ ports.ResourceReader = (*resourceHost)(nil)

// ReadResource resolves a template/style reference relative to its module and
// returns the inlined text. Trailing whitespace is trimmed so that equal
// resources fingerprint equally regardless of final-newline convention.
func (h *resourceHost) ReadResource(path, containingFile string) (string, bool) {
	resolved := path
	if strings.HasPrefix(path, "./") || strings.HasPrefix(path, "../") {
		base := domain.NormalizeID(containingFile)
		resolved = filepath.ToSlash(filepath.Join(filepath.Dir(base), path))
	}
	text, ok := h.Host.ReadFile(resolved)
	if !ok {
		return "", false
	}
	return strings.TrimRight(text, "\n\r\t "), true
}
