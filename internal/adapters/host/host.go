// Package host provides the base filesystem host and the decorator layers
// composed around it at session construction: a caching layer routing reads
// through the source cache, and a resource-inlining layer resolving template
// and style references found in annotations.
package host

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/benjaminforras/analog/internal/core/domain"
	"github.com/benjaminforras/analog/internal/core/ports"
)

var _ ports.Host = (*OSHost)(nil)

// moduleExtensions are probed, in order, when an import specifier carries no
// extension.
var moduleExtensions = []string{"", ".mod", ".ag", ".ts"}

// OSHost is the base host reading from the local filesystem under a root.
type OSHost struct {
	root       string
	defaultLib string
}

// NewOS creates a filesystem host rooted at the given directory.
func NewOS(root, defaultLib string) *OSHost {
	return &OSHost{root: root, defaultLib: defaultLib}
}

func (h *OSHost) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(h.root, filepath.FromSlash(domain.NormalizeID(path)))
}

// ReadFile returns the current text of the file.
func (h *OSHost) ReadFile(path string) (string, bool) {
	data, err := os.ReadFile(h.abs(path)) //nolint:gosec // paths come from the project root set
	if err != nil {
		return "", false
	}
	return string(data), true
}

// FileExists reports whether the path resolves to a readable file.
func (h *OSHost) FileExists(path string) bool {
	info, err := os.Stat(h.abs(path))
	return err == nil && !info.IsDir()
}

// ResolveModuleName resolves an import specifier relative to the importing file.
// Only relative specifiers resolve; bare specifiers are external and out of
// the module graph.
func (h *OSHost) ResolveModuleName(specifier, containingFile string) (string, bool) {
	if !strings.HasPrefix(specifier, "./") && !strings.HasPrefix(specifier, "../") {
		return "", false
	}
	base := domain.NormalizeID(containingFile)
	candidate := filepath.ToSlash(filepath.Join(filepath.Dir(base), specifier))
	for _, ext := range moduleExtensions {
		if h.FileExists(candidate + ext) {
			return domain.NormalizeID(candidate + ext), true
		}
	}
	return "", false
}

// DefaultLibFileName returns the id of the ambient default library.
func (h *OSHost) DefaultLibFileName() string {
	return h.defaultLib
}

// Layer decorates a host with an additional capability.
type Layer func(ports.Host) ports.Host

// Compose wraps the base host with the given layers, first layer innermost.
func Compose(base ports.Host, layers ...Layer) ports.Host {
	h := base
	for _, l := range layers {
		h = l(h)
	}
	return h
}
