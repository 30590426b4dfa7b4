package ports

// Host is the capability through which the engine reads and resolves source
// files. Collaborator-supplied decorator layers (caching, resource inlining)
// are composed around a base host before session creation; the engine never
// patches a host at runtime.
//
//go:generate mockgen -source=host.go -destination=mocks/mock_host.go -package=mocks
type Host interface {
	// ReadFile returns the current text of the file, or ok=false when the
	// file does not exist or cannot be read.
	ReadFile(path string) (text string, ok bool)
	// FileExists reports whether the path resolves to a readable file.
	FileExists(path string) bool
	// ResolveModuleName resolves an import specifier relative to the
	// importing file into a normalized file id.
	ResolveModuleName(specifier, containingFile string) (string, bool)
	// DefaultLibFileName returns the id of the ambient default library.
	DefaultLibFileName() string
}

// ResourceReader is the optional capability added by the resource-inlining
// host layer: it resolves template/style references found in annotations.
type ResourceReader interface {
	ReadResource(path, containingFile string) (text string, ok bool)
}
