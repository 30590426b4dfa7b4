// Package build holds build-time version metadata.
package build

// Version is set at build time via -ldflags.
var Version = "dev"
