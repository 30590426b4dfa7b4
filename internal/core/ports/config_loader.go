package ports

import "github.com/benjaminforras/analog/internal/core/domain"

// ProjectConfig is the loaded project configuration: the root-module set and
// the compiler options a session is constructed with.
type ProjectConfig struct {
	RootDir string
	Roots   []string
	Options domain.CompilerOptions
}

// ConfigLoader loads the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	Load(cwd string) (*ProjectConfig, error)
}
