// Package config provides the project configuration loader.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/benjaminforras/analog/internal/core/domain"
	"github.com/benjaminforras/analog/internal/core/ports"
)

// DefaultFilename is the project configuration file name.
const DefaultFilename = "analog.yaml"

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
	logger   ports.Logger
}

// NewLoader creates a loader for the default configuration file name.
func NewLoader(log ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{Filename: DefaultFilename, logger: log}
}

// Load reads the configuration from the given working directory.
func (l *FileConfigLoader) Load(cwd string) (*ports.ProjectConfig, error) {
	path := filepath.Join(cwd, l.Filename)
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.RootDir == "" {
		cfg.RootDir = cwd
	}
	if l.logger != nil {
		l.logger.Info("loaded project configuration from " + path)
	}
	return cfg, nil
}

// projectFile is the YAML schema of analog.yaml.
type projectFile struct {
	Roots   []string `yaml:"roots"`
	RootDir string   `yaml:"rootDir"`
	Options struct {
		OutDir            string `yaml:"outDir"`
		SourceMap         bool   `yaml:"sourceMap"`
		LiveReload        bool   `yaml:"liveReload"`
		DefaultLib        string `yaml:"defaultLib"`
		StrictAnnotations bool   `yaml:"strictAnnotations"`
	} `yaml:"options"`
}

// Load reads a configuration file and maps it onto a ProjectConfig. Omitted
// option fields fall back to defaults; an empty root set is rejected here
// rather than at session construction so the error names the file.
func Load(path string) (*ports.ProjectConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrNoConfig.Error())
	}

	var file projectFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	if len(file.Roots) == 0 {
		return nil, zerr.With(domain.ErrEmptyRootSet, "config", path)
	}

	opts := domain.DefaultOptions()
	if file.Options.OutDir != "" {
		opts.OutDir = file.Options.OutDir
	}
	if file.Options.DefaultLib != "" {
		opts.DefaultLib = file.Options.DefaultLib
	}
	opts.SourceMap = file.Options.SourceMap
	opts.LiveReload = file.Options.LiveReload
	opts.StrictAnnotations = file.Options.StrictAnnotations

	return &ports.ProjectConfig{
		RootDir: file.RootDir,
		Roots:   file.Roots,
		Options: opts,
	}, nil
}
