package domain

import "go.trai.ch/zerr"

var (
	// ErrEmptyRootSet is returned when a session is created with no root modules
	// left after normalization and deduplication.
	ErrEmptyRootSet = zerr.New("root module set is empty")

	// ErrInvalidOptions is returned when compiler options fail structural validation.
	ErrInvalidOptions = zerr.New("invalid compiler options")

	// ErrNotAnalyzed is returned when an emitter is requested before Analyze completed.
	ErrNotAnalyzed = zerr.New("session has not been analyzed")

	// ErrHostRead is returned when the host cannot provide the text of a required file.
	ErrHostRead = zerr.New("host failed to read file")

	// ErrNoConfig is returned when the project configuration file cannot be loaded.
	ErrNoConfig = zerr.New("project configuration not found")

	// ErrCompileErrors is returned when a build completes but one or more
	// modules carry error-severity diagnostics.
	ErrCompileErrors = zerr.New("build completed with errors")

	// ErrNotStarted is returned when a rebuild is requested before a build or
	// watch run has loaded the project.
	ErrNotStarted = zerr.New("engine has no live session")
)
