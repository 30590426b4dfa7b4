package domain

import "fmt"

// Severity classifies a compiler diagnostic.
type Severity int

const (
	// SeverityWarning marks an informational, non-fatal diagnostic.
	SeverityWarning Severity = iota
	// SeverityError marks a per-module compile error. Emitted content for a
	// module carrying an error diagnostic must not be consumed.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is a single compiler message bound to a source location.
// Diagnostics are returned in-band and never thrown.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	File     InternedString
	Line     int
	Column   int
}

// Error returns a Diagnostic with error severity.
func Error(file, code, message string) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		File:     NewInternedString(file),
	}
}

// Warning returns a Diagnostic with warning severity.
func Warning(file, code, message string) Diagnostic {
	return Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		File:     NewInternedString(file),
	}
}

// String formats the diagnostic the way the CLI prints it.
func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s %s: %s", d.File.String(), d.Line, d.Column, d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s %s: %s", d.File.String(), d.Severity, d.Code, d.Message)
}

// HasErrors reports whether any diagnostic in the slice is error-severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
