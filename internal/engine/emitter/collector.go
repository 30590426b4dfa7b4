package emitter

import "github.com/benjaminforras/analog/internal/core/domain"

// DiagnosticCollector partitions compiler output into errors and warnings for
// one emit call. In strict mode warnings are promoted to errors.
type DiagnosticCollector struct {
	strict   bool
	errors   []domain.Diagnostic
	warnings []domain.Diagnostic
}

// NewCollector creates an empty collector.
func NewCollector() *DiagnosticCollector {
	return &DiagnosticCollector{}
}

// NewStrictCollector creates a collector that treats warnings as errors.
func NewStrictCollector() *DiagnosticCollector {
	return &DiagnosticCollector{strict: true}
}

// Collect partitions the given diagnostics by severity.
func (c *DiagnosticCollector) Collect(diags ...domain.Diagnostic) {
	for _, d := range diags {
		if d.Severity == domain.SeverityError {
			c.errors = append(c.errors, d)
			continue
		}
		if c.strict {
			d.Severity = domain.SeverityError
			c.errors = append(c.errors, d)
			continue
		}
		c.warnings = append(c.warnings, d)
	}
}

// Errors returns the collected error diagnostics.
func (c *DiagnosticCollector) Errors() []domain.Diagnostic {
	return c.errors
}

// Warnings returns the collected warning diagnostics.
func (c *DiagnosticCollector) Warnings() []domain.Diagnostic {
	return c.warnings
}

// HasErrors reports whether any error-severity diagnostic was collected.
func (c *DiagnosticCollector) HasErrors() bool {
	return len(c.errors) > 0
}
