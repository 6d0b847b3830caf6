// Package diag provides a uniform diagnostic side channel: every
// GrammarError, TableConflict, and ParseError the pipeline
// produces is also recorded as a Diagnostic, independent of the boolean
// verdict each stage returns. This lets the CLI and HTTP front ends render
// "here is everything wrong with your grammar/parse" in one place instead
// of threading ad hoc formatting through every package.
package diag

import "fmt"

// Severity classifies a Diagnostic. Error diagnostics correspond to a
// GrammarError or a ParseError (the pipeline halts); Warning diagnostics
// correspond to a TableConflict under the builder's permissive policy
// (the pipeline continues, the grammar just isn't SLR(1)).
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one recorded finding: its severity, a human-readable
// message, and the stage of the pipeline that produced it.
type Diagnostic struct {
	Severity Severity
	Stage    string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Stage, d.Message)
}

// Collector accumulates Diagnostics across a single pipeline run (grammar
// validation, table construction, parsing). It has no interior
// synchronization; each pipeline run owns one Collector and uses it from a
// single goroutine.
type Collector struct {
	diagnostics []Diagnostic
}

// New returns an empty Collector.
func New() *Collector {
	return &Collector{}
}

// Add records a Diagnostic.
func (c *Collector) Add(sev Severity, stage, message string) {
	c.diagnostics = append(c.diagnostics, Diagnostic{Severity: sev, Stage: stage, Message: message})
}

// Addf records a Diagnostic with a formatted message.
func (c *Collector) Addf(sev Severity, stage, format string, args ...any) {
	c.Add(sev, stage, fmt.Sprintf(format, args...))
}

// All returns every recorded Diagnostic, in recording order.
func (c *Collector) All() []Diagnostic {
	return c.diagnostics
}

// HasErrors reports whether any recorded Diagnostic has Severity Error.
func (c *Collector) HasErrors() bool {
	for _, d := range c.diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}
