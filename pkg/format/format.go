package format

import (
	"fmt"

	"github.com/blueprintmrk/graphy/pkg/chart"
)

// =============================================================================
// Errors
// =============================================================================

// PipelineError reports the first formatter failure during a pipeline run.
// It carries enough context to identify which formatter failed and where it
// sat in the sequence.
type PipelineError struct {
	Index     int    // zero-based position in the formatter list
	Formatter string // the failing formatter's Name()
	Cause     error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("formatter %q at position %d: %v", e.Formatter, e.Index, e.Cause)
}

func (e *PipelineError) Unwrap() error { return e.Cause }

// =============================================================================
// Pipeline
// =============================================================================

// Run applies formatters to c in order. Each formatter observes the effects
// of every formatter before it. Run stops at the first failure and returns a
// *PipelineError wrapping it; formatters after the failing one never execute.
//
// The caller is expected to pass a disposable chart (typically a clone), so
// a partially formatted chart can be discarded on error.
func Run(c *chart.Chart, formatters []chart.Formatter) error {
	for i, f := range formatters {
		if err := f.Apply(c); err != nil {
			return &PipelineError{Index: i, Formatter: f.Name(), Cause: err}
		}
	}
	return nil
}

// =============================================================================
// Adapters
// =============================================================================

type funcFormatter struct {
	name  string
	apply func(*chart.Chart) error
}

func (f funcFormatter) Name() string               { return f.name }
func (f funcFormatter) Apply(c *chart.Chart) error { return f.apply(c) }

// Func wraps a plain function as a named formatter.
func Func(name string, apply func(*chart.Chart) error) chart.Formatter {
	return funcFormatter{name: name, apply: apply}
}

// Defaults returns the formatter set attached to charts built from
// definitions and by the CLI: automatic series coloring followed by
// automatic axis scaling. Charts constructed directly through chart.New
// carry no formatters.
func Defaults() []chart.Formatter {
	return []chart.Formatter{AutoColor(), AutoScale()}
}
