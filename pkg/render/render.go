package render

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/blueprintmrk/graphy/pkg/chart"
	"github.com/blueprintmrk/graphy/pkg/format"
	"github.com/blueprintmrk/graphy/pkg/observability"
)

// =============================================================================
// Options
// =============================================================================

// Well-known option keys understood by all backends. Backends document any
// additional keys of their own.
const (
	OptWidth  = "width"  // int, output width in pixels
	OptHeight = "height" // int, output height in pixels
)

// Default output dimensions, applied when a render request does not set
// width or height.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Options carries backend parameters for a single render request. A nil
// Options is valid and means "all defaults". Unknown keys are ignored by
// backends that do not understand them.
type Options map[string]any

// Int reads an integer option, accepting the numeric types that survive
// JSON decoding. Returns def when the key is absent or not numeric.
func (o Options) Int(key string, def int) int {
	switch v := o[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// Float reads a float option, falling back to def.
func (o Options) Float(key string, def float64) float64 {
	switch v := o[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

// String reads a string option, falling back to def.
func (o Options) String(key, def string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return def
}

// Bool reads a bool option, falling back to def.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return def
}

// Clone returns a shallow copy of the options.
func (o Options) Clone() Options {
	if o == nil {
		return Options{}
	}
	return maps.Clone(o)
}

// WithDefaults returns a copy of the options with width and height filled
// in where the caller left them unset. The receiver is not modified.
func (o Options) WithDefaults() Options {
	out := o.Clone()
	if _, ok := out[OptWidth]; !ok {
		out[OptWidth] = DefaultWidth
	}
	if _, ok := out[OptHeight]; !ok {
		out[OptHeight] = DefaultHeight
	}
	return out
}

// =============================================================================
// Backend contract
// =============================================================================

// Backend renders a formatted chart into an artifact. Implementations must
// treat the chart as read-only: the render boundary owns cloning and
// formatting, and a backend that mutates its input corrupts caching.
type Backend interface {
	// Name identifies the backend in logs, errors, and cache keys.
	Name() string

	// Render produces an artifact from a formatted chart. The options have
	// width and height already defaulted.
	Render(ctx context.Context, c *chart.Chart, opts Options) (chart.Artifact, error)
}

// Error reports a backend failure. Element names the chart element the
// backend could not handle, such as "series[2]" or `axis "left"`, and is
// empty when the failure concerns the chart as a whole.
type Error struct {
	Backend string
	Element string
	Cause   error
}

func (e *Error) Error() string {
	if e.Element == "" {
		return fmt.Sprintf("render backend %q: %v", e.Backend, e.Cause)
	}
	return fmt.Sprintf("render backend %q: %s: %v", e.Backend, e.Element, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Errorf builds a backend Error with a formatted cause.
func Errorf(backend, element, msg string, args ...any) *Error {
	return &Error{Backend: backend, Element: element, Cause: fmt.Errorf(msg, args...)}
}

// =============================================================================
// The render boundary
// =============================================================================

// Render clones c, runs the clone's formatter pipeline, and passes the
// formatted clone to the backend. The caller's chart is never modified. The
// returned error is a *chart.CloneError, *format.PipelineError, or *Error
// depending on which stage failed; on any failure the partially processed
// clone is discarded.
func Render(ctx context.Context, c *chart.Chart, b Backend, opts Options) (chart.Artifact, error) {
	hooks := observability.Pipeline()
	kind := c.Kind().String()

	hooks.OnCloneStart(ctx, kind, c.SeriesCount())
	cloneStart := time.Now()
	snapshot, err := c.Clone()
	hooks.OnCloneComplete(ctx, kind, time.Since(cloneStart), err)
	if err != nil {
		return chart.Artifact{}, err
	}

	hooks.OnFormatStart(ctx, kind, len(snapshot.Formatters()))
	formatStart := time.Now()
	err = format.Run(snapshot, snapshot.Formatters())
	hooks.OnFormatComplete(ctx, kind, time.Since(formatStart), err)
	if err != nil {
		return chart.Artifact{}, err
	}

	hooks.OnRenderStart(ctx, b.Name())
	renderStart := time.Now()
	artifact, err := b.Render(ctx, snapshot, opts.WithDefaults())
	hooks.OnRenderComplete(ctx, b.Name(), len(artifact.Data), time.Since(renderStart), err)
	if err != nil {
		// A failed backend yields no artifact, partial or otherwise.
		return chart.Artifact{}, err
	}
	return artifact, nil
}

// =============================================================================
// Display binding
// =============================================================================

// Binding ties a chart to a backend and options and satisfies the
// chart.Display interface. Rendering through a binding goes through the
// same clone-and-format boundary as calling Render directly.
type Binding struct {
	chart   *chart.Chart
	backend Backend
	opts    Options
}

// Bind creates a display binding for c. It does not attach the binding;
// callers pass it to chart.SetDisplay.
func Bind(c *chart.Chart, b Backend, opts Options) *Binding {
	return &Binding{chart: c, backend: b, opts: opts.Clone()}
}

// Backend returns the backend the binding renders through.
func (b *Binding) Backend() Backend { return b.backend }

// Options returns a copy of the binding's options.
func (b *Binding) Options() Options { return b.opts.Clone() }

// Render implements chart.Display.
func (b *Binding) Render(ctx context.Context) (chart.Artifact, error) {
	return Render(ctx, b.chart, b.backend, b.opts)
}
