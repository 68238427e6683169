package chart

import (
	"context"
	"errors"
	"slices"
)

// ErrNoDisplay is returned by [Chart.Render] when the chart has no display
// binding attached. Attach one with [Chart.SetDisplay] or render through a
// backend directly.
var ErrNoDisplay = errors.New("chart has no display binding")

// Kind identifies the chart family a backend should draw. It is plain data
// on the single concrete [Chart] type - there is no per-kind chart subtype.
type Kind int

const (
	// KindLine draws each series as a connected line.
	KindLine Kind = iota
	// KindBar draws each series as grouped or stacked bars.
	KindBar
	// KindPie draws the points of each series as pie segments.
	KindPie
	// KindSparkline draws a minimal line without axes or chrome.
	KindSparkline
)

// String returns the lowercase name of the kind ("line", "bar", ...).
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindBar:
		return "bar"
	case KindPie:
		return "pie"
	case KindSparkline:
		return "sparkline"
	default:
		return "unknown"
	}
}

// Formatter is a named transform applied to a chart clone before rendering.
// Apply mutates the chart it receives in place; it is always invoked with a
// private clone, never the user's original chart.
//
// A Formatter must not assume it is the only one attached and must not
// assume its position in the sequence - callers control ordering through
// insertion order. Formatters should be idempotent on their own output
// (re-applying must not change the result); the built-ins in package format
// satisfy this. A Formatter must not trigger another render.
type Formatter interface {
	// Name identifies the formatter in errors and logs.
	Name() string
	// Apply adjusts the chart's presentation. A non-nil error aborts the
	// pipeline and discards the clone.
	Apply(c *Chart) error
}

// Artifact is the opaque result of rendering a chart: a URL, an HTML
// fragment, an encoded image. ContentType is a MIME type describing Data;
// the concrete shape is backend-specific.
type Artifact struct {
	ContentType string
	Data        []byte
}

// String returns the artifact data as a string. This is the natural
// accessor for text artifacts such as chart URLs.
func (a Artifact) String() string { return string(a.Data) }

// Display is the render surface a display binding exposes. A binding
// pre-associates a chart with a backend and options so a single call can
// produce an artifact; see render.Binding for the concrete implementation.
type Display interface {
	Render(ctx context.Context) (Artifact, error)
}

// Chart is the root entity a user manipulates: an ordered sequence of
// series plus chart-level presentation state. The zero value is not usable;
// create charts with [New].
//
// A Chart is mutable at any time outside an in-flight render. During a
// render all pipeline mutation happens on a clone, so the instance the user
// holds is never written to by the core.
type Chart struct {
	kind       Kind
	series     []*Series
	style      Style
	axes       map[Position]*Axis
	formatters []Formatter
	display    Display
}

// New creates an empty chart of the given kind with no series, no
// formatters, and an empty style map.
func New(kind Kind) *Chart {
	return &Chart{
		kind:  kind,
		style: Style{},
		axes:  map[Position]*Axis{},
	}
}

// Kind returns the chart kind set at construction.
func (c *Chart) Kind() Kind { return c.kind }

// AddSeries appends a series and returns a pointer to the stored copy for
// further mutation. Order is meaningful: it drives rendering order, default
// coloring, and legend order. Adding an empty series is permitted;
// backends must tolerate it (typically by dropping it at encode time).
func (c *Chart) AddSeries(s Series) *Series {
	if s.Style == nil {
		s.Style = Style{}
	}
	stored := &s
	c.series = append(c.series, stored)
	return stored
}

// Series returns the chart's series in order. The returned slice contains
// pointers to the actual series, so modifications affect the chart.
func (c *Chart) Series() []*Series { return c.series }

// SeriesCount returns the number of series attached to the chart.
func (c *Chart) SeriesCount() int { return len(c.series) }

// SetStyle sets a chart-level presentation attribute. Keys are the Style*
// constants plus any backend-recognized extension; values must be plain
// data (see [Chart.Clone]). Setting a style never fails.
func (c *Chart) SetStyle(key string, value any) { c.style[key] = value }

// StyleValue returns the chart-level style value for key and whether it is
// set.
func (c *Chart) StyleValue(key string) (any, bool) {
	v, ok := c.style[key]
	return v, ok
}

// Style returns the chart-level style map. The returned map is the live
// map, never nil; modifications affect the chart.
func (c *Chart) Style() Style { return c.style }

// AddFormatter appends a formatter to the pipeline. It will run last among
// the currently attached formatters, but before any formatter attached by a
// later call.
func (c *Chart) AddFormatter(f Formatter) {
	c.formatters = append(c.formatters, f)
}

// InsertFormatter inserts a formatter at index i, shifting subsequent
// formatters. Index 0 forces the formatter to run before all currently
// attached ones; this front-insertion is the supported precedence
// mechanism - built-in formatters have no special pipeline privilege.
// Indexes are clamped to the valid range.
func (c *Chart) InsertFormatter(i int, f Formatter) {
	if i < 0 {
		i = 0
	}
	if i > len(c.formatters) {
		i = len(c.formatters)
	}
	c.formatters = slices.Insert(c.formatters, i, f)
}

// Formatters returns the attached formatters in execution order. The
// returned slice is a copy; the elements are shared capability objects.
func (c *Chart) Formatters() []Formatter {
	return slices.Clone(c.formatters)
}

// SetDisplay attaches a display binding for ergonomic rendering. The chart
// holds a non-owning reference; the binding's lifetime is governed by
// whoever constructed it. Pass nil to detach.
func (c *Chart) SetDisplay(d Display) { c.display = d }

// Display returns the attached display binding, or nil.
func (c *Chart) Display() Display { return c.display }

// Render produces an artifact through the attached display binding.
// It returns [ErrNoDisplay] if no binding is attached.
func (c *Chart) Render(ctx context.Context) (Artifact, error) {
	if c.display == nil {
		return Artifact{}, ErrNoDisplay
	}
	return c.display.Render(ctx)
}
