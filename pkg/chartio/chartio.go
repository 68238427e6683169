// Package chartio reads and writes chart definitions, the serialized form
// of charts used by the CLI, the HTTP API, and the chart store.
//
// Definitions exist in two formats: TOML for files people edit by hand and
// JSON for the API and storage. Both map onto the same [Definition] struct,
// which converts to and from the in-memory chart model.
//
// A definition's identity is the SHA-256 hash of its canonical JSON
// encoding with storage metadata stripped, so the same chart content
// always maps to the same cache keys.
package chartio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/blueprintmrk/graphy/pkg/cache"
	"github.com/blueprintmrk/graphy/pkg/chart"
	"github.com/blueprintmrk/graphy/pkg/errors"
	"github.com/blueprintmrk/graphy/pkg/format"
)

// Format identifies a definition encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Definition is the serialized form of a chart. ID, CreatedAt, and
// UpdatedAt are storage metadata managed by the chart store and excluded
// from content hashing.
type Definition struct {
	ID        string    `json:"id,omitempty" toml:"id,omitempty" bson:"_id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty" toml:"-" bson:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" toml:"-" bson:"updated_at,omitempty"`

	Name   string `json:"name" toml:"name" bson:"name"`
	Kind   string `json:"kind" toml:"kind" bson:"kind"`
	Title  string `json:"title,omitempty" toml:"title,omitempty" bson:"title,omitempty"`
	Width  int    `json:"width,omitempty" toml:"width,omitempty" bson:"width,omitempty"`
	Height int    `json:"height,omitempty" toml:"height,omitempty" bson:"height,omitempty"`
	Legend string `json:"legend,omitempty" toml:"legend,omitempty" bson:"legend,omitempty"`

	Bar   *BarDef `json:"bar,omitempty" toml:"bar,omitempty" bson:"bar,omitempty"`
	Pie3D bool    `json:"pie_3d,omitempty" toml:"pie_3d,omitempty" bson:"pie_3d,omitempty"`

	Series []SeriesDef        `json:"series" toml:"series" bson:"series"`
	Axes   map[string]AxisDef `json:"axes,omitempty" toml:"axes,omitempty" bson:"axes,omitempty"`
}

// BarDef carries bar chart geometry and orientation.
type BarDef struct {
	Orientation string `json:"orientation,omitempty" toml:"orientation,omitempty" bson:"orientation,omitempty"`
	Stacked     bool   `json:"stacked,omitempty" toml:"stacked,omitempty" bson:"stacked,omitempty"`
	Thickness   int    `json:"thickness,omitempty" toml:"thickness,omitempty" bson:"thickness,omitempty"`
	Gap         int    `json:"gap,omitempty" toml:"gap,omitempty" bson:"gap,omitempty"`
	GroupGap    int    `json:"group_gap,omitempty" toml:"group_gap,omitempty" bson:"group_gap,omitempty"`
}

// SeriesDef is one data series. Values lists the present data points in
// order; Gaps lists zero-based positions in the final point sequence that
// are missing (TOML and JSON arrays cannot express holes directly).
type SeriesDef struct {
	Label   string      `json:"label,omitempty" toml:"label,omitempty" bson:"label,omitempty"`
	Values  []float64   `json:"values" toml:"values" bson:"values"`
	Gaps    []int       `json:"gaps,omitempty" toml:"gaps,omitempty" bson:"gaps,omitempty"`
	Color   string      `json:"color,omitempty" toml:"color,omitempty" bson:"color,omitempty"`
	Line    string      `json:"line,omitempty" toml:"line,omitempty" bson:"line,omitempty"`
	Markers []MarkerDef `json:"markers,omitempty" toml:"markers,omitempty" bson:"markers,omitempty"`
}

// MarkerDef is a point marker on a series.
type MarkerDef struct {
	Shape string  `json:"shape" toml:"shape" bson:"shape"`
	Color string  `json:"color,omitempty" toml:"color,omitempty" bson:"color,omitempty"`
	Size  float64 `json:"size,omitempty" toml:"size,omitempty" bson:"size,omitempty"`
	Point int     `json:"point" toml:"point" bson:"point"`
}

// AxisDef configures one chart axis. Keys in Definition.Axes are the
// position names "left", "right", "top", and "bottom".
type AxisDef struct {
	Labels    []string  `json:"labels,omitempty" toml:"labels,omitempty" bson:"labels,omitempty"`
	Positions []float64 `json:"positions,omitempty" toml:"positions,omitempty" bson:"positions,omitempty"`
	Min       *float64  `json:"min,omitempty" toml:"min,omitempty" bson:"min,omitempty"`
	Max       *float64  `json:"max,omitempty" toml:"max,omitempty" bson:"max,omitempty"`
	Grid      float64   `json:"grid,omitempty" toml:"grid,omitempty" bson:"grid,omitempty"`
	Gridlines bool      `json:"gridlines,omitempty" toml:"gridlines,omitempty" bson:"gridlines,omitempty"`
}

// lineStyles maps definition line names to model presets.
var lineStyles = map[string]chart.LineStyle{
	"solid":        chart.LineSolid,
	"dashed":       chart.LineDashed,
	"dotted":       chart.LineDotted,
	"thick_solid":  chart.LineThickSolid,
	"thick_dashed": chart.LineThickDashed,
}

var positionNames = map[string]chart.Position{
	"left":   chart.Left,
	"right":  chart.Right,
	"top":    chart.Top,
	"bottom": chart.Bottom,
}

// =============================================================================
// Decoding
// =============================================================================

// Decode reads a definition in the given format.
func Decode(r io.Reader, f Format) (*Definition, error) {
	var def Definition
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "invalid JSON definition")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&def); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "invalid TOML definition")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported definition format %q", f)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// DecodeFile reads a definition file, inferring the format from the
// extension (.json or .toml).
func DecodeFile(path string) (*Definition, error) {
	f, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "definition file %s not found", path)
		}
		return nil, err
	}
	defer file.Close()
	return Decode(file, f)
}

// FormatForPath infers the definition format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unsupported definition extension %q", filepath.Ext(path))
}

// Encode writes a definition in the given format.
func Encode(w io.Writer, def *Definition, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(def)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(def)
	}
	return errors.New(errors.ErrCodeUnsupported, "unsupported definition format %q", f)
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks a definition's structural invariants, returning a
// structured error naming the first offending field.
func (d *Definition) Validate() error {
	if d.Name != "" {
		if err := errors.ValidateChartName(d.Name); err != nil {
			return err
		}
	}
	if err := errors.ValidateKind(d.Kind); err != nil {
		return err
	}
	if d.Width < 0 || d.Height < 0 {
		return errors.New(errors.ErrCodeInvalidDefinition, "width and height cannot be negative")
	}
	for i, s := range d.Series {
		if s.Color != "" {
			if err := errors.ValidateColor(s.Color); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidDefinition, err, "series[%d]", i)
			}
		}
		if s.Line != "" {
			if _, ok := lineStyles[s.Line]; !ok {
				return errors.New(errors.ErrCodeInvalidDefinition, "series[%d]: unknown line style %q", i, s.Line)
			}
		}
		total := len(s.Values) + len(s.Gaps)
		for _, gap := range s.Gaps {
			if gap < 0 || gap >= total {
				return errors.New(errors.ErrCodeInvalidDefinition, "series[%d]: gap index %d out of range", i, gap)
			}
		}
	}
	for name, axis := range d.Axes {
		if _, ok := positionNames[name]; !ok {
			return errors.New(errors.ErrCodeInvalidDefinition, "unknown axis position %q", name)
		}
		if (axis.Min == nil) != (axis.Max == nil) {
			return errors.New(errors.ErrCodeInvalidDefinition, "axis %q: min and max must be set together", name)
		}
	}
	if d.Bar != nil && d.Bar.Orientation != "" {
		switch d.Bar.Orientation {
		case chart.OrientationVertical, chart.OrientationHorizontal:
		default:
			return errors.New(errors.ErrCodeInvalidDefinition, "unknown bar orientation %q", d.Bar.Orientation)
		}
	}
	return nil
}

// =============================================================================
// Conversion
// =============================================================================

// Chart builds the in-memory chart from the definition. Built charts carry
// the default formatter set (auto color, auto scale); charts constructed
// directly with chart.New carry none.
func (d *Definition) Chart() (*chart.Chart, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	c := chart.New(kindOf(d.Kind))
	if d.Title != "" {
		c.SetStyle(chart.StyleTitle, d.Title)
	}
	if d.Width > 0 {
		c.SetStyle(chart.StyleWidth, d.Width)
	}
	if d.Height > 0 {
		c.SetStyle(chart.StyleHeight, d.Height)
	}
	if d.Legend != "" {
		c.SetStyle(chart.StyleLegend, d.Legend)
	}
	if d.Pie3D {
		c.SetStyle(chart.StylePie3D, true)
	}
	if d.Bar != nil {
		if d.Bar.Orientation != "" {
			c.SetStyle(chart.StyleBarOrientation, d.Bar.Orientation)
		}
		if d.Bar.Stacked {
			c.SetStyle(chart.StyleBarStacked, true)
		}
		if d.Bar.Thickness > 0 {
			c.SetStyle(chart.StyleBarThickness, d.Bar.Thickness)
		}
		if d.Bar.Gap > 0 {
			c.SetStyle(chart.StyleBarGap, d.Bar.Gap)
		}
		if d.Bar.GroupGap > 0 {
			c.SetStyle(chart.StyleBarGroupGap, d.Bar.GroupGap)
		}
	}

	for _, sd := range d.Series {
		s := chart.Series{Label: sd.Label, Points: buildPoints(sd.Values, sd.Gaps)}
		if sd.Color != "" {
			s.SetColor(sd.Color)
		}
		if sd.Line != "" {
			s.SetLine(lineStyles[sd.Line])
		}
		for _, md := range sd.Markers {
			s.Markers = append(s.Markers, chart.Marker{
				Shape: chart.MarkerShape(md.Shape),
				Color: md.Color,
				Size:  md.Size,
				Index: md.Point,
			})
		}
		c.AddSeries(s)
	}

	for name, ad := range d.Axes {
		axis := c.Axis(positionNames[name])
		axis.Labels = append([]string(nil), ad.Labels...)
		axis.LabelPositions = append([]float64(nil), ad.Positions...)
		if ad.Min != nil && ad.Max != nil {
			axis.SetRange(*ad.Min, *ad.Max)
		}
		axis.GridSpacing = ad.Grid
		axis.LabelGridlines = ad.Gridlines
	}

	for _, f := range format.Defaults() {
		c.AddFormatter(f)
	}
	return c, nil
}

// buildPoints interleaves present values with gaps into the full point
// sequence.
func buildPoints(values []float64, gaps []int) []chart.Point {
	total := len(values) + len(gaps)
	gapSet := make(map[int]bool, len(gaps))
	for _, g := range gaps {
		gapSet[g] = true
	}
	points := make([]chart.Point, 0, total)
	next := 0
	for i := 0; i < total; i++ {
		if gapSet[i] {
			points = append(points, chart.Gap)
			continue
		}
		points = append(points, chart.Pt(values[next]))
		next++
	}
	return points
}

// FromChart converts a chart back into a definition, the inverse of
// [Definition.Chart]. Formatters and display bindings are not part of the
// serialized form.
func FromChart(c *chart.Chart, name string) *Definition {
	d := &Definition{
		Name: name,
		Kind: c.Kind().String(),
	}
	style := c.Style()
	d.Title, _ = style.String(chart.StyleTitle)
	if w, ok := style.Int(chart.StyleWidth); ok {
		d.Width = w
	}
	if h, ok := style.Int(chart.StyleHeight); ok {
		d.Height = h
	}
	d.Legend, _ = style.String(chart.StyleLegend)
	d.Pie3D = style.Bool(chart.StylePie3D)

	bar := BarDef{}
	bar.Orientation, _ = style.String(chart.StyleBarOrientation)
	bar.Stacked = style.Bool(chart.StyleBarStacked)
	bar.Thickness, _ = style.Int(chart.StyleBarThickness)
	bar.Gap, _ = style.Int(chart.StyleBarGap)
	bar.GroupGap, _ = style.Int(chart.StyleBarGroupGap)
	if bar != (BarDef{}) {
		d.Bar = &bar
	}

	for _, s := range c.Series() {
		sd := SeriesDef{Label: s.Label, Color: s.Color()}
		for i, p := range s.Points {
			if p.Missing {
				sd.Gaps = append(sd.Gaps, i)
			} else {
				sd.Values = append(sd.Values, p.Value)
			}
		}
		if ls, ok := s.Line(); ok {
			sd.Line = lineName(ls)
		}
		for _, m := range s.Markers {
			sd.Markers = append(sd.Markers, MarkerDef{
				Shape: string(m.Shape),
				Color: m.Color,
				Size:  m.Size,
				Point: m.Index,
			})
		}
		d.Series = append(d.Series, sd)
	}

	for _, pos := range chart.Positions {
		if !c.HasAxis(pos) {
			continue
		}
		axis := c.Axis(pos)
		ad := AxisDef{
			Labels:    append([]string(nil), axis.Labels...),
			Positions: append([]float64(nil), axis.LabelPositions...),
			Grid:      axis.GridSpacing,
			Gridlines: axis.LabelGridlines,
		}
		if axis.HasRange() {
			lo, hi := *axis.Min, *axis.Max
			ad.Min, ad.Max = &lo, &hi
		}
		if isZeroAxis(ad) {
			continue
		}
		if d.Axes == nil {
			d.Axes = map[string]AxisDef{}
		}
		d.Axes[pos.String()] = ad
	}
	return d
}

func isZeroAxis(ad AxisDef) bool {
	return len(ad.Labels) == 0 && len(ad.Positions) == 0 &&
		ad.Min == nil && ad.Max == nil && ad.Grid == 0 && !ad.Gridlines
}

func lineName(ls chart.LineStyle) string {
	for name, preset := range lineStyles {
		if preset == ls {
			return name
		}
	}
	return fmt.Sprintf("%g,%g,%g", ls.Width, ls.On, ls.Off)
}

func kindOf(name string) chart.Kind {
	switch name {
	case "bar":
		return chart.KindBar
	case "pie":
		return chart.KindPie
	case "sparkline":
		return chart.KindSparkline
	default:
		return chart.KindLine
	}
}

// =============================================================================
// Hashing
// =============================================================================

// Hash returns the SHA-256 hex digest of the definition's canonical JSON
// encoding with storage metadata stripped. Equal chart content hashes
// equal regardless of store state.
func (d *Definition) Hash() string {
	clone := *d
	clone.ID = ""
	clone.CreatedAt = time.Time{}
	clone.UpdatedAt = time.Time{}
	// Map keys sort during marshal, struct fields keep declaration order:
	// the encoding is canonical.
	data, _ := json.Marshal(&clone)
	return cache.Hash(data)
}
