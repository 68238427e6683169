package chart

import "slices"

// Point is a single data value in a series. Missing marks a gap: the point
// occupies a slot in the sequence but carries no value, and backends encode
// it as their missing-data marker.
type Point struct {
	Value   float64
	Missing bool
}

// Pt wraps a value as a present point.
func Pt(v float64) Point { return Point{Value: v} }

// Gap is a missing-value point.
var Gap = Point{Missing: true}

// PointsOf converts plain values into a point slice.
func PointsOf(values ...float64) []Point {
	pts := make([]Point, len(values))
	for i, v := range values {
		pts[i] = Point{Value: v}
	}
	return pts
}

// MarkerShape selects the glyph drawn for a point marker. The constants use
// the single-letter codes shared by chart backends.
type MarkerShape string

const (
	MarkerCircle  MarkerShape = "o"
	MarkerDiamond MarkerShape = "d"
	MarkerSquare  MarkerShape = "s"
	MarkerX       MarkerShape = "x"
	MarkerArrow   MarkerShape = "a"
	MarkerCross   MarkerShape = "c"
)

// Marker decorates a single data point of a series.
type Marker struct {
	Shape MarkerShape
	Color string  // hex triplet, e.g. "0000ff"
	Size  float64 // glyph size in pixels
	Index int     // index of the data point the marker is anchored to
}

// LineStyle describes how a line series is stroked. On/Off give the dash
// pattern in pixels; Off == 0 means a solid line.
type LineStyle struct {
	Width float64
	On    float64
	Off   float64
}

// Preset line styles.
var (
	LineSolid       = LineStyle{Width: 1, On: 1, Off: 0}
	LineDashed      = LineStyle{Width: 1, On: 8, Off: 4}
	LineDotted      = LineStyle{Width: 1, On: 2, Off: 4}
	LineThickSolid  = LineStyle{Width: 2, On: 1, Off: 0}
	LineThickDashed = LineStyle{Width: 2, On: 8, Off: 4}
)

// Solid reports whether the style has no dash gap.
func (s LineStyle) Solid() bool { return s.Off == 0 }

// Series is one data line, bar group, or pie, depending on the chart kind.
// Series lengths may differ within a chart - charts are not required to be
// rectangular. A series never references a formatter or a backend.
//
// Unset style attributes are legally absent: nothing defaults them until a
// formatter (e.g. auto-coloring) or a backend fills them in.
type Series struct {
	Label   string
	Points  []Point
	Style   Style
	Markers []Marker
}

// NewSeries builds a labeled series from plain values.
func NewSeries(label string, values ...float64) Series {
	return Series{Label: label, Points: PointsOf(values...), Style: Style{}}
}

// Color returns the series color, or "" if unset.
func (s *Series) Color() string {
	c, _ := s.Style.String(StyleColor)
	return c
}

// SetColor sets the series color as a hex triplet.
func (s *Series) SetColor(color string) {
	if s.Style == nil {
		s.Style = Style{}
	}
	s.Style[StyleColor] = color
}

// Line returns the series line style and whether one is set.
func (s *Series) Line() (LineStyle, bool) {
	v, ok := s.Style[StyleLineStyle]
	if !ok {
		return LineStyle{}, false
	}
	ls, ok := v.(LineStyle)
	return ls, ok
}

// SetLine sets the series line style.
func (s *Series) SetLine(ls LineStyle) {
	if s.Style == nil {
		s.Style = Style{}
	}
	s.Style[StyleLineStyle] = ls
}

// Values returns the point values in order. Missing points are skipped.
func (s *Series) Values() []float64 {
	vals := make([]float64, 0, len(s.Points))
	for _, p := range s.Points {
		if !p.Missing {
			vals = append(vals, p.Value)
		}
	}
	return vals
}

// Range returns the minimum and maximum present values. ok is false when
// the series has no present points.
func (s *Series) Range() (min, max float64, ok bool) {
	for _, p := range s.Points {
		if p.Missing {
			continue
		}
		if !ok {
			min, max, ok = p.Value, p.Value, true
			continue
		}
		if p.Value < min {
			min = p.Value
		}
		if p.Value > max {
			max = p.Value
		}
	}
	return min, max, ok
}

// clone returns a deep copy of the series data. The style map is copied by
// the caller, which owns the data/capability split.
func (s *Series) clone() *Series {
	return &Series{
		Label:   s.Label,
		Points:  slices.Clone(s.Points),
		Markers: slices.Clone(s.Markers),
	}
}
