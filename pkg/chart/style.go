package chart

// Chart-level style keys. The set is fixed but extensible: backends may
// document additional string keys, and unknown keys are carried through
// cloning untouched.
const (
	// StyleTitle is the chart title (string).
	StyleTitle = "title"
	// StyleWidth is the preferred artifact width in pixels (int). Render
	// options override it.
	StyleWidth = "width"
	// StyleHeight is the preferred artifact height in pixels (int).
	StyleHeight = "height"
	// StyleLegend is the legend placement: "left", "right", "top",
	// "bottom", or "none" (string). Absent means backend default.
	StyleLegend = "legend"
	// StyleBarOrientation selects "vertical" (default) or "horizontal"
	// bars on bar charts (string).
	StyleBarOrientation = "bar_orientation"
	// StyleBarStacked stacks bar series instead of grouping them (bool).
	StyleBarStacked = "bar_stacked"
	// StyleBarThickness is the bar thickness in pixels (int). Absent means
	// the backend derives it from the available space.
	StyleBarThickness = "bar_thickness"
	// StyleBarGap is the gap between bars in pixels (int).
	StyleBarGap = "bar_gap"
	// StyleBarGroupGap is the gap between bar groups in pixels (int).
	StyleBarGroupGap = "bar_group_gap"
	// StylePie3D draws pie charts with a 3D effect (bool).
	StylePie3D = "pie_3d"
)

// Series-level style keys.
const (
	// StyleColor is a hex color triplet, e.g. "0000ff" (string).
	StyleColor = "color"
	// StyleLineStyle is a [LineStyle] value.
	StyleLineStyle = "line_style"
)

// Orientation values for StyleBarOrientation.
const (
	OrientationVertical   = "vertical"
	OrientationHorizontal = "horizontal"
)

// Style maps presentation attribute names to values. Values must be plain
// data - strings, numbers, bools, [LineStyle], [Marker], and nested slices
// or maps of those - so that charts can be cloned; see [Chart.Clone].
type Style map[string]any

// String returns the value for key as a string and whether a string value
// is set.
func (s Style) String(key string) (string, bool) {
	v, ok := s[key].(string)
	return v, ok
}

// Bool returns the value for key as a bool, or false when unset or not a
// bool.
func (s Style) Bool(key string) bool {
	v, _ := s[key].(bool)
	return v
}

// Int returns the value for key coerced to int and whether a numeric value
// is set. JSON and TOML decoders produce float64 and int64 respectively,
// so all three widths are accepted.
func (s Style) Int(key string) (int, bool) {
	switch v := s[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// Float returns the value for key coerced to float64 and whether a numeric
// value is set.
func (s Style) Float(key string) (float64, bool) {
	switch v := s[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
