package chart

import (
	"fmt"
	"slices"
)

// CloneError is returned by [Chart.Clone] when a data field holds a value
// that cannot be deep-copied - typically a function, channel, or other
// capability object stored where plain data is expected. Field names the
// offending location, e.g. `style["title"]` or `series[1].style["color"]`.
//
// A CloneError aborts a render before any formatter runs and is reported
// distinctly from formatter and backend failures.
type CloneError struct {
	Field string
	Value any
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("clone %s: unsupported value of type %T", e.Field, e.Value)
}

// Clone produces an independent snapshot of the chart. Series, labels,
// markers, axes, and style values are deep-copied value for value, so
// mutating the clone never affects the original (and vice versa). The
// formatter list and the display binding are capability objects, not data:
// the clone references the same formatters and binding.
//
// Clone is atomic with respect to the calling goroutine's view of the
// chart. It does not lock: callers that mutate a chart from one goroutine
// while cloning it from another must serialize those operations themselves.
func (c *Chart) Clone() (*Chart, error) {
	out := &Chart{
		kind:       c.kind,
		axes:       make(map[Position]*Axis, len(c.axes)),
		formatters: slices.Clone(c.formatters),
		display:    c.display,
	}

	style, err := cloneStyle(c.style, "style")
	if err != nil {
		return nil, err
	}
	out.style = style

	out.series = make([]*Series, len(c.series))
	for i, s := range c.series {
		cp := s.clone()
		cp.Style, err = cloneStyle(s.Style, fmt.Sprintf("series[%d].style", i))
		if err != nil {
			return nil, err
		}
		out.series[i] = cp
	}

	for p, a := range c.axes {
		out.axes[p] = cloneAxis(a)
	}

	return out, nil
}

// cloneStyle deep-copies a style map, rejecting non-data values.
func cloneStyle(s Style, path string) (Style, error) {
	out := make(Style, len(s))
	for k, v := range s {
		cp, err := cloneValue(v, fmt.Sprintf("%s[%q]", path, k))
		if err != nil {
			return nil, err
		}
		out[k] = cp
	}
	return out, nil
}

// cloneValue deep-copies a single data value. The accepted set is
// deliberately explicit rather than reflective: strings, numbers, bools,
// the package's own value types, and nested slices/maps of those. Anything
// else is a capability smuggled into a data field and fails the clone.
func cloneValue(v any, path string) (any, error) {
	switch val := v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		LineStyle, Marker, Point:
		return val, nil
	case []string:
		return slices.Clone(val), nil
	case []int:
		return slices.Clone(val), nil
	case []float64:
		return slices.Clone(val), nil
	case []Marker:
		return slices.Clone(val), nil
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			cp, err := cloneValue(e, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = cp
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			cp, err := cloneValue(e, fmt.Sprintf("%s[%q]", path, k))
			if err != nil {
				return nil, err
			}
			out[k] = cp
		}
		return out, nil
	case Style:
		return cloneStyle(val, path)
	default:
		return nil, &CloneError{Field: path, Value: v}
	}
}
