package chart

// Position locates an axis on the chart frame.
type Position int

const (
	Left Position = iota
	Right
	Top
	Bottom
)

// String returns the lowercase position name.
func (p Position) String() string {
	switch p {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Positions lists all axis positions in a stable order.
var Positions = []Position{Left, Right, Top, Bottom}

// Axis describes one edge of the chart frame: tick labels, their
// positions, the value range, and grid configuration. All fields are
// optional; an axis with no labels is skipped by backends.
type Axis struct {
	// Labels are the tick labels in order.
	Labels []string
	// LabelPositions places each label along the axis in data units.
	// When empty, backends space labels evenly.
	LabelPositions []float64
	// Min and Max bound the axis range. Both must be set together; when
	// nil, backends derive the range from the data.
	Min *float64
	Max *float64
	// GridSpacing draws grid lines every GridSpacing data units. Zero
	// disables the grid for this axis.
	GridSpacing float64
	// LabelGridlines extends a tick mark across the full chart at each
	// label position.
	LabelGridlines bool
}

// HasRange reports whether both Min and Max are set.
func (a *Axis) HasRange() bool { return a != nil && a.Min != nil && a.Max != nil }

// SetRange sets both bounds of the axis.
func (a *Axis) SetRange(min, max float64) {
	a.Min = &min
	a.Max = &max
}

// Axis returns the axis at the given position, creating an empty one on
// first access. The returned pointer is the live axis; modifications
// affect the chart.
func (c *Chart) Axis(p Position) *Axis {
	if a, ok := c.axes[p]; ok {
		return a
	}
	a := &Axis{}
	c.axes[p] = a
	return a
}

// HasAxis reports whether an axis exists at the position without creating
// one.
func (c *Chart) HasAxis(p Position) bool {
	_, ok := c.axes[p]
	return ok
}

// DependentAxis returns the axis that carries data values: the bottom axis
// for horizontal bar charts, the left axis otherwise. The axis is created
// on first access.
func (c *Chart) DependentAxis() *Axis {
	if c.kind == KindBar {
		if o, _ := c.style.String(StyleBarOrientation); o == OrientationHorizontal {
			return c.Axis(Bottom)
		}
	}
	return c.Axis(Left)
}

// cloneAxis deep-copies an axis.
func cloneAxis(a *Axis) *Axis {
	out := &Axis{
		Labels:         append([]string(nil), a.Labels...),
		LabelPositions: append([]float64(nil), a.LabelPositions...),
		GridSpacing:    a.GridSpacing,
		LabelGridlines: a.LabelGridlines,
	}
	if a.Min != nil {
		min := *a.Min
		out.Min = &min
	}
	if a.Max != nil {
		max := *a.Max
		out.Max = &max
	}
	return out
}
