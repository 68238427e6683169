package format

import (
	"sort"

	"github.com/blueprintmrk/graphy/pkg/chart"
)

type labelSeparator struct {
	gap float64
}

// LabelSeparator returns a formatter that nudges right-axis labels apart
// until adjacent labels are at least gap apart in data units, so inline
// legend labels for series that end near each other do not overlap. Labels
// are kept in position order and clamped to the axis range when one is set.
// Positions already separated by gap or more are left alone.
func LabelSeparator(gap float64) chart.Formatter {
	return labelSeparator{gap: gap}
}

func (labelSeparator) Name() string { return "label_separator" }

func (l labelSeparator) Apply(c *chart.Chart) error {
	if l.gap <= 0 || !c.HasAxis(chart.Right) {
		return nil
	}
	axis := c.Axis(chart.Right)
	n := len(axis.LabelPositions)
	if n < 2 || len(axis.Labels) != n {
		return nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return axis.LabelPositions[order[a]] < axis.LabelPositions[order[b]]
	})

	labels := make([]string, n)
	positions := make([]float64, n)
	for i, idx := range order {
		labels[i] = axis.Labels[idx]
		positions[i] = axis.LabelPositions[idx]
	}

	for i := 1; i < n; i++ {
		if positions[i]-positions[i-1] < l.gap {
			positions[i] = positions[i-1] + l.gap
		}
	}
	if axis.HasRange() {
		if top := *axis.Max; positions[n-1] > top {
			positions[n-1] = top
		}
		for i := n - 2; i >= 0; i-- {
			if positions[i+1]-positions[i] < l.gap {
				positions[i] = positions[i+1] - l.gap
			}
		}
		if bottom := *axis.Min; positions[0] < bottom {
			positions[0] = bottom
		}
	}

	axis.Labels = labels
	axis.LabelPositions = positions
	return nil
}
