package format

import "github.com/blueprintmrk/graphy/pkg/chart"

type inlineLegend struct{}

// InlineLegend returns a formatter that replaces the boxed legend with
// labels on the right axis, each placed at the final present value of its
// series. Series without a label or without any present values are skipped.
// The right axis range is mirrored from the dependent axis so label
// positions line up with the plotted data; the dependent axis must have a
// range, so InlineLegend is normally run after AutoScale.
//
// The right axis labels are rebuilt on every application, so running the
// formatter twice yields the same result as running it once.
func InlineLegend() chart.Formatter { return inlineLegend{} }

func (inlineLegend) Name() string { return "inline_legend" }

func (inlineLegend) Apply(c *chart.Chart) error {
	dep := c.DependentAxis()
	right := c.Axis(chart.Right)
	if dep.HasRange() {
		right.SetRange(*dep.Min, *dep.Max)
	}

	labels := make([]string, 0, c.SeriesCount())
	positions := make([]float64, 0, c.SeriesCount())
	for _, s := range c.Series() {
		if s.Label == "" {
			continue
		}
		v, ok := lastValue(s)
		if !ok {
			continue
		}
		labels = append(labels, s.Label)
		positions = append(positions, v)
	}
	right.Labels = labels
	right.LabelPositions = positions

	c.SetStyle(chart.StyleLegend, "none")
	return nil
}

func lastValue(s *chart.Series) (float64, bool) {
	for i := len(s.Points) - 1; i >= 0; i-- {
		if !s.Points[i].Missing {
			return s.Points[i].Value, true
		}
	}
	return 0, false
}
