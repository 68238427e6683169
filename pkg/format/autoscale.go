package format

import "github.com/blueprintmrk/graphy/pkg/chart"

type autoScale struct {
	buffer float64
}

// AutoScale returns a formatter that sets the dependent axis range from the
// data when the user has not set one. The range is padded by 5% of the data
// span on each side so points never sit on the chart border. An axis with
// an explicit range is never touched, which also makes the formatter
// idempotent.
func AutoScale() chart.Formatter {
	return autoScale{buffer: 0.05}
}

// AutoScaleBuffer is AutoScale with a custom padding fraction.
func AutoScaleBuffer(buffer float64) chart.Formatter {
	return autoScale{buffer: buffer}
}

func (autoScale) Name() string { return "auto_scale" }

func (a autoScale) Apply(c *chart.Chart) error {
	axis := c.DependentAxis()
	if axis.HasRange() {
		return nil
	}
	min, max, ok := dataRange(c)
	if !ok {
		return nil
	}
	if min == max {
		min, max = min-1, max+1
	}
	pad := (max - min) * a.buffer
	axis.SetRange(min-pad, max+pad)
	return nil
}

// dataRange reports the minimum and maximum present value across all series.
func dataRange(c *chart.Chart) (min, max float64, ok bool) {
	for _, s := range c.Series() {
		lo, hi, has := s.Range()
		if !has {
			continue
		}
		if !ok {
			min, max, ok = lo, hi, true
			continue
		}
		if lo < min {
			min = lo
		}
		if hi > max {
			max = hi
		}
	}
	return min, max, ok
}
