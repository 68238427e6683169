package googlechart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blueprintmrk/graphy/pkg/chart"
	"github.com/blueprintmrk/graphy/pkg/render"
)

// Google Chart API parameter names.
const (
	paramType         = "cht"
	paramSize         = "chs"
	paramData         = "chd"
	paramColor        = "chco"
	paramLegend       = "chdl"
	paramAxisType     = "chxt"
	paramAxisLabel    = "chxl"
	paramAxisPosition = "chxp"
	paramAxisRange    = "chxr"
	paramAxisTicks    = "chxtc"
	paramLineStyle    = "chls"
	paramGrid         = "chg"
	paramMarker       = "chm"
	paramLabel        = "chl"
	paramBarSize      = "chbh"
	paramZeroPoint    = "chp"
)

// Params builds the full Google Chart API parameter map for a formatted
// chart. Collecting the parameters before URL assembly keeps them easy to
// test piecemeal.
func Params(c *chart.Chart, opts render.Options) (map[string]string, error) {
	enc, err := ParseEncoding(opts.String(OptEncoding, ""))
	if err != nil {
		return nil, render.Errorf(backendName, "", "%v", err)
	}
	width := opts.Int(render.OptWidth, render.DefaultWidth)
	height := opts.Int(render.OptHeight, render.DefaultHeight)

	params := map[string]string{}
	addLegendParams(params, c)

	if c.Kind() == chart.KindPie {
		if err := addPieDataParams(params, c, enc); err != nil {
			return nil, err
		}
	} else {
		if err := addDataParams(params, c, enc); err != nil {
			return nil, err
		}
		addColorParams(params, c)
	}

	addAxisParams(params, c, width, height)
	if err := addGridParams(params, c); err != nil {
		return nil, err
	}

	switch c.Kind() {
	case chart.KindLine, chart.KindSparkline:
		addLineStyleParams(params, c)
	case chart.KindBar:
		addZeroPointParams(params, c)
		addBarSizeParams(params, c, width, height)
	}

	code, err := typeCode(c)
	if err != nil {
		return nil, err
	}
	params[paramType] = code

	// Extra parameters override everything generated so far; only the
	// size parameter is applied afterwards.
	for k, v := range extraParams(opts) {
		params[k] = v
	}
	params[paramSize] = fmt.Sprintf("%dx%d", width, height)
	return params, nil
}

func typeCode(c *chart.Chart) (string, error) {
	switch c.Kind() {
	case chart.KindLine:
		return "lc", nil
	case chart.KindSparkline:
		return "lfi", nil
	case chart.KindPie:
		if c.Style().Bool(chart.StylePie3D) {
			return "p3", nil
		}
		return "p", nil
	case chart.KindBar:
		vertical := true
		if o, ok := c.Style().String(chart.StyleBarOrientation); ok {
			vertical = o != chart.OrientationHorizontal
		}
		stacked := c.Style().Bool(chart.StyleBarStacked)
		switch {
		case vertical && !stacked:
			return "bvg", nil
		case vertical && stacked:
			return "bvs", nil
		case !vertical && !stacked:
			return "bhg", nil
		default:
			return "bhs", nil
		}
	}
	return "", render.Errorf(backendName, "", "unsupported chart kind %q", c.Kind())
}

func extraParams(opts render.Options) map[string]string {
	out := map[string]string{}
	switch extra := opts[OptExtra].(type) {
	case map[string]string:
		for k, v := range extra {
			out[k] = v
		}
	case map[string]any:
		for k, v := range extra {
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}

// =============================================================================
// Data
// =============================================================================

// dataScale reports the value range points are scaled into: the dependent
// axis range when one is set, the data range otherwise.
func dataScale(c *chart.Chart) (float64, float64) {
	axis := c.DependentAxis()
	if axis.HasRange() {
		return *axis.Min, *axis.Max
	}
	var lo, hi float64
	ok := false
	for _, s := range c.Series() {
		sLo, sHi, has := s.Range()
		if !has {
			continue
		}
		if !ok {
			lo, hi, ok = sLo, sHi, true
			continue
		}
		lo = min(lo, sLo)
		hi = max(hi, sHi)
	}
	return lo, hi
}

func addDataParams(params map[string]string, c *chart.Chart, enc Encoding) error {
	min, max := dataScale(c)
	var series [][]chart.Point
	var markers []string
	idx := 0
	for _, s := range c.Series() {
		if len(s.Points) == 0 {
			continue // empty series carry no data and no markers
		}
		series = append(series, s.Points)
		for _, m := range s.Markers {
			markers = append(markers, fmt.Sprintf("%s,%s,%d,%d,%s",
				m.Shape, m.Color, idx, m.Index, num(m.Size)))
		}
		idx++
	}
	if len(series) == 0 {
		return render.Errorf(backendName, "", "chart has no drawable series")
	}
	params[paramData] = encodeData(series, min, max, enc)
	if len(markers) > 0 {
		params[paramMarker] = strings.Join(markers, "|")
	}
	return nil
}

func addColorParams(params map[string]string, c *chart.Chart) {
	var colors []string
	any := false
	for _, s := range c.Series() {
		if len(s.Points) == 0 {
			continue
		}
		color := s.Color()
		if color != "" {
			any = true
		} else {
			color = "000000"
		}
		colors = append(colors, color)
	}
	if any {
		params[paramColor] = strings.Join(colors, ",")
	}
}

// addPieDataParams treats each series as one pie segment sized by its
// first present value. Unlabeled segments get the API's "_" placeholder.
// A negative segment size has no pie representation and fails the render.
func addPieDataParams(params map[string]string, c *chart.Chart, enc Encoding) error {
	var sizes []chart.Point
	var labels []string
	var colors []string
	for i, s := range c.Series() {
		v, ok := firstValue(s)
		if !ok {
			continue
		}
		if v < 0 {
			return render.Errorf(backendName, fmt.Sprintf("series[%d]", i),
				"negative pie segment size %v", v)
		}
		sizes = append(sizes, chart.Pt(v))
		if s.Label != "" {
			labels = append(labels, s.Label)
		} else {
			labels = append(labels, "_")
		}
		if color := s.Color(); color != "" {
			colors = append(colors, color)
		}
	}
	if len(sizes) == 0 {
		return render.Errorf(backendName, "", "chart has no drawable series")
	}
	top := 1.0
	for _, p := range sizes {
		top = max(top, p.Value)
	}
	params[paramData] = encodeData([][]chart.Point{sizes}, 0, top, enc)
	if len(labels) > 0 {
		params[paramLabel] = strings.Join(labels, "|")
	}
	if len(colors) > 0 {
		params[paramColor] = strings.Join(colors, ",")
	}
	return nil
}

func firstValue(s *chart.Series) (float64, bool) {
	for _, p := range s.Points {
		if !p.Missing {
			return p.Value, true
		}
	}
	return 0, false
}

// =============================================================================
// Legend
// =============================================================================

func addLegendParams(params map[string]string, c *chart.Chart) {
	if c.Kind() == chart.KindPie {
		return // pie segments label through chl instead
	}
	if legend, ok := c.Style().String(chart.StyleLegend); ok && legend == "none" {
		return
	}
	labeled := false
	var labels []string
	for _, s := range c.Series() {
		if s.Label != "" {
			labeled = true
		}
		labels = append(labels, s.Label)
	}
	if labeled {
		params[paramLegend] = strings.Join(labels, "|")
	}
}

// =============================================================================
// Axes
// =============================================================================

var axisCodes = []struct {
	code string
	pos  chart.Position
}{
	{"x", chart.Bottom},
	{"y", chart.Left},
	{"r", chart.Right},
	{"t", chart.Top},
}

func addAxisParams(params map[string]string, c *chart.Chart, width, height int) {
	markLength := max(width, height)

	var types, ranges, labelParts, positions, ticks []string
	i := 0
	for _, ac := range axisCodes {
		if !c.HasAxis(ac.pos) {
			continue
		}
		axis := c.Axis(ac.pos)
		if len(axis.Labels) == 0 {
			continue
		}
		labels, labelPositions := axisLabels(c, ac.pos, axis)

		types = append(types, ac.code)
		if axis.HasRange() {
			ranges = append(ranges, fmt.Sprintf("%d,%s,%s", i, num(*axis.Min), num(*axis.Max)))
		}
		labelParts = append(labelParts, fmt.Sprintf("%d:", i))
		labelParts = append(labelParts, labels...)
		if len(labelPositions) > 0 {
			parts := make([]string, 0, len(labelPositions)+1)
			parts = append(parts, strconv.Itoa(i))
			for _, p := range labelPositions {
				parts = append(parts, num(p))
			}
			positions = append(positions, strings.Join(parts, ","))
		}
		if axis.LabelGridlines {
			ticks = append(ticks, fmt.Sprintf("%d,%d", i, -markLength))
		}
		i++
	}

	if len(types) > 0 {
		params[paramAxisType] = strings.Join(types, ",")
		params[paramAxisLabel] = strings.Join(labelParts, "|")
	}
	if len(ranges) > 0 {
		params[paramAxisRange] = strings.Join(ranges, "|")
	}
	if len(positions) > 0 {
		params[paramAxisPosition] = strings.Join(positions, "|")
	}
	if len(ticks) > 0 {
		params[paramAxisTicks] = strings.Join(ticks, "|")
	}
}

// axisLabels returns the labels and positions to emit for an axis. The
// left axis of a horizontal bar chart is reversed: the API draws it bottom
// to top, which would otherwise mirror the bar order.
func axisLabels(c *chart.Chart, pos chart.Position, axis *chart.Axis) ([]string, []float64) {
	horizontal := false
	if o, ok := c.Style().String(chart.StyleBarOrientation); ok {
		horizontal = o == chart.OrientationHorizontal
	}
	if c.Kind() == chart.KindBar && horizontal && pos == chart.Left {
		labels := make([]string, len(axis.Labels))
		for i, l := range axis.Labels {
			labels[len(labels)-1-i] = l
		}
		positions := make([]float64, len(axis.LabelPositions))
		for i, p := range axis.LabelPositions {
			positions[len(positions)-1-i] = p
		}
		return labels, positions
	}
	return axis.Labels, axis.LabelPositions
}

// =============================================================================
// Grid
// =============================================================================

func addGridParams(params map[string]string, c *chart.Chart) error {
	x, err := gridStep(c, chart.Bottom)
	if err != nil {
		return err
	}
	y, err := gridStep(c, chart.Left)
	if err != nil {
		return err
	}
	if x != 0 || y != 0 {
		params[paramGrid] = fmt.Sprintf("%.3g,%.3g,1,0", x, y)
	}
	return nil
}

func gridStep(c *chart.Chart, pos chart.Position) (float64, error) {
	if !c.HasAxis(pos) {
		return 0, nil
	}
	axis := c.Axis(pos)
	if axis.GridSpacing == 0 {
		return 0, nil
	}
	if !axis.HasRange() {
		return 0, render.Errorf(backendName, fmt.Sprintf("axis %q", pos),
			"grid spacing requires an axis range")
	}
	return 100 * axis.GridSpacing / (*axis.Max - *axis.Min), nil
}

// =============================================================================
// Line styles
// =============================================================================

func addLineStyleParams(params map[string]string, c *chart.Chart) {
	styled := false
	var styles []string
	for _, s := range c.Series() {
		if len(s.Points) == 0 {
			continue
		}
		ls, ok := s.Line()
		if ok {
			styled = true
		} else {
			ls = chart.LineSolid
		}
		styles = append(styles, fmt.Sprintf("%s,%s,%s", num(ls.Width), num(ls.On), num(ls.Off)))
	}
	if styled {
		params[paramLineStyle] = strings.Join(styles, "|")
	}
}

// =============================================================================
// Bar geometry
// =============================================================================

// addZeroPointParams positions the bar baseline when the range dips below
// zero, so negative bars grow downward instead of starting at the chart
// floor.
func addZeroPointParams(params map[string]string, c *chart.Chart) {
	min, max := dataScale(c)
	if min >= 0 {
		return
	}
	if max < 0 {
		params[paramZeroPoint] = "1"
		return
	}
	params[paramZeroPoint] = num(-min / (max - min))
}

func addBarSizeParams(params map[string]string, c *chart.Chart, width, height int) {
	style := c.Style()
	thickness := styleInt(style, chart.StyleBarThickness)
	gap := styleInt(style, chart.StyleBarGap)
	groupGap := styleInt(style, chart.StyleBarGroupGap)
	if thickness == nil && gap == nil && groupGap == nil {
		return
	}

	vertical := true
	if o, ok := style.String(chart.StyleBarOrientation); ok {
		vertical = o != chart.OrientationHorizontal
	}
	stacked := style.Bool(chart.StyleBarStacked)
	space := width
	if !vertical {
		space = height
	}
	thickness, gap, groupGap = fillBarGeometry(c, space, stacked, thickness, gap, groupGap)

	if thickness == nil {
		return
	}
	spec := []string{strconv.Itoa(*thickness)}
	if gap != nil {
		spec = append(spec, strconv.Itoa(*gap))
		if groupGap != nil && !stacked {
			spec = append(spec, strconv.Itoa(*groupGap))
		}
	}
	params[paramBarSize] = strings.Join(spec, ",")
}

// fillBarGeometry derives the unset bar dimensions from the available
// space: a missing gap is half the group gap, a missing group gap is twice
// the bar gap, and a missing thickness divides the remaining space evenly
// across bars (or bar groups for grouped charts).
func fillBarGeometry(c *chart.Chart, space int, stacked bool, thickness, gap, groupGap *int) (*int, *int, *int) {
	numBars := 0
	for _, s := range c.Series() {
		if len(s.Points) > numBars {
			numBars = len(s.Points)
		}
	}
	if numBars == 0 {
		return thickness, gap, groupGap
	}

	if gap == nil && groupGap != nil {
		g := *groupGap / 2
		if g < 0 {
			g = 0
		}
		gap = &g
	}
	if groupGap == nil && gap != nil {
		gg := *gap * 2
		groupGap = &gg
	}

	if thickness == nil {
		if stacked {
			if gap != nil {
				th := (space - *gap*(numBars-1)) / numBars
				if th < 1 {
					th = 1
				}
				thickness = &th
			}
		} else if gap != nil && groupGap != nil {
			barsPerGroup := c.SeriesCount()
			groupSize := float64(space-*groupGap*(numBars-1)) / float64(numBars)
			th := 1
			if groupSize > 0 {
				th = int((groupSize - float64(*gap*(barsPerGroup-1))) / float64(barsPerGroup))
				if th < 1 {
					th = 1
				}
			}
			thickness = &th
		}
	}
	return thickness, gap, groupGap
}

// =============================================================================
// Helpers
// =============================================================================

func styleInt(s chart.Style, key string) *int {
	if v, ok := s.Int(key); ok {
		return &v
	}
	return nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
