// Package gochart rasterizes charts to PNG locally using go-chart, for
// use when shipping bytes matters more than a shareable URL.
//
// The backend maps the chart model onto go-chart's types: line and
// sparkline charts become continuous series, bar charts become bar values,
// and pie charts become pie values. Sparklines render without axes.
//
// Grouped and stacked multi-series bar charts are not supported here; the
// googlechart backend handles those.
package gochart

import (
	"bytes"
	"context"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/blueprintmrk/graphy/pkg/chart"
	"github.com/blueprintmrk/graphy/pkg/render"
)

const backendName = "gochart"

// Backend renders charts to PNG in-process. The zero value is ready to use.
type Backend struct{}

// New returns a PNG-producing backend.
func New() *Backend { return &Backend{} }

func (*Backend) Name() string { return backendName }

// Render implements render.Backend.
func (b *Backend) Render(_ context.Context, c *chart.Chart, opts render.Options) (chart.Artifact, error) {
	width := opts.Int(render.OptWidth, render.DefaultWidth)
	height := opts.Int(render.OptHeight, render.DefaultHeight)

	var buf bytes.Buffer
	var err error
	switch c.Kind() {
	case chart.KindLine, chart.KindSparkline:
		err = renderLine(&buf, c, width, height)
	case chart.KindBar:
		err = renderBar(&buf, c, width, height)
	case chart.KindPie:
		err = renderPie(&buf, c, width, height)
	default:
		return chart.Artifact{}, render.Errorf(backendName, "", "unsupported chart kind %q", c.Kind())
	}
	if err != nil {
		return chart.Artifact{}, err
	}
	return chart.Artifact{ContentType: "image/png", Data: buf.Bytes()}, nil
}

func renderLine(buf *bytes.Buffer, c *chart.Chart, width, height int) error {
	var series []gochart.Series
	for i, s := range c.Series() {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]float64, 0, len(s.Points))
		ys := make([]float64, 0, len(s.Points))
		for x, p := range s.Points {
			if p.Missing {
				continue
			}
			xs = append(xs, float64(x))
			ys = append(ys, p.Value)
		}
		if len(xs) < 2 {
			return render.Errorf(backendName, fmt.Sprintf("series[%d]", i),
				"line series needs at least two present points")
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Label,
			XValues: xs,
			YValues: ys,
			Style:   seriesStyle(s),
		})
	}

	ch := gochart.Chart{
		Width:  width,
		Height: height,
		Series: series,
	}
	if title, ok := c.Style().String(chart.StyleTitle); ok {
		ch.Title = title
	}
	if axis := c.DependentAxis(); axis.HasRange() {
		ch.YAxis = gochart.YAxis{Range: &gochart.ContinuousRange{Min: *axis.Min, Max: *axis.Max}}
	}
	if c.Kind() == chart.KindSparkline {
		ch.XAxis = gochart.XAxis{Style: gochart.Hidden()}
		ch.YAxis.Style = gochart.Hidden()
	} else if showLegend(c) {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	}

	if err := ch.Render(gochart.PNG, buf); err != nil {
		return &render.Error{Backend: backendName, Cause: err}
	}
	return nil
}

func renderBar(buf *bytes.Buffer, c *chart.Chart, width, height int) error {
	all := c.Series()
	if len(all) == 0 || len(all[0].Points) == 0 {
		return render.Errorf(backendName, "", "bar chart has no data")
	}
	if len(all) > 1 {
		return render.Errorf(backendName, "series[1]", "multi-series bar charts are not supported by this backend")
	}

	s := all[0]
	labels := []string{}
	if c.HasAxis(chart.Bottom) {
		labels = c.Axis(chart.Bottom).Labels
	}
	bars := make([]gochart.Value, 0, len(s.Points))
	for i, p := range s.Points {
		if p.Missing {
			continue
		}
		label := fmt.Sprintf("%d", i)
		if i < len(labels) {
			label = labels[i]
		}
		bars = append(bars, gochart.Value{Value: p.Value, Label: label, Style: seriesStyle(s)})
	}

	ch := gochart.BarChart{
		Width:  width,
		Height: height,
		Bars:   bars,
	}
	if title, ok := c.Style().String(chart.StyleTitle); ok {
		ch.Title = title
	}
	if err := ch.Render(gochart.PNG, buf); err != nil {
		return &render.Error{Backend: backendName, Cause: err}
	}
	return nil
}

func renderPie(buf *bytes.Buffer, c *chart.Chart, width, height int) error {
	var values []gochart.Value
	for _, s := range c.Series() {
		for _, p := range s.Points {
			if p.Missing {
				continue
			}
			values = append(values, gochart.Value{Value: p.Value, Label: s.Label, Style: seriesStyle(s)})
			break
		}
	}
	if len(values) == 0 {
		return render.Errorf(backendName, "", "pie chart has no segments")
	}

	ch := gochart.PieChart{
		Width:  width,
		Height: height,
		Values: values,
	}
	if title, ok := c.Style().String(chart.StyleTitle); ok {
		ch.Title = title
	}
	if err := ch.Render(gochart.PNG, buf); err != nil {
		return &render.Error{Backend: backendName, Cause: err}
	}
	return nil
}

func seriesStyle(s *chart.Series) gochart.Style {
	style := gochart.Style{}
	if color := s.Color(); color != "" {
		style.StrokeColor = drawing.ColorFromHex(color)
		style.FillColor = drawing.ColorFromHex(color).WithAlpha(64)
	}
	if ls, ok := s.Line(); ok {
		style.StrokeWidth = ls.Width
		if !ls.Solid() {
			style.StrokeDashArray = []float64{ls.On, ls.Off}
		}
	}
	return style
}

func showLegend(c *chart.Chart) bool {
	if legend, ok := c.Style().String(chart.StyleLegend); ok && legend == "none" {
		return false
	}
	for _, s := range c.Series() {
		if s.Label != "" {
			return true
		}
	}
	return false
}
