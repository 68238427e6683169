package googlechart

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/blueprintmrk/graphy/pkg/chart"
	"github.com/blueprintmrk/graphy/pkg/render"
)

func lineChart(values ...float64) *chart.Chart {
	c := chart.New(chart.KindLine)
	c.AddSeries(chart.NewSeries("", values...))
	return c
}

func mustParams(t *testing.T, c *chart.Chart, opts render.Options) map[string]string {
	t.Helper()
	params, err := Params(c, opts.WithDefaults())
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	return params
}

func TestSimpleEncoding(t *testing.T) {
	tests := []struct {
		name   string
		points []chart.Point
		want   string
	}{
		{"full range", chart.PointsOf(0, 50, 100), "s:Af9"},
		{"missing point", []chart.Point{chart.Pt(0), chart.Gap, chart.Pt(100)}, "s:A_9"},
		{"clipped", chart.PointsOf(-10, 110), "s:A9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encodeData([][]chart.Point{tt.points}, 0, 100, EncodingSimple)
			if got != tt.want {
				t.Errorf("encodeData = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtendedEncoding(t *testing.T) {
	got := encodeData([][]chart.Point{chart.PointsOf(0, 50, 100)}, 0, 100, EncodingExtended)
	if got != "e:AAgA.." {
		t.Errorf("encodeData = %q, want %q", got, "e:AAgA..")
	}
	gap := encodeData([][]chart.Point{{chart.Gap}}, 0, 100, EncodingExtended)
	if gap != "e:__" {
		t.Errorf("missing point = %q, want %q", gap, "e:__")
	}
}

func TestEncodingMultipleSeries(t *testing.T) {
	series := [][]chart.Point{chart.PointsOf(0, 100), chart.PointsOf(100, 0)}
	if got := encodeData(series, 0, 100, EncodingSimple); got != "s:A9,9A" {
		t.Errorf("encodeData = %q, want %q", got, "s:A9,9A")
	}
}

func TestEncodingFlatRange(t *testing.T) {
	if got := encodeData([][]chart.Point{chart.PointsOf(7, 7)}, 7, 7, EncodingSimple); got != "s:AA" {
		t.Errorf("flat range = %q, want everything at the bottom", got)
	}
}

func TestParseEncoding(t *testing.T) {
	if enc, err := ParseEncoding(""); err != nil || enc != EncodingSimple {
		t.Errorf("ParseEncoding(\"\") = %v, %v", enc, err)
	}
	if enc, err := ParseEncoding("extended"); err != nil || enc != EncodingExtended {
		t.Errorf("ParseEncoding(extended) = %v, %v", enc, err)
	}
	if _, err := ParseEncoding("morse"); err == nil {
		t.Error("ParseEncoding(morse) should fail")
	}
}

func TestParamsLineChart(t *testing.T) {
	params := mustParams(t, lineChart(0, 50, 100), nil)
	if params[paramType] != "lc" {
		t.Errorf("cht = %q", params[paramType])
	}
	if params[paramData] != "s:Af9" {
		t.Errorf("chd = %q", params[paramData])
	}
	if params[paramSize] != "800x600" {
		t.Errorf("chs = %q", params[paramSize])
	}
	if _, ok := params[paramColor]; ok {
		t.Error("chco present with no colors set")
	}
	if _, ok := params[paramLegend]; ok {
		t.Error("chdl present with no labels")
	}
}

func TestParamsScaleFromAxisRange(t *testing.T) {
	c := lineChart(0, 50, 100)
	c.DependentAxis().SetRange(0, 200)
	params := mustParams(t, c, nil)
	// 100 of 200 lands mid-range.
	if params[paramData] != "s:APf" {
		t.Errorf("chd = %q, want %q", params[paramData], "s:APf")
	}
}

func TestParamsColors(t *testing.T) {
	c := chart.New(chart.KindLine)
	red := chart.NewSeries("", 1, 2)
	red.SetColor("ff0000")
	c.AddSeries(red)
	c.AddSeries(chart.NewSeries("", 3, 4))

	params := mustParams(t, c, nil)
	if params[paramColor] != "ff0000,000000" {
		t.Errorf("chco = %q, want uncolored series to fall back to black", params[paramColor])
	}
}

func TestParamsLegend(t *testing.T) {
	c := chart.New(chart.KindLine)
	c.AddSeries(chart.NewSeries("first", 1))
	c.AddSeries(chart.NewSeries("second", 2))

	params := mustParams(t, c, nil)
	if params[paramLegend] != "first|second" {
		t.Errorf("chdl = %q", params[paramLegend])
	}

	c.SetStyle(chart.StyleLegend, "none")
	params = mustParams(t, c, nil)
	if _, ok := params[paramLegend]; ok {
		t.Error("chdl present after legend disabled")
	}
}

func TestParamsMarkers(t *testing.T) {
	c := chart.New(chart.KindLine)
	s := c.AddSeries(chart.NewSeries("", 1, 2, 3))
	s.Markers = append(s.Markers, chart.Marker{
		Shape: chart.MarkerCircle, Color: "ff0000", Size: 10, Index: 2,
	})
	params := mustParams(t, c, nil)
	if params[paramMarker] != "o,ff0000,0,2,10" {
		t.Errorf("chm = %q", params[paramMarker])
	}
}

func TestParamsLineStyles(t *testing.T) {
	c := chart.New(chart.KindLine)
	dashed := chart.NewSeries("", 1, 2)
	dashed.SetLine(chart.LineDashed)
	c.AddSeries(dashed)
	c.AddSeries(chart.NewSeries("", 3, 4)) // unstyled, defaults to solid

	params := mustParams(t, c, nil)
	if params[paramLineStyle] != "1,8,4|1,1,0" {
		t.Errorf("chls = %q", params[paramLineStyle])
	}
}

func TestParamsAxes(t *testing.T) {
	c := lineChart(1, 2, 3)
	bottom := c.Axis(chart.Bottom)
	bottom.Labels = []string{"Jan", "Feb", "Mar"}
	bottom.LabelPositions = []float64{0, 1, 2}
	left := c.Axis(chart.Left)
	left.Labels = []string{"low", "high"}
	left.SetRange(0, 10)
	left.LabelGridlines = true

	params := mustParams(t, c, render.Options{render.OptWidth: 400, render.OptHeight: 300})
	if params[paramAxisType] != "x,y" {
		t.Errorf("chxt = %q", params[paramAxisType])
	}
	if params[paramAxisLabel] != "0:|Jan|Feb|Mar|1:|low|high" {
		t.Errorf("chxl = %q", params[paramAxisLabel])
	}
	if params[paramAxisPosition] != "0,0,1,2" {
		t.Errorf("chxp = %q", params[paramAxisPosition])
	}
	if params[paramAxisRange] != "1,0,10" {
		t.Errorf("chxr = %q", params[paramAxisRange])
	}
	if params[paramAxisTicks] != "1,-400" {
		t.Errorf("chxtc = %q", params[paramAxisTicks])
	}
}

func TestParamsGrid(t *testing.T) {
	c := lineChart(1, 2, 3)
	left := c.Axis(chart.Left)
	left.SetRange(0, 50)
	left.GridSpacing = 10
	params := mustParams(t, c, nil)
	if params[paramGrid] != "0,20,1,0" {
		t.Errorf("chg = %q", params[paramGrid])
	}
}

func TestParamsGridWithoutRange(t *testing.T) {
	c := lineChart(1, 2, 3)
	c.Axis(chart.Bottom).GridSpacing = 5

	_, err := Params(c, render.Options{}.WithDefaults())
	var rerr *render.Error
	if !errors.As(err, &rerr) {
		t.Fatalf("error = %v, want *render.Error", err)
	}
	if rerr.Element != `axis "bottom"` {
		t.Errorf("Element = %q", rerr.Element)
	}
}

func TestBarTypeCodes(t *testing.T) {
	tests := []struct {
		orientation string
		stacked     bool
		want        string
	}{
		{chart.OrientationVertical, false, "bvg"},
		{chart.OrientationVertical, true, "bvs"},
		{chart.OrientationHorizontal, false, "bhg"},
		{chart.OrientationHorizontal, true, "bhs"},
	}
	for _, tt := range tests {
		c := chart.New(chart.KindBar)
		c.AddSeries(chart.NewSeries("", 1, 2))
		c.SetStyle(chart.StyleBarOrientation, tt.orientation)
		c.SetStyle(chart.StyleBarStacked, tt.stacked)
		params := mustParams(t, c, nil)
		if params[paramType] != tt.want {
			t.Errorf("cht for %s/stacked=%v = %q, want %q", tt.orientation, tt.stacked, params[paramType], tt.want)
		}
	}
}

func TestBarZeroPoint(t *testing.T) {
	c := chart.New(chart.KindBar)
	c.AddSeries(chart.NewSeries("", -10, 30))
	c.DependentAxis().SetRange(-10, 30)
	params := mustParams(t, c, nil)
	if params[paramZeroPoint] != "0.25" {
		t.Errorf("chp = %q, want 0.25", params[paramZeroPoint])
	}

	neg := chart.New(chart.KindBar)
	neg.AddSeries(chart.NewSeries("", -10, -5))
	neg.DependentAxis().SetRange(-10, -5)
	params = mustParams(t, neg, nil)
	if params[paramZeroPoint] != "1" {
		t.Errorf("chp for all-negative = %q, want 1", params[paramZeroPoint])
	}

	pos := chart.New(chart.KindBar)
	pos.AddSeries(chart.NewSeries("", 5, 10))
	params = mustParams(t, pos, nil)
	if _, ok := params[paramZeroPoint]; ok {
		t.Error("chp present for all-positive data")
	}
}

func TestBarGeometry(t *testing.T) {
	c := chart.New(chart.KindBar)
	c.AddSeries(chart.NewSeries("", 1, 2))
	c.SetStyle(chart.StyleBarThickness, 10)
	params := mustParams(t, c, nil)
	if params[paramBarSize] != "10" {
		t.Errorf("chbh = %q, want bare thickness", params[paramBarSize])
	}

	c.SetStyle(chart.StyleBarGap, 5)
	params = mustParams(t, c, nil)
	// Group gap defaults to twice the bar gap for grouped charts.
	if params[paramBarSize] != "10,5,10" {
		t.Errorf("chbh = %q, want %q", params[paramBarSize], "10,5,10")
	}

	c.SetStyle(chart.StyleBarStacked, true)
	params = mustParams(t, c, nil)
	if params[paramBarSize] != "10,5" {
		t.Errorf("chbh stacked = %q, want no group gap", params[paramBarSize])
	}
}

func TestBarGeometryAutoThickness(t *testing.T) {
	c := chart.New(chart.KindBar)
	c.AddSeries(chart.NewSeries("", 1, 2, 3, 4))
	c.SetStyle(chart.StyleBarStacked, true)
	c.SetStyle(chart.StyleBarGap, 10)

	params := mustParams(t, c, render.Options{render.OptWidth: 430})
	// (430 - 10*3) / 4 bars = 100 per bar.
	if params[paramBarSize] != "100,10" {
		t.Errorf("chbh = %q, want %q", params[paramBarSize], "100,10")
	}
}

func TestHorizontalBarReversesLeftLabels(t *testing.T) {
	c := chart.New(chart.KindBar)
	c.AddSeries(chart.NewSeries("", 1, 2, 3))
	c.SetStyle(chart.StyleBarOrientation, chart.OrientationHorizontal)
	left := c.Axis(chart.Left)
	left.Labels = []string{"a", "b", "c"}
	left.LabelPositions = []float64{0, 1, 2}

	params := mustParams(t, c, nil)
	if params[paramAxisLabel] != "0:|c|b|a" {
		t.Errorf("chxl = %q, want reversed labels", params[paramAxisLabel])
	}
	if params[paramAxisPosition] != "0,2,1,0" {
		t.Errorf("chxp = %q, want reversed positions", params[paramAxisPosition])
	}
}

func TestPieParams(t *testing.T) {
	c := chart.New(chart.KindPie)
	apples := chart.NewSeries("apples", 10)
	apples.SetColor("ff0000")
	c.AddSeries(apples)
	c.AddSeries(chart.NewSeries("", 5))

	params := mustParams(t, c, nil)
	if params[paramType] != "p" {
		t.Errorf("cht = %q", params[paramType])
	}
	if params[paramLabel] != "apples|_" {
		t.Errorf("chl = %q", params[paramLabel])
	}
	if params[paramColor] != "ff0000" {
		t.Errorf("chco = %q", params[paramColor])
	}
	// Segments scale against the largest segment.
	if params[paramData] != "s:9f" {
		t.Errorf("chd = %q, want %q", params[paramData], "s:9f")
	}

	c.SetStyle(chart.StylePie3D, true)
	params = mustParams(t, c, nil)
	if params[paramType] != "p3" {
		t.Errorf("3d cht = %q", params[paramType])
	}
}

func TestPieNegativeSegmentRejected(t *testing.T) {
	c := chart.New(chart.KindPie)
	c.AddSeries(chart.NewSeries("loss", -5))
	c.AddSeries(chart.NewSeries("gain", 10))

	_, err := NewURL().Render(context.Background(), c, render.Options{}.WithDefaults())
	var rerr *render.Error
	if !errors.As(err, &rerr) {
		t.Fatalf("error = %v, want *render.Error", err)
	}
	if rerr.Element != "series[0]" {
		t.Errorf("Element = %q, want %q", rerr.Element, "series[0]")
	}
	if !strings.Contains(rerr.Error(), "negative pie segment size") {
		t.Errorf("Error() = %q", rerr.Error())
	}
}

func TestNoDrawableSeriesRejected(t *testing.T) {
	tests := []struct {
		name  string
		chart *chart.Chart
	}{
		{"line without series", chart.New(chart.KindLine)},
		{"line with empty series", lineChart()},
		{"pie without series", chart.New(chart.KindPie)},
		{"pie with all-missing series", func() *chart.Chart {
			c := chart.New(chart.KindPie)
			s := chart.NewSeries("gaps")
			s.Points = append(s.Points, chart.Gap)
			c.AddSeries(s)
			return c
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Params(tt.chart, render.Options{}.WithDefaults())
			var rerr *render.Error
			if !errors.As(err, &rerr) {
				t.Fatalf("error = %v, want *render.Error", err)
			}
			if !strings.Contains(rerr.Error(), "no drawable series") {
				t.Errorf("Error() = %q", rerr.Error())
			}
		})
	}
}

func TestExtraParamsOverride(t *testing.T) {
	c := lineChart(1, 2, 3)
	opts := render.Options{OptExtra: map[string]string{paramType: "lti", "chf": "bg,s,efefef"}}
	params := mustParams(t, c, opts)
	if params[paramType] != "lti" {
		t.Errorf("extra params should override cht, got %q", params[paramType])
	}
	if params["chf"] != "bg,s,efefef" {
		t.Errorf("chf = %q", params["chf"])
	}
	// Size is applied after the overrides and always wins.
	if params[paramSize] != "800x600" {
		t.Errorf("chs = %q", params[paramSize])
	}
}

func TestURL(t *testing.T) {
	u, err := URL(lineChart(0, 50, 100), nil)
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	want := "http://chart.apis.google.com/chart?chd=s%3AAf9&chs=800x600&cht=lc"
	if u != want {
		t.Errorf("URL = %q, want %q", u, want)
	}
}

func TestURLUnescaped(t *testing.T) {
	u, err := URL(lineChart(0, 50, 100), render.Options{OptEscape: false})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	want := "http://chart.apis.google.com/chart?chd=s:Af9&chs=800x600&cht=lc"
	if u != want {
		t.Errorf("URL = %q, want %q", u, want)
	}
}

func TestURLCustomBase(t *testing.T) {
	u, err := URL(lineChart(1), render.Options{OptBaseURL: "https://example.com/chart"})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if !strings.HasPrefix(u, "https://example.com/chart?") {
		t.Errorf("URL = %q", u)
	}
}

func TestImg(t *testing.T) {
	tag, err := Img(lineChart(0, 50, 100), render.Options{render.OptWidth: 100, render.OptHeight: 50})
	if err != nil {
		t.Fatalf("Img: %v", err)
	}
	if !strings.HasPrefix(tag, `<img src="`) || !strings.HasSuffix(tag, `alt="chart"/>`) {
		t.Errorf("tag = %q", tag)
	}
	if !strings.Contains(tag, "&amp;") {
		t.Error("embedded URL should use HTML entities")
	}
	if !strings.Contains(tag, `width="100" height="50"`) {
		t.Errorf("tag dimensions wrong: %q", tag)
	}
}

func TestURLBackendRender(t *testing.T) {
	backend := NewURL()
	artifact, err := backend.Render(context.Background(), lineChart(1, 2), render.Options{}.WithDefaults())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if artifact.ContentType != ContentTypeURL {
		t.Errorf("ContentType = %q", artifact.ContentType)
	}
	if !strings.HasPrefix(string(artifact.Data), DefaultBaseURL) {
		t.Errorf("artifact = %q", artifact.Data)
	}

	img, err := backend.Render(context.Background(), lineChart(1, 2),
		render.Options{OptOutput: "img"}.WithDefaults())
	if err != nil {
		t.Fatalf("Render img: %v", err)
	}
	if img.ContentType != ContentTypeImg {
		t.Errorf("img ContentType = %q", img.ContentType)
	}
}

func TestRenderBoundaryDeterminism(t *testing.T) {
	c := lineChart(3, 1, 4, 1, 5)
	c.Series()[0].Label = "pi"

	first, err := render.Render(context.Background(), c, NewURL(), nil)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := render.Render(context.Background(), c, NewURL(), nil)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if string(first.Data) != string(second.Data) {
		t.Errorf("renders differ:\n%s\n%s", first.Data, second.Data)
	}
}
