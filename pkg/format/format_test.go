package format

import (
	"errors"
	"reflect"
	"testing"

	"github.com/blueprintmrk/graphy/pkg/chart"
)

func recordingFormatter(name string, log *[]string) chart.Formatter {
	return Func(name, func(*chart.Chart) error {
		*log = append(*log, name)
		return nil
	})
}

func TestRunAppliesInOrder(t *testing.T) {
	c := chart.New(chart.KindLine)
	var log []string
	c.AddFormatter(recordingFormatter("A", &log))
	c.AddFormatter(recordingFormatter("B", &log))
	c.AddFormatter(recordingFormatter("C", &log))
	c.InsertFormatter(0, recordingFormatter("D", &log))

	if err := Run(c, c.Formatters()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"D", "A", "B", "C"}
	if !reflect.DeepEqual(log, want) {
		t.Fatalf("execution order = %v, want %v", log, want)
	}
}

func TestRunEmptyPipeline(t *testing.T) {
	c := chart.New(chart.KindLine)
	c.AddSeries(chart.NewSeries("s", 1, 2, 3))
	if err := Run(c, nil); err != nil {
		t.Fatalf("Run with no formatters: %v", err)
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	c := chart.New(chart.KindLine)
	c.AddSeries(chart.NewSeries("s", 1, 2, 3))

	boom := errors.New("boom")
	var log []string
	formatters := []chart.Formatter{
		recordingFormatter("before", &log),
		Func("throwing", func(*chart.Chart) error { return boom }),
		recordingFormatter("after", &log),
	}

	err := Run(c, formatters)
	if err == nil {
		t.Fatal("expected error")
	}
	var perr *PipelineError
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *PipelineError", err)
	}
	if perr.Index != 1 || perr.Formatter != "throwing" {
		t.Errorf("PipelineError = {Index: %d, Formatter: %q}, want {1, \"throwing\"}", perr.Index, perr.Formatter)
	}
	if !errors.Is(err, boom) {
		t.Error("PipelineError should wrap the formatter's error")
	}
	if !reflect.DeepEqual(log, []string{"before"}) {
		t.Errorf("executed = %v, want only the formatter before the failure", log)
	}
}

func TestAutoColorAssignsMissingOnly(t *testing.T) {
	c := chart.New(chart.KindLine)
	c.AddSeries(chart.NewSeries("a", 1))
	fixed := chart.NewSeries("b", 2)
	fixed.SetColor("123456")
	c.AddSeries(fixed)
	c.AddSeries(chart.NewSeries("c", 3))

	if err := AutoColor().Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got := c.Series()
	if got[0].Color() != DefaultPalette[0] {
		t.Errorf("series a color = %q, want %q", got[0].Color(), DefaultPalette[0])
	}
	if got[1].Color() != "123456" {
		t.Errorf("explicit color overwritten: %q", got[1].Color())
	}
	if got[2].Color() != DefaultPalette[1] {
		t.Errorf("series c color = %q, want %q", got[2].Color(), DefaultPalette[1])
	}
}

func TestAutoColorIdempotent(t *testing.T) {
	c := chart.New(chart.KindLine)
	c.AddSeries(chart.NewSeries("a", 1))
	c.AddSeries(chart.NewSeries("b", 2))

	f := AutoColor()
	if err := f.Apply(c); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	first := []string{c.Series()[0].Color(), c.Series()[1].Color()}
	if err := f.Apply(c); err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	second := []string{c.Series()[0].Color(), c.Series()[1].Color()}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second application changed colors: %v -> %v", first, second)
	}
}

func TestAutoColorPaletteCycles(t *testing.T) {
	c := chart.New(chart.KindLine)
	for i := 0; i < 3; i++ {
		c.AddSeries(chart.NewSeries("s", float64(i)))
	}
	if err := AutoColorWith([]string{"111111", "222222"}).Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := c.Series()[2].Color(); got != "111111" {
		t.Errorf("third series color = %q, want palette to cycle back to 111111", got)
	}
}

func TestAutoScaleSetsRangeFromData(t *testing.T) {
	c := chart.New(chart.KindLine)
	c.AddSeries(chart.NewSeries("a", 10, 20))
	c.AddSeries(chart.NewSeries("b", 0, 30))

	if err := AutoScaleBuffer(0).Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	axis := c.DependentAxis()
	if !axis.HasRange() {
		t.Fatal("dependent axis has no range after AutoScale")
	}
	if *axis.Min != 0 || *axis.Max != 30 {
		t.Errorf("range = [%v, %v], want [0, 30]", *axis.Min, *axis.Max)
	}
}

func TestAutoScaleKeepsExplicitRange(t *testing.T) {
	c := chart.New(chart.KindLine)
	c.AddSeries(chart.NewSeries("a", 10, 20))
	c.DependentAxis().SetRange(-5, 50)

	if err := AutoScale().Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	axis := c.DependentAxis()
	if *axis.Min != -5 || *axis.Max != 50 {
		t.Errorf("explicit range changed to [%v, %v]", *axis.Min, *axis.Max)
	}
}

func TestAutoScaleDegenerateData(t *testing.T) {
	c := chart.New(chart.KindLine)
	c.AddSeries(chart.NewSeries("flat", 7, 7, 7))

	if err := AutoScaleBuffer(0).Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	axis := c.DependentAxis()
	if *axis.Min != 6 || *axis.Max != 8 {
		t.Errorf("range = [%v, %v], want [6, 8] around the flat value", *axis.Min, *axis.Max)
	}
}

func TestInlineLegend(t *testing.T) {
	c := chart.New(chart.KindLine)
	c.AddSeries(chart.NewSeries("alpha", 1, 2, 3))
	c.AddSeries(chart.NewSeries("beta", 4, 5, 6))
	trailing := chart.Series{Label: "gamma", Points: []chart.Point{chart.Pt(9), chart.Gap}}
	c.AddSeries(trailing)
	c.AddSeries(chart.NewSeries("", 0)) // unlabeled, skipped
	c.DependentAxis().SetRange(0, 10)

	if err := InlineLegend().Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	right := c.Axis(chart.Right)
	wantLabels := []string{"alpha", "beta", "gamma"}
	wantPositions := []float64{3, 6, 9} // gamma's trailing gap is skipped
	if !reflect.DeepEqual(right.Labels, wantLabels) {
		t.Errorf("labels = %v, want %v", right.Labels, wantLabels)
	}
	if !reflect.DeepEqual(right.LabelPositions, wantPositions) {
		t.Errorf("positions = %v, want %v", right.LabelPositions, wantPositions)
	}
	if *right.Min != 0 || *right.Max != 10 {
		t.Errorf("right axis range = [%v, %v], want dependent axis range [0, 10]", *right.Min, *right.Max)
	}
	if legend, _ := c.Style().String(chart.StyleLegend); legend != "none" {
		t.Errorf("legend style = %q, want \"none\"", legend)
	}
}

func TestInlineLegendIdempotent(t *testing.T) {
	c := chart.New(chart.KindLine)
	c.AddSeries(chart.NewSeries("alpha", 1, 2, 3))
	c.DependentAxis().SetRange(0, 10)

	f := InlineLegend()
	if err := f.Apply(c); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	if err := f.Apply(c); err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	right := c.Axis(chart.Right)
	if len(right.Labels) != 1 || len(right.LabelPositions) != 1 {
		t.Errorf("labels duplicated on second application: %v / %v", right.Labels, right.LabelPositions)
	}
}

func TestLabelSeparator(t *testing.T) {
	c := chart.New(chart.KindLine)
	right := c.Axis(chart.Right)
	right.Labels = []string{"b", "a", "c"}
	right.LabelPositions = []float64{5.2, 5, 20}
	right.SetRange(0, 20)

	if err := LabelSeparator(2).Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !reflect.DeepEqual(right.Labels, []string{"a", "b", "c"}) {
		t.Errorf("labels = %v, want sorted by position", right.Labels)
	}
	want := []float64{5, 7, 20}
	if !reflect.DeepEqual(right.LabelPositions, want) {
		t.Errorf("positions = %v, want %v", right.LabelPositions, want)
	}
}

func TestLabelSeparatorClampsToRange(t *testing.T) {
	c := chart.New(chart.KindLine)
	right := c.Axis(chart.Right)
	right.Labels = []string{"a", "b"}
	right.LabelPositions = []float64{9, 9.5}
	right.SetRange(0, 10)

	if err := LabelSeparator(2).Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := []float64{8, 10}
	if !reflect.DeepEqual(right.LabelPositions, want) {
		t.Errorf("positions = %v, want %v", right.LabelPositions, want)
	}
}

func TestLabelSeparatorNoRightAxis(t *testing.T) {
	c := chart.New(chart.KindLine)
	if err := LabelSeparator(2).Apply(c); err != nil {
		t.Fatalf("Apply on chart without right axis: %v", err)
	}
	if c.HasAxis(chart.Right) {
		t.Error("separator should not create a right axis")
	}
}

func TestDefaults(t *testing.T) {
	defaults := Defaults()
	names := make([]string, len(defaults))
	for i, f := range defaults {
		names[i] = f.Name()
	}
	if !reflect.DeepEqual(names, []string{"auto_color", "auto_scale"}) {
		t.Errorf("default formatters = %v", names)
	}
}
