package render

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/blueprintmrk/graphy/pkg/chart"
	"github.com/blueprintmrk/graphy/pkg/format"
)

// fakeBackend records what it was given and returns a canned artifact.
type fakeBackend struct {
	name     string
	lastOpts Options
	last     *chart.Chart
	err      error
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Render(_ context.Context, c *chart.Chart, opts Options) (chart.Artifact, error) {
	f.last = c
	f.lastOpts = opts
	if f.err != nil {
		return chart.Artifact{}, f.err
	}
	return chart.Artifact{ContentType: "text/plain", Data: []byte(f.name)}, nil
}

func sampleChart() *chart.Chart {
	c := chart.New(chart.KindLine)
	c.AddSeries(chart.NewSeries("a", 1, 2, 3))
	c.AddSeries(chart.NewSeries("b", 4, 5, 6))
	return c
}

func TestRenderDoesNotMutateCaller(t *testing.T) {
	c := sampleChart()
	c.AddFormatter(format.AutoColor())
	c.AddFormatter(format.AutoScale())

	before, err := c.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}

	backend := &fakeBackend{name: "fake"}
	if _, err := Render(context.Background(), c, backend, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if c.Series()[0].Color() != "" {
		t.Error("formatter output leaked into the caller's chart")
	}
	if !reflect.DeepEqual(c.Series(), before.Series()) {
		t.Error("caller's series changed during render")
	}
	if backend.last == nil {
		t.Fatal("backend never invoked")
	}
	if backend.last == c {
		t.Error("backend received the caller's chart instead of a clone")
	}
	if backend.last.Series()[0].Color() == "" {
		t.Error("backend received an unformatted chart")
	}
}

func TestRenderEmptyPipeline(t *testing.T) {
	c := sampleChart()
	backend := &fakeBackend{name: "fake"}

	if _, err := Render(context.Background(), c, backend, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !reflect.DeepEqual(backend.last.Series(), c.Series()) {
		t.Error("chart with no formatters should reach the backend unchanged")
	}
}

func TestRenderFormatterFailure(t *testing.T) {
	c := sampleChart()
	ran := false
	c.AddFormatter(format.AutoColor())
	c.AddFormatter(format.Func("throwing", func(*chart.Chart) error {
		return errors.New("boom")
	}))
	c.AddFormatter(format.Func("after", func(*chart.Chart) error {
		ran = true
		return nil
	}))

	backend := &fakeBackend{name: "fake"}
	_, err := Render(context.Background(), c, backend, nil)

	var perr *format.PipelineError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *format.PipelineError", err)
	}
	if perr.Formatter != "throwing" || perr.Index != 1 {
		t.Errorf("PipelineError identifies %q at %d, want \"throwing\" at 1", perr.Formatter, perr.Index)
	}
	if ran {
		t.Error("formatter after the failure was invoked")
	}
	if backend.last != nil {
		t.Error("backend invoked despite pipeline failure")
	}
	if c.Series()[0].Color() != "" {
		t.Error("caller's chart mutated by failed pipeline")
	}
}

func TestRenderCloneFailure(t *testing.T) {
	c := sampleChart()
	c.SetStyle("callback", func() {})

	backend := &fakeBackend{name: "fake"}
	_, err := Render(context.Background(), c, backend, nil)

	var cerr *chart.CloneError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *chart.CloneError", err)
	}
	if backend.last != nil {
		t.Error("backend invoked despite clone failure")
	}
}

func TestRenderBackendFailure(t *testing.T) {
	c := sampleChart()
	backend := &fakeBackend{
		name: "fake",
		err:  Errorf("fake", "series[1]", "unsupported marker"),
	}
	_, err := Render(context.Background(), c, backend, nil)

	var rerr *Error
	if !errors.As(err, &rerr) {
		t.Fatalf("error = %v, want *render.Error", err)
	}
	if rerr.Element != "series[1]" {
		t.Errorf("Element = %q, want \"series[1]\"", rerr.Element)
	}
}

// leakyBackend fails but still hands back a partial artifact.
type leakyBackend struct{}

func (leakyBackend) Name() string { return "leaky" }

func (leakyBackend) Render(context.Context, *chart.Chart, Options) (chart.Artifact, error) {
	return chart.Artifact{ContentType: "text/plain", Data: []byte("partial")},
		Errorf("leaky", "", "ran out of ink")
}

func TestRenderDiscardsPartialArtifactOnFailure(t *testing.T) {
	artifact, err := Render(context.Background(), sampleChart(), leakyBackend{}, nil)
	if err == nil {
		t.Fatal("Render should fail")
	}
	if artifact.ContentType != "" || artifact.Data != nil {
		t.Errorf("artifact = %+v, want zero value alongside the error", artifact)
	}
}

func TestRenderOptionDefaults(t *testing.T) {
	c := sampleChart()
	backend := &fakeBackend{name: "fake"}

	if _, err := Render(context.Background(), c, backend, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if w := backend.lastOpts.Int(OptWidth, 0); w != DefaultWidth {
		t.Errorf("width = %d, want default %d", w, DefaultWidth)
	}
	if h := backend.lastOpts.Int(OptHeight, 0); h != DefaultHeight {
		t.Errorf("height = %d, want default %d", h, DefaultHeight)
	}

	opts := Options{OptWidth: 320}
	if _, err := Render(context.Background(), c, backend, opts); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if w := backend.lastOpts.Int(OptWidth, 0); w != 320 {
		t.Errorf("explicit width = %d, want 320", w)
	}
	if h := backend.lastOpts.Int(OptHeight, 0); h != DefaultHeight {
		t.Errorf("height = %d, want default %d", h, DefaultHeight)
	}
	if _, ok := opts[OptHeight]; ok {
		t.Error("WithDefaults modified the caller's options")
	}
}

func TestBinding(t *testing.T) {
	c := sampleChart()
	backend := &fakeBackend{name: "bound"}
	c.SetDisplay(Bind(c, backend, Options{OptWidth: 100}))

	artifact, err := c.Render(context.Background())
	if err != nil {
		t.Fatalf("Render through binding: %v", err)
	}
	if string(artifact.Data) != "bound" {
		t.Errorf("artifact = %q, want backend output", artifact.Data)
	}
	if backend.last == c {
		t.Error("binding bypassed the clone boundary")
	}
	if w := backend.lastOpts.Int(OptWidth, 0); w != 100 {
		t.Errorf("binding options not forwarded, width = %d", w)
	}
}

func TestOptionsHelpers(t *testing.T) {
	o := Options{
		"i":   42,
		"i64": int64(7),
		"f":   float64(2.5),
		"s":   "hello",
		"b":   true,
	}
	if got := o.Int("i", 0); got != 42 {
		t.Errorf("Int(i) = %d", got)
	}
	if got := o.Int("i64", 0); got != 7 {
		t.Errorf("Int(i64) = %d", got)
	}
	if got := o.Int("f", 0); got != 2 {
		t.Errorf("Int(f) = %d", got)
	}
	if got := o.Int("missing", 9); got != 9 {
		t.Errorf("Int(missing) = %d", got)
	}
	if got := o.Float("i", 0); got != 42 {
		t.Errorf("Float(i) = %v", got)
	}
	if got := o.String("s", ""); got != "hello" {
		t.Errorf("String(s) = %q", got)
	}
	if got := o.String("i", "def"); got != "def" {
		t.Errorf("String on non-string = %q", got)
	}
	if !o.Bool("b", false) {
		t.Error("Bool(b) = false")
	}

	var nilOpts Options
	if got := nilOpts.Int("x", 3); got != 3 {
		t.Errorf("nil Options Int = %d", got)
	}
	defaulted := nilOpts.WithDefaults()
	if defaulted.Int(OptWidth, 0) != DefaultWidth || defaulted.Int(OptHeight, 0) != DefaultHeight {
		t.Errorf("WithDefaults on nil = %v", defaulted)
	}
}
