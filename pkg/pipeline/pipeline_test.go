package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/blueprintmrk/graphy/pkg/cache"
	"github.com/blueprintmrk/graphy/pkg/chart"
	"github.com/blueprintmrk/graphy/pkg/chartio"
	"github.com/blueprintmrk/graphy/pkg/errors"
	"github.com/blueprintmrk/graphy/pkg/render"
)

// countingBackend records how many times Render was invoked.
type countingBackend struct {
	calls int
}

func (b *countingBackend) Name() string { return "counting" }

func (b *countingBackend) Render(_ context.Context, c *chart.Chart, opts render.Options) (chart.Artifact, error) {
	b.calls++
	return chart.Artifact{ContentType: "text/plain", Data: []byte("artifact")}, nil
}

func sampleDefinition() *chartio.Definition {
	return &chartio.Definition{
		Name: "sample",
		Kind: "line",
		Series: []chartio.SeriesDef{
			{Label: "s", Values: []float64{1, 2, 3}},
		},
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() failed: %v", err)
	}
	if opts.Backend != BackendGoogleChart {
		t.Errorf("Backend = %q, want %q", opts.Backend, BackendGoogleChart)
	}
	if opts.Width != render.DefaultWidth || opts.Height != render.DefaultHeight {
		t.Errorf("dimensions = %dx%d, want %dx%d",
			opts.Width, opts.Height, render.DefaultWidth, render.DefaultHeight)
	}
	if opts.Output != OutputURL {
		t.Errorf("Output = %q, want %q", opts.Output, OutputURL)
	}
	if opts.Logger == nil {
		t.Error("Logger should be defaulted")
	}

	// Idempotent: a second call leaves everything in place.
	before := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if opts.Backend != before.Backend || opts.Width != before.Width {
		t.Error("second call changed options")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"unknownBackend", Options{Backend: "plotter"}, errors.ErrCodeInvalidBackend},
		{"unknownOutput", Options{Output: "pdf"}, errors.ErrCodeInvalidInput},
		{"unknownEncoding", Options{Encoding: "base91"}, errors.ErrCodeInvalidEncoding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestResolveBackend(t *testing.T) {
	for _, name := range []string{BackendGoogleChart, BackendGoogleChartImage, BackendGoChart} {
		opts := Options{Backend: name}
		b, err := opts.ResolveBackend()
		if err != nil {
			t.Fatalf("ResolveBackend(%q) failed: %v", name, err)
		}
		if b.Name() != name {
			t.Errorf("backend name = %q, want %q", b.Name(), name)
		}
	}

	fake := &countingBackend{}
	opts := Options{BackendImpl: fake}
	b, err := opts.ResolveBackend()
	if err != nil {
		t.Fatalf("ResolveBackend with impl failed: %v", err)
	}
	if b != render.Backend(fake) {
		t.Error("BackendImpl should take precedence")
	}
}

func TestExecuteRendersArtifact(t *testing.T) {
	backend := &countingBackend{}
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), sampleDefinition(), Options{BackendImpl: backend})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if got := result.Artifact.String(); got != "artifact" {
		t.Errorf("artifact = %q", got)
	}
	if backend.calls != 1 {
		t.Errorf("backend calls = %d, want 1", backend.calls)
	}
	if result.CacheInfo.RenderHit {
		t.Error("first render should not be a cache hit")
	}
	if result.DefinitionHash == "" {
		t.Error("DefinitionHash should be set")
	}
	if result.Stats.SeriesCount != 1 {
		t.Errorf("SeriesCount = %d, want 1", result.Stats.SeriesCount)
	}
}

func TestExecuteCachesArtifact(t *testing.T) {
	backend := &countingBackend{}
	runner := NewRunner(cache.NewMemoryCache(), nil, nil)
	defer runner.Close()

	ctx := context.Background()
	def := sampleDefinition()
	opts := Options{BackendImpl: backend}

	first, err := runner.Execute(ctx, def, opts)
	if err != nil {
		t.Fatalf("first Execute() failed: %v", err)
	}
	second, err := runner.Execute(ctx, def, opts)
	if err != nil {
		t.Fatalf("second Execute() failed: %v", err)
	}

	if backend.calls != 1 {
		t.Errorf("backend calls = %d, want 1 (second run should hit cache)", backend.calls)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should report a cache hit")
	}
	if second.Artifact.String() != first.Artifact.String() {
		t.Error("cached artifact differs from rendered artifact")
	}
	if second.Artifact.ContentType != first.Artifact.ContentType {
		t.Error("cached content type differs")
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	backend := &countingBackend{}
	runner := NewRunner(cache.NewMemoryCache(), nil, nil)

	ctx := context.Background()
	def := sampleDefinition()

	if _, err := runner.Execute(ctx, def, Options{BackendImpl: backend}); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	result, err := runner.Execute(ctx, def, Options{BackendImpl: backend, Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute() failed: %v", err)
	}

	if backend.calls != 2 {
		t.Errorf("backend calls = %d, want 2 (refresh should re-render)", backend.calls)
	}
	if result.CacheInfo.RenderHit {
		t.Error("refresh run should not report a cache hit")
	}
}

func TestExecuteDistinctOptionsDistinctCacheEntries(t *testing.T) {
	backend := &countingBackend{}
	runner := NewRunner(cache.NewMemoryCache(), nil, nil)

	ctx := context.Background()
	def := sampleDefinition()

	if _, err := runner.Execute(ctx, def, Options{BackendImpl: backend, Width: 400}); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if _, err := runner.Execute(ctx, def, Options{BackendImpl: backend, Width: 200}); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if backend.calls != 2 {
		t.Errorf("backend calls = %d, want 2 (different widths must not share entries)", backend.calls)
	}
}

func TestExecuteRejectsInvalidDefinition(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	bad := &chartio.Definition{Kind: "scatter"}
	if _, err := runner.Execute(context.Background(), bad, Options{BackendImpl: &countingBackend{}}); !errors.Is(err, errors.ErrCodeInvalidKind) {
		t.Errorf("Execute invalid = %v", err)
	}
}

func TestExecuteGoogleChartURL(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Execute(context.Background(), sampleDefinition(), Options{Backend: BackendGoogleChart})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	url := result.Artifact.String()
	if !strings.HasPrefix(url, "http://chart.apis.google.com/chart?") {
		t.Errorf("artifact is not a chart URL: %q", url)
	}
	if !strings.Contains(url, "chs=800x600") {
		t.Errorf("URL missing default size: %q", url)
	}
}
