// Package pipeline provides the definition → chart → artifact pipeline.
//
// This package implements the complete decode → build → render flow that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Turn a chart definition into a chart model
//  2. Format: Run the chart's formatter pipeline on a private clone
//  3. Render: Produce an artifact through a render backend
//
// Stages 2 and 3 happen inside the render boundary; the pipeline adds
// definition handling, backend selection, and artifact caching on top.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Backend: "googlechart",
//	    Width:   400,
//	    Height:  300,
//	}
//	result, err := runner.Execute(ctx, def, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	url := result.Artifact.String()
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/blueprintmrk/graphy/pkg/cache"
	"github.com/blueprintmrk/graphy/pkg/chart"
	"github.com/blueprintmrk/graphy/pkg/errors"
	"github.com/blueprintmrk/graphy/pkg/render"
	"github.com/blueprintmrk/graphy/pkg/render/gochart"
	"github.com/blueprintmrk/graphy/pkg/render/googlechart"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Backend name constants for backend selection.
const (
	BackendGoogleChart      = "googlechart"
	BackendGoogleChartImage = "googlechart-image"
	BackendGoChart          = "gochart"
)

// DefaultBackend is the backend used when none is named.
const DefaultBackend = BackendGoogleChart

// Output constants for the googlechart backend.
const (
	OutputURL = "url"
	OutputImg = "img"
)

// ValidBackends is the set of supported render backends.
var ValidBackends = map[string]bool{
	BackendGoogleChart:      true,
	BackendGoogleChartImage: true,
	BackendGoChart:          true,
}

// ValidOutputs is the set of supported googlechart output forms.
var ValidOutputs = map[string]bool{
	OutputURL: true,
	OutputImg: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the render pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Backend selects the render backend by name.
	Backend string `json:"backend,omitempty"`

	// Width and Height override the definition's dimensions in pixels.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Encoding selects the googlechart data encoding ("simple" or "extended").
	Encoding string `json:"encoding,omitempty"`

	// Output selects the googlechart artifact form ("url" or "img").
	Output string `json:"output,omitempty"`

	// Refresh bypasses the artifact cache and re-renders.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger      *log.Logger    `json:"-"`
	BackendImpl render.Backend `json:"-"` // Overrides Backend when set

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Artifact is the rendered output.
	Artifact chart.Artifact

	// DefinitionHash is the content hash of the definition.
	DefinitionHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the artifact came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SeriesCount int
	BuildTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	RenderHit bool // Whether the artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateBackend checks that a backend name is supported.
func ValidateBackend(name string) error {
	if !ValidBackends[name] {
		return errors.New(errors.ErrCodeInvalidBackend,
			"invalid backend: %q (must be one of: googlechart, googlechart-image, gochart)", name)
	}
	return nil
}

// ValidateOutput checks that a googlechart output form is supported.
func ValidateOutput(output string) error {
	if !ValidOutputs[output] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid output: %q (must be one of: url, img)", output)
	}
	return nil
}

// ValidateEncoding checks that an encoding name is supported.
func ValidateEncoding(name string) error {
	if _, err := googlechart.ParseEncoding(name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidEncoding, err, "invalid encoding")
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Backend == "" {
		o.Backend = DefaultBackend
	}
	if o.Output == "" {
		o.Output = OutputURL
	}
	if o.Width == 0 {
		o.Width = render.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = render.DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.BackendImpl == nil {
		if err := ValidateBackend(o.Backend); err != nil {
			return err
		}
	}
	if err := ValidateOutput(o.Output); err != nil {
		return err
	}
	if err := ValidateEncoding(o.Encoding); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width and height cannot be negative")
	}
	o.validated = true
	return nil
}

// ResolveBackend returns the render backend the options name. BackendImpl
// takes precedence when set, which lets tests and embedders inject fakes.
func (o *Options) ResolveBackend() (render.Backend, error) {
	if o.BackendImpl != nil {
		return o.BackendImpl, nil
	}
	switch o.Backend {
	case BackendGoogleChart:
		return googlechart.NewURL(), nil
	case BackendGoogleChartImage:
		return googlechart.NewImage(), nil
	case BackendGoChart:
		return gochart.New(), nil
	}
	return nil, ValidateBackend(o.Backend)
}

// RenderOptions translates pipeline options into backend render options.
func (o *Options) RenderOptions() render.Options {
	opts := render.Options{
		render.OptWidth:  o.Width,
		render.OptHeight: o.Height,
	}
	if o.Encoding != "" {
		opts[googlechart.OptEncoding] = o.Encoding
	}
	if o.Output != "" {
		opts[googlechart.OptOutput] = o.Output
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	backend := o.Backend
	if o.BackendImpl != nil {
		backend = o.BackendImpl.Name()
	}
	return cache.ArtifactKeyOpts{
		Backend:  backend,
		Width:    o.Width,
		Height:   o.Height,
		Encoding: o.Encoding,
		Output:   o.Output,
	}
}
