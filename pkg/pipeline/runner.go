package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/blueprintmrk/graphy/pkg/cache"
	"github.com/blueprintmrk/graphy/pkg/chart"
	"github.com/blueprintmrk/graphy/pkg/chartio"
	"github.com/blueprintmrk/graphy/pkg/render"
)

// Runner encapsulates pipeline execution with artifact caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedArtifact is the serialized form of an artifact in the cache.
type cachedArtifact struct {
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// Execute runs the complete build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, def *chartio.Definition, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		DefinitionHash: def.Hash(),
	}
	cacheKey := r.Keyer.ArtifactKey(result.DefinitionHash, opts.ArtifactKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached cachedArtifact
			if err := json.Unmarshal(data, &cached); err == nil {
				result.Artifact = chart.Artifact{ContentType: cached.ContentType, Data: cached.Data}
				result.Stats.SeriesCount = len(def.Series)
				result.CacheInfo.RenderHit = true
				opts.Logger.Debug("artifact cache hit", "chart", def.Name, "backend", opts.Backend)
				return result, nil
			}
			// If deserialization fails, fall through to re-render
		}
	}

	// Stage 1: Build the chart model
	buildStart := time.Now()
	c, err := def.Chart()
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.SeriesCount = c.SeriesCount()

	opts.Logger.Info("built chart",
		"kind", c.Kind().String(),
		"series", c.SeriesCount(),
		"duration", result.Stats.BuildTime)

	// Stage 2: Render through the clone-and-format boundary
	backend, err := opts.ResolveBackend()
	if err != nil {
		return nil, err
	}
	renderStart := time.Now()
	artifact, err := render.Render(ctx, c, backend, opts.RenderOptions())
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered artifact",
		"backend", backend.Name(),
		"content_type", artifact.ContentType,
		"bytes", len(artifact.Data),
		"duration", result.Stats.RenderTime)

	// Cache the result
	if data, err := json.Marshal(cachedArtifact{ContentType: artifact.ContentType, Data: artifact.Data}); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.DefaultArtifactTTL)
	}

	return result, nil
}

// ExecuteFile decodes a definition file and runs the pipeline on it.
func (r *Runner) ExecuteFile(ctx context.Context, path string, opts Options) (*Result, error) {
	def, err := chartio.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return r.Execute(ctx, def, opts)
}

// Render builds and renders a chart model directly, without definition
// hashing or caching. Use Execute when a definition is available.
func (r *Runner) Render(ctx context.Context, c *chart.Chart, opts Options) (chart.Artifact, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return chart.Artifact{}, fmt.Errorf("invalid options: %w", err)
	}
	backend, err := opts.ResolveBackend()
	if err != nil {
		return chart.Artifact{}, err
	}
	return render.Render(ctx, c, backend, opts.RenderOptions())
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
