// Package render defines the contract between charts and render backends
// and the boundary every render request passes through.
//
// # Backends
//
// A [Backend] turns a formatted chart into a [chart.Artifact]. Backends
// live in subpackages:
//
//   - [googlechart]: Google Chart API URLs, img tags, and fetched images
//   - [gochart]: locally rasterized PNGs
//
// Backends receive a fully formatted chart and must not run formatters
// themselves.
//
// # The render boundary
//
// [Render] is the single entry point. It clones the chart, runs the
// chart's formatter pipeline on the clone, and hands the clone to the
// backend:
//
//	artifact, err := render.Render(ctx, c, backend, render.Options{})
//
// The caller's chart is never mutated, even when a formatter or the
// backend fails, and rendering an unchanged chart twice through the same
// backend and options produces the same artifact.
//
// # Bindings
//
// A [Binding] packages a chart, backend, and options behind the
// chart.Display interface, so code holding only the chart can render it
// without knowing which backend serves it:
//
//	c.SetDisplay(render.Bind(c, backend, nil))
//	artifact, err := c.Render(ctx)
//
// [googlechart]: github.com/blueprintmrk/graphy/pkg/render/googlechart
// [gochart]: github.com/blueprintmrk/graphy/pkg/render/gochart
package render
