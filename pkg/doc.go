// Package pkg provides the core libraries for Graphy chart rendering.
//
// # Overview
//
// Graphy turns declarative chart definitions into rendered artifacts:
// Google Chart API URLs, embeddable <img> tags, or locally drawn PNG
// images. The pkg directory is organized into five main areas:
//
//  1. [chart] - The renderer-agnostic chart model (series, styles, axes)
//  2. [format] - The formatter pipeline applied to chart clones
//  3. [render] - The render boundary and the concrete backends
//  4. [chartio] / [store] - Definition files and persistent chart storage
//  5. [pipeline] / [httpapi] - Orchestration and the HTTP surface
//
// # Architecture
//
// The typical data flow through Graphy:
//
//	Definition file (TOML/JSON) or API request
//	         ↓
//	    [chartio] package (decode + validate)
//	         ↓
//	    [chart] package (chart model)
//	         ↓
//	    [render] package (clone → format → backend)
//	         ↓
//	    URL / HTML / PNG artifact
//
// # Quick Start
//
//	c := chart.New(chart.KindLine)
//	c.AddSeries(chart.NewSeries("visits", 10, 20, 30))
//	artifact, err := render.Render(ctx, c, googlechart.NewURL(), nil)
//
// Supporting packages provide caching ([cache], [httputil]), structured
// errors ([errors]), observability hooks ([observability]), and build
// metadata ([buildinfo]).
package pkg
