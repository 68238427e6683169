// Package chart provides a renderer-agnostic, in-memory description of a
// chart: ordered data series, style attributes, axes, and an ordered list
// of formatters that adjust presentation just before rendering.
//
// # Overview
//
// A [Chart] is a plain data object. It knows nothing about URLs, pixels, or
// any concrete rendering engine - turning a chart into a displayable
// artifact is the job of a render backend (see package render and its
// subpackages). This split lets several backends share one chart
// description without the description depending on any of them.
//
// # Basic Usage
//
// Create a chart with [New], add series, and tweak presentation through the
// style map:
//
//	c := chart.New(chart.KindLine)
//	c.AddSeries(chart.NewSeries("errors", 4, 8, 15, 16, 23, 42))
//	c.SetStyle(chart.StyleTitle, "Errors per day")
//
// # Formatters
//
// Behavior extension happens through [Formatter] values attached to the
// chart, not through subtyping. Formatters run in insertion order against a
// private clone of the chart at render time; [Chart.InsertFormatter] at
// index 0 is the supported way to force a formatter to run before all
// currently attached ones. The user-visible chart is never written to
// during a render.
//
// # Cloning
//
// [Chart.Clone] produces an independent snapshot: series, labels, axes, and
// style values are deep-copied, while formatters and the display binding
// are capability objects and are carried by reference. Style values must be
// plain data; storing a function or channel in a style map makes Clone fail
// with a [CloneError] naming the offending field.
//
// Chart is a single-owner mutable object and is not safe for concurrent use
// without external synchronization. Concurrent renders of the same chart
// are safe as long as no goroutine mutates it while another clones it.
package chart
