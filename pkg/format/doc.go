// Package format provides the formatter pipeline and the built-in
// presentation formatters applied to chart clones before rendering.
//
// # Pipeline
//
// [Run] applies an ordered sequence of formatters to a chart, each seeing
// the output of the previous one. The caller passes a clone, never the
// user's chart, so a failing pipeline can simply discard its input. On the
// first formatter error Run stops and returns a [PipelineError] naming the
// failing formatter's identity and position; no further formatters run.
//
// For fixed chart content and a fixed formatter list, repeated runs
// produce identical results unless a formatter is intentionally
// nondeterministic.
//
// # Built-ins
//
// The built-in formatters are ordinary formatters with no pipeline
// privilege; any precedence they need comes from insertion order:
//
//   - [AutoColor]: assigns palette colors to series without one
//   - [AutoScale]: derives the dependent axis range from the data
//   - [InlineLegend]: replaces the legend with right-axis labels at each
//     series' final value
//   - [LabelSeparator]: pushes overlapping right-axis labels apart
//
// All built-ins are idempotent: re-applying one to its own output changes
// nothing.
package format
