// Package googlechart renders charts as Google Chart API requests.
//
// The [URLBackend] encodes a formatted chart into a chart.apis.google.com
// URL (or an HTML img tag embedding one) without touching the network. The
// [ImageBackend] goes one step further and fetches the rendered image
// bytes, with retries on transient failures and a file response cache
// keyed by chart URL.
//
// # Data encodings
//
// Two wire encodings are supported, selected with the "encoding" option:
//
//   - simple: 62 resolution steps, one character per point (chd=s:...)
//   - extended: 4096 resolution steps, two characters per point (chd=e:...)
//
// Values are scaled into the dependent axis range, or the data range when
// no axis range is set. Missing points encode as "_" (simple) or "__"
// (extended).
//
// # Options
//
// Beyond the shared width and height options, the backends understand
// "base_url", "encoding", "escape", "html_entities", "output" ("url" or
// "img"), and "extra" (a map of raw API parameters that override the
// generated ones). See the Opt constants.
package googlechart
