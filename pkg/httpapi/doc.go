// Package httpapi exposes the chart pipeline and chart store over HTTP.
//
// # Overview
//
// The API has two surfaces:
//
//   - Stateless rendering: POST /v1/render takes a chart definition in the
//     request body and returns the rendered artifact.
//   - Stored charts: /v1/charts is a CRUD surface over a [store.Store], with
//     POST /v1/charts/{id}/render rendering a stored definition.
//
// # Routes
//
//	GET    /healthz                  Liveness probe
//	POST   /v1/render                Render an inline definition
//	POST   /v1/charts                Create a stored chart
//	GET    /v1/charts                List stored charts
//	GET    /v1/charts/{id}           Fetch a stored chart
//	PUT    /v1/charts/{id}           Replace a stored chart
//	DELETE /v1/charts/{id}           Delete a stored chart
//	POST   /v1/charts/{id}/render    Render a stored chart
//
// # Errors
//
// Failures are reported as JSON bodies with a machine-readable code:
//
//	{"error": "chart abc not found", "code": "CHART_NOT_FOUND"}
//
// The HTTP status is derived from the code: INVALID_* maps to 400,
// *_NOT_FOUND to 404, RATE_LIMITED to 429, and everything else to 500.
package httpapi
