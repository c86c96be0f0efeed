// Package api serves the kryptos workbench over HTTP using chi.
//
// # Routes
//
//	GET  /healthz                  liveness probe
//	GET  /version                  build information
//	GET  /api/scytale              build a grid from query parameters
//	POST /api/scytale              build a grid from a JSON request
//	GET  /api/scytale/live         WebSocket: JSON requests in, grids out
//	POST /api/scytale/share        save a request, returns {"key","url"}
//	GET  /api/scytale/share/{key}  run a saved request
//	GET  /api/seeds                list seeds
//	GET  /api/seeds/{key}          one seed
//	GET  /api/kv/{key}             stored JSON document
//	POST /api/kv                   store a JSON document, returns {"key"}
//	GET  /api/images[/*]           image manifest sub-tree
//	GET  /metrics                  Prometheus metrics (when enabled)
//
// Errors are returned as
//
//	{"error": {"code": "INVALID_DIAMETER", "message": "..."}}
//
// with the status chosen by [errors.HTTPStatus].
//
// [errors.HTTPStatus]: github.com/matzehuels/kryptos/pkg/errors.HTTPStatus
package api
