// Package workbench runs scytale requests for the CLI and the API.
//
// A [Request] is the full state of the workbench: the input text (or a seed
// key), the transform settings and the readout flags. The [Runner]
// validates a request, builds the grid, computes both readouts and reports
// the build to [observability.EngineHooks]. Centralizing this keeps
// `kryptos wrap`, `kryptos explore` and /api/scytale consistent.
//
// # Usage
//
//	runner := workbench.NewRunner(store, logger, workbench.Limits{MaxDiameter: 512})
//	res, err := runner.Run(ctx, workbench.Request{Text: "WEAREDISCOVERED", Diameter: 5})
//	fmt.Println(res.Readout.ByColumns)
//
// # Sharing
//
// [Runner.Save] stores a request in the key-value store under a random UUID
// and [Runner.Load] reads it back. [Link] and [FromQuery] encode a request
// into the short query parameters used by shareable workbench URLs.
//
// [observability.EngineHooks]: github.com/matzehuels/kryptos/pkg/observability.EngineHooks
package workbench
