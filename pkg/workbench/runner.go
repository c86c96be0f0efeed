package workbench

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kryptos/pkg/errors"
	"github.com/matzehuels/kryptos/pkg/kv"
	"github.com/matzehuels/kryptos/pkg/observability"
	"github.com/matzehuels/kryptos/pkg/scytale"
)

// Runner executes workbench requests.
//
// The Runner is stateless except for the store and logger. Multiple
// goroutines can safely use the same Runner.
type Runner struct {
	Store    kv.Store
	Logger   *log.Logger
	Limits   Limits
	ShareTTL time.Duration
}

// NewRunner creates a runner. A nil store disables sharing ([NullStore]
// semantics) and a nil logger means log.Default().
//
// [NullStore]: github.com/matzehuels/kryptos/pkg/kv.NullStore
func NewRunner(store kv.Store, logger *log.Logger, limits Limits) *Runner {
	if store == nil {
		store = kv.NewNullStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Store:    store,
		Logger:   logger,
		Limits:   limits,
		ShareTTL: kv.TTLShare,
	}
}

// Result is the outcome of [Runner.Run].
type Result struct {
	Grid    *scytale.Grid
	Readout scytale.Readout
	Stats   Stats
}

// Stats describes a completed build.
type Stats struct {
	Diameter int
	Rows     int
	Cells    int
	Duration time.Duration
}

// Run validates req, builds its grid and reads it out.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	res, err := req.resolve(r.Limits)
	if err != nil {
		observability.Engine().OnReject(ctx, string(errors.GetCode(err)))
		r.Logger.Debug("rejected request", "err", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	g := scytale.Build(res.text, res.diameter, res.opts)
	readout := scytale.Read(g, res.read)
	elapsed := time.Since(start)

	observability.Engine().OnBuild(ctx, g.Diameter(), g.Rows(), elapsed)
	r.Logger.Debug("built grid",
		"diameter", g.Diameter(),
		"rows", g.Rows(),
		"offset", res.opts.Offset,
		"duration", elapsed)

	return &Result{
		Grid:    g,
		Readout: readout,
		Stats: Stats{
			Diameter: g.Diameter(),
			Rows:     g.Rows(),
			Cells:    g.Len(),
			Duration: elapsed,
		},
	}, nil
}
