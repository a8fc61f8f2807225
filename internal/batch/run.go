package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/qsurf/internal/circuit"
	"github.com/roach88/qsurf/internal/lattice"
	"github.com/roach88/qsurf/internal/report"
	"github.com/roach88/qsurf/internal/store"
	"github.com/roach88/qsurf/internal/synth"
)

// ErrRecord is returned by Runner.Run when a successful request could not
// be written to the store.
var ErrRecord = errors.New("failed to record request")

// Result is the outcome of one request.
type Result struct {
	Index   int              `json:"index"`
	Request Request          `json:"request"`
	RunID   string           `json:"run_id,omitempty"`
	Report  *report.Report   `json:"report,omitempty"`
	Error   string           `json:"error,omitempty"`
	Err     error            `json:"-"`
	Lattice *lattice.Lattice `json:"-"`
	Circuit *circuit.Circuit `json:"-"`
}

// OK reports whether the request succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Runner executes jobs. The zero value runs with no store, no observer
// and a discarding logger.
type Runner struct {
	Logger   *slog.Logger
	Observer synth.Observer
	Store    *store.Store      // optional; when set every successful request is recorded
	IDs      store.IDGenerator // defaults to UUIDv7Generator
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (r *Runner) ids() store.IDGenerator {
	if r.IDs != nil {
		return r.IDs
	}
	return store.UUIDv7Generator{}
}

// Run synthesizes every request in job. Request-level failures are
// reported in the matching Result; the returned error is non-nil only when
// ctx is cancelled or a store write fails.
func (r *Runner) Run(ctx context.Context, job *Job) ([]Result, error) {
	results := make([]Result, len(job.Requests))

	limit := job.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, req := range job.Requests {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.runOne(gctx, i, req)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	r.logger().Info("batch complete", "requests", len(results), "failed", countFailed(results))
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, i int, req Request) (Result, error) {
	res := Result{Index: i, Request: req}
	logger := r.logger().With("request", req.Label())
	opts := []synth.Option{
		synth.WithLogger(logger),
		synth.WithObserver(r.Observer),
		synth.WithCompat(req.Compat),
	}

	l, c, err := synth.Generate(req.Distance, opts...)
	if err != nil {
		res.Err, res.Error = err, err.Error()
		return res, nil
	}
	for _, token := range req.Logical {
		if err := synth.ApplyLogicalToken(c, token, l, opts...); err != nil {
			res.Err, res.Error = err, err.Error()
			return res, nil
		}
	}
	res.Lattice, res.Circuit = l, c

	rep := report.FromCircuit(c, l, report.WithHash(), report.WithGateCounts(), report.WithLogical(req.Logical...))
	res.Report = &rep

	if r.Store != nil {
		run, err := r.Store.Record(ctx, store.Run{
			ID:       r.ids().Generate(),
			Name:     req.Name,
			Distance: req.Distance,
			Logical:  req.Logical,
			Compat:   req.Compat,
		}, c)
		if err != nil {
			return res, fmt.Errorf("%w %s: %w", ErrRecord, req.Label(), err)
		}
		res.RunID = run.ID
	}
	return res, nil
}

func countFailed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}
	return n
}
