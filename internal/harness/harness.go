package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/qsurf/internal/circuit"
	"github.com/roach88/qsurf/internal/lattice"
	"github.com/roach88/qsurf/internal/metrics"
	"github.com/roach88/qsurf/internal/store"
	"github.com/roach88/qsurf/internal/synth"
)

// Harness executes scenarios against a store.
type Harness struct {
	store  *store.Store
	ids    store.IDGenerator
	logger *slog.Logger
}

// tracer records observer callbacks into a Result.
type tracer struct {
	result *Result
}

func (t tracer) Synthesized(l *lattice.Lattice, c *circuit.Circuit) {
	t.result.addTrace(EventSynthesized, fmt.Sprintf("distance=%d qubits=%d ops=%d", l.Distance(), c.NumQubits(), c.Len()))
}

func (t tracer) LogicalApplied(axis synth.Axis, _ *lattice.Lattice, appended int) {
	t.result.addTrace(EventLogical, fmt.Sprintf("axis=%s ops=%d", axis, appended))
}

func (t tracer) Rejected(err error) {
	t.result.addTrace(EventRejected, "kind="+ErrorKind(err))
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory database. The returned
// error is reserved for harness failures; synthesis errors are reported
// in Result.Err and checked against the scenario's expectations.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		ids:    store.NewFixedGenerator("run-" + scenario.Name),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return h.run(context.Background(), scenario)
}

func (h *Harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	result := NewResult()
	opts := []synth.Option{
		synth.WithLogger(h.logger.With("scenario", scenario.Name)),
		synth.WithObserver(tracer{result: result}),
		synth.WithCompat(scenario.Compat),
	}

	result.Err = h.synthesize(scenario, result, opts)
	if result.Err == nil {
		if err := h.record(ctx, scenario, result); err != nil {
			return nil, err
		}
	}

	for _, msg := range CheckExpectations(scenario.Expect, result) {
		result.AddError(msg)
	}
	return result, nil
}

func (h *Harness) synthesize(scenario *Scenario, result *Result, opts []synth.Option) error {
	l, c, err := synth.Generate(scenario.Distance, opts...)
	if err != nil {
		return err
	}
	result.Lattice, result.Circuit = l, c

	for _, token := range scenario.Logical {
		if err := synth.ApplyLogicalToken(c, token, l, opts...); err != nil {
			return err
		}
	}
	return nil
}

// record stores the circuit and reads it back. A circuit that does not
// round-trip to the same hash is reported as an expectation failure.
func (h *Harness) record(ctx context.Context, scenario *Scenario, result *Result) error {
	run, err := h.store.Record(ctx, store.Run{
		ID:       h.ids.Generate(),
		Name:     scenario.Name,
		Distance: scenario.Distance,
		Logical:  scenario.Logical,
		Compat:   scenario.Compat,
	}, result.Circuit)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	result.RunID = run.ID

	stored, err := h.store.ReadCircuit(ctx, run.CircuitHash)
	if err != nil {
		return fmt.Errorf("failed to read back circuit: %w", err)
	}
	if got := stored.Hash(); got != run.CircuitHash {
		result.AddError(fmt.Sprintf("stored circuit hash %s does not match %s", got, run.CircuitHash))
	}
	result.addTrace(EventRecorded, "run="+run.ID)

	h.logger.Info("scenario recorded", "scenario", scenario.Name, "run_id", run.ID, "circuit_hash", run.CircuitHash)
	return nil
}

// ErrorKind classifies a synthesis error for scenario expectations. Kinds
// match the rejection reasons of the metrics package.
func ErrorKind(err error) string {
	return metrics.Reason(err)
}
