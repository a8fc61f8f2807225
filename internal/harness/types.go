package harness

import (
	"github.com/roach88/qsurf/internal/circuit"
	"github.com/roach88/qsurf/internal/lattice"
)

// Trace event types.
const (
	EventSynthesized = "synthesized"
	EventLogical     = "logical"
	EventRejected    = "rejected"
	EventRecorded    = "recorded"
)

// TraceEvent is one observed step of a scenario run.
type TraceEvent struct {
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

// String renders the event for golden snapshots.
func (e TraceEvent) String() string {
	return e.Type + " " + e.Detail
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expect field matched.
	Pass bool `json:"pass"`

	// Trace holds observer events in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Err is the synthesis error, if any.
	Err error `json:"-"`

	// RunID is the store ID of the recorded run.
	RunID string `json:"run_id,omitempty"`

	Lattice *lattice.Lattice `json:"-"`
	Circuit *circuit.Circuit `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func (r *Result) addTrace(typ, detail string) {
	r.Trace = append(r.Trace, TraceEvent{Type: typ, Detail: detail})
}
