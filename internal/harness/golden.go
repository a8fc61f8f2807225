package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/qsurf/internal/ir"
)

// Snapshot is the golden-file view of a scenario run: the register size,
// every instruction and the observer trace.
type Snapshot struct {
	Scenario     string
	NumQubits    int
	Instructions []string
	Trace        []TraceEvent
	Error        string
}

// NewSnapshot builds a snapshot from a finished run.
func NewSnapshot(name string, result *Result) Snapshot {
	s := Snapshot{Scenario: name, Trace: result.Trace}
	if result.Err != nil {
		s.Error = ErrorKind(result.Err)
	}
	if result.Circuit != nil {
		s.NumQubits = result.Circuit.NumQubits()
		s.Instructions = result.Circuit.Instructions()
	}
	return s
}

// toCanonicalMap converts the snapshot for ir.MarshalCanonical, which only
// handles IR types and primitives.
func (s Snapshot) toCanonicalMap() map[string]any {
	trace := make([]any, len(s.Trace))
	for i, e := range s.Trace {
		trace[i] = e.String()
	}

	m := map[string]any{
		"scenario": s.Scenario,
		"trace":    trace,
	}
	if s.Error != "" {
		m["error"] = s.Error
	}
	if s.Instructions != nil {
		instructions := make([]any, len(s.Instructions))
		for i, in := range s.Instructions {
			instructions[i] = in
		}
		m["instructions"] = instructions
		m["num_qubits"] = s.NumQubits
	}
	return m
}

// MarshalCanonical returns the snapshot as canonical JSON.
func (s Snapshot) MarshalCanonical() ([]byte, error) {
	return ir.MarshalCanonical(s.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	return result, AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against its golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := NewSnapshot(name, result).MarshalCanonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
