package harness

import (
	"fmt"
	"maps"
	"slices"

	"github.com/roach88/qsurf/internal/circuit"
)

// ExpectationError describes one mismatched expectation.
type ExpectationError struct {
	Field    string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *ExpectationError) Error() string {
	return fmt.Sprintf("expect.%s: expected %s, got %s", e.Field, e.Expected, e.Actual)
}

// CheckExpectations compares a result against exp and returns one message
// per mismatch.
func CheckExpectations(exp Expect, result *Result) []string {
	var errs []error

	if exp.Error != "" {
		if result.Err == nil {
			errs = append(errs, &ExpectationError{Field: "error", Expected: exp.Error, Actual: "success"})
		} else if kind := ErrorKind(result.Err); kind != exp.Error {
			errs = append(errs, &ExpectationError{Field: "error", Expected: exp.Error, Actual: kind + " (" + result.Err.Error() + ")"})
		}
		return messages(errs)
	}

	if result.Err != nil {
		errs = append(errs, &ExpectationError{Field: "error", Expected: "success", Actual: result.Err.Error()})
		return messages(errs)
	}

	l, c := result.Lattice, result.Circuit
	errs = appendIntMismatch(errs, "num_qubits", exp.NumQubits, l.NumQubits())
	errs = appendIntMismatch(errs, "register_size", exp.RegisterSize, c.NumQubits())
	errs = appendIntMismatch(errs, "stabilizers", exp.Stabilizers, l.NumStabilizers())
	errs = appendIntMismatch(errs, "depth", exp.Depth, c.Depth())
	errs = appendIntMismatch(errs, "ops", exp.Ops, c.Len())

	if len(exp.GateCounts) > 0 {
		counts := c.GateCounts()
		for _, gate := range slices.Sorted(maps.Keys(exp.GateCounts)) {
			want := exp.GateCounts[gate]
			if got := counts[circuit.Gate(gate)]; got != want {
				errs = append(errs, &ExpectationError{
					Field:    "gate_counts." + gate,
					Expected: fmt.Sprint(want),
					Actual:   fmt.Sprint(got),
				})
			}
		}
	}

	instructions := c.Instructions()
	if len(exp.Prefix) > 0 {
		n := min(len(exp.Prefix), len(instructions))
		if err := compareInstructions("prefix", exp.Prefix, instructions[:n]); err != nil {
			errs = append(errs, err)
		}
	}
	if len(exp.Suffix) > 0 {
		n := min(len(exp.Suffix), len(instructions))
		if err := compareInstructions("suffix", exp.Suffix, instructions[len(instructions)-n:]); err != nil {
			errs = append(errs, err)
		}
	}

	return messages(errs)
}

func appendIntMismatch(errs []error, field string, want *int, got int) []error {
	if want == nil || *want == got {
		return errs
	}
	return append(errs, &ExpectationError{Field: field, Expected: fmt.Sprint(*want), Actual: fmt.Sprint(got)})
}

func compareInstructions(field string, want, got []string) error {
	if len(got) < len(want) {
		return &ExpectationError{
			Field:    field,
			Expected: fmt.Sprintf("%d instructions", len(want)),
			Actual:   fmt.Sprintf("%d instructions", len(got)),
		}
	}
	for i := range want {
		if want[i] != got[i] {
			return &ExpectationError{
				Field:    fmt.Sprintf("%s[%d]", field, i),
				Expected: fmt.Sprintf("%q", want[i]),
				Actual:   fmt.Sprintf("%q", got[i]),
			}
		}
	}
	return nil
}

func messages(errs []error) []string {
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}
