package synth

import (
	"fmt"
	"strings"

	"github.com/roach88/qsurf/internal/circuit"
	"github.com/roach88/qsurf/internal/lattice"
)

// Axis selects a logical Pauli operator.
type Axis string

const (
	AxisX Axis = "X"
	AxisZ Axis = "Z"
)

// ParseAxis accepts "X" or "Z" in any case.
func ParseAxis(token string) (Axis, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "X":
		return AxisX, nil
	case "Z":
		return AxisZ, nil
	default:
		return "", &OperationError{Token: token}
	}
}

// LogicalQubits returns the qubits a logical operator acts on.
//
// X walks the first grid row, 0..d-1. Z walks the stride 0, d, 2d, ...
// which covers the first grid column when bounded by d². With
// Compat.ZStrideToRegister the walk continues up to NumQubits and reaches
// ancilla indices.
func LogicalQubits(axis Axis, l *lattice.Lattice, compat Compat) ([]int, error) {
	d := l.Distance()
	var qubits []int
	switch axis {
	case AxisX:
		for q := 0; q < d; q++ {
			qubits = append(qubits, q)
		}
	case AxisZ:
		limit := l.NumDataQubits()
		if compat.ZStrideToRegister {
			limit = l.NumQubits()
		}
		for q := 0; q < limit; q += d {
			qubits = append(qubits, q)
		}
	default:
		return nil, &OperationError{Token: string(axis)}
	}
	return qubits, nil
}

// ApplyLogical appends the logical operator for axis to c in place.
// The register is never reallocated. An axis other than X or Z fails with
// ErrInvalidOperation, and a register too small for the operator fails
// with circuit.ErrQubitOutOfRange; c is left unchanged in both cases.
func ApplyLogical(c *circuit.Circuit, axis Axis, l *lattice.Lattice, opts ...Option) error {
	cfg := newConfig(opts)

	qubits, err := LogicalQubits(axis, l, cfg.compat)
	if err != nil {
		cfg.logger.Error("rejected logical operation", "axis", string(axis), "error", err)
		cfg.observer.Rejected(err)
		return err
	}

	if last := qubits[len(qubits)-1]; last >= c.NumQubits() {
		err := fmt.Errorf("logical %s on qubit %d: %w (register size %d)",
			axis, last, circuit.ErrQubitOutOfRange, c.NumQubits())
		cfg.logger.Error("rejected logical operation", "axis", string(axis), "error", err)
		cfg.observer.Rejected(err)
		return err
	}

	gate := circuit.X
	if axis == AxisZ {
		gate = circuit.Z
	}
	for _, q := range qubits {
		mustAppend(c, circuit.Single(gate, q))
	}

	cfg.logger.Info("applied logical operation", "axis", string(axis), "qubits", len(qubits))
	cfg.observer.LogicalApplied(axis, l, len(qubits))
	return nil
}

// ApplyLogicalToken parses token with ParseAxis and applies it.
func ApplyLogicalToken(c *circuit.Circuit, token string, l *lattice.Lattice, opts ...Option) error {
	axis, err := ParseAxis(token)
	if err != nil {
		cfg := newConfig(opts)
		cfg.logger.Error("rejected logical operation", "token", token, "error", err)
		cfg.observer.Rejected(err)
		return err
	}
	return ApplyLogical(c, axis, l, opts...)
}
