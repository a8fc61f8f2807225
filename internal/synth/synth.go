package synth

import (
	"fmt"

	"github.com/roach88/qsurf/internal/circuit"
	"github.com/roach88/qsurf/internal/lattice"
)

// Assignment binds a stabilizer generator to its ancilla qubit and to the
// measurement pattern it will be emitted with.
type Assignment struct {
	Stabilizer lattice.Stabilizer
	Ancilla    int
	Kind       lattice.Kind // pattern used: by weight, or Stabilizer.Kind under KindDispatch
}

// Assignments enumerates the generators once and fixes each ancilla index
// at d² + position. The measurement pattern follows the generator weight:
// weight 4 is measured as X, anything else as Z.
func Assignments(l *lattice.Lattice, compat Compat) []Assignment {
	stabs := l.Stabilizers()
	base := l.NumDataQubits()
	out := make([]Assignment, len(stabs))
	for i, s := range stabs {
		pos := i
		if compat.ValueLookupAncilla {
			pos = firstSameShape(stabs, s)
		}
		kind := lattice.KindZ
		if s.Weight() == 4 {
			kind = lattice.KindX
		}
		if compat.KindDispatch {
			kind = s.Kind
		}
		out[i] = Assignment{Stabilizer: s, Ancilla: base + pos, Kind: kind}
	}
	return out
}

func firstSameShape(stabs []lattice.Stabilizer, s lattice.Stabilizer) int {
	for i, other := range stabs {
		if other.SameShape(s) {
			return i
		}
	}
	return s.Index
}

// Synthesize builds the stabilizer-measurement circuit for l.
//
// The register holds l.RegisterSize() qubits so that every generator gets
// its own ancilla. That is more than l.NumQubits() (14 against 13 for d=3),
// and a report built from the circuit carries the register size as its
// qubit_count. Synthesis cannot fail once a Lattice exists.
func Synthesize(l *lattice.Lattice, opts ...Option) *circuit.Circuit {
	cfg := newConfig(opts)

	c := circuit.New(l.RegisterSize())
	for q := 0; q < l.NumDataQubits(); q++ {
		mustAppend(c, circuit.Single(circuit.H, q))
	}

	for _, a := range Assignments(l, cfg.compat) {
		switch a.Kind {
		case lattice.KindX:
			mustAppend(c, circuit.Single(circuit.H, a.Ancilla))
			for _, coord := range a.Stabilizer.Coords {
				mustAppend(c, circuit.Controlled(circuit.CX, l.DataIndex(coord), a.Ancilla))
			}
			mustAppend(c, circuit.Single(circuit.H, a.Ancilla))
		default:
			for _, coord := range a.Stabilizer.Coords {
				mustAppend(c, circuit.Controlled(circuit.CX, a.Ancilla, l.DataIndex(coord)))
			}
		}
	}

	cfg.logger.Info("generated surface code circuit",
		"distance", l.Distance(),
		"qubits", c.NumQubits(),
		"ops", c.Len(),
	)
	cfg.observer.Synthesized(l, c)
	return c
}

// Generate builds the lattice for distance and synthesizes its circuit.
func Generate(distance int, opts ...Option) (*lattice.Lattice, *circuit.Circuit, error) {
	cfg := newConfig(opts)
	l, err := lattice.New(distance, lattice.WithLogger(cfg.logger))
	if err != nil {
		cfg.logger.Error("failed to generate surface code circuit", "error", err)
		cfg.observer.Rejected(err)
		return nil, nil, err
	}
	return l, Synthesize(l, opts...), nil
}

// mustAppend appends an op whose qubits come from the lattice. The
// register is sized from the same lattice, so a failure is a bug.
func mustAppend(c *circuit.Circuit, op circuit.Op) {
	if err := c.Append(op); err != nil {
		panic(fmt.Sprintf("synth: %v", err))
	}
}
