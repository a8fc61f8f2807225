// Package report serializes synthesized circuits for presentation layers.
package report

import (
	"sort"

	"github.com/roach88/qsurf/internal/circuit"
	"github.com/roach88/qsurf/internal/lattice"
)

// Report is the wire form of a circuit: qubit count, depth and one
// human-readable line per operation.
type Report struct {
	QubitCount   int            `json:"qubit_count"`
	Depth        int            `json:"depth"`
	Instructions []string       `json:"instructions"`
	Distance     int            `json:"distance,omitempty"`
	Logical      []string       `json:"logical,omitempty"`
	Hash         string         `json:"hash,omitempty"`
	GateCounts   map[string]int `json:"gate_counts,omitempty"`
	QASM         string         `json:"qasm,omitempty"`
}

// Option adds optional fields to a Report.
type Option func(*Report, *circuit.Circuit)

// WithHash includes the circuit's content hash.
func WithHash() Option {
	return func(r *Report, c *circuit.Circuit) {
		r.Hash = c.Hash()
	}
}

// WithGateCounts includes per-gate op counts.
func WithGateCounts() Option {
	return func(r *Report, c *circuit.Circuit) {
		r.GateCounts = make(map[string]int)
		for g, n := range c.GateCounts() {
			r.GateCounts[string(g)] = n
		}
	}
}

// WithQASM includes the OpenQASM 2.0 program.
func WithQASM() Option {
	return func(r *Report, c *circuit.Circuit) {
		r.QASM = c.QASM()
	}
}

// WithLogical records the logical operators that were applied.
func WithLogical(axes ...string) Option {
	return func(r *Report, _ *circuit.Circuit) {
		r.Logical = append(r.Logical, axes...)
	}
}

// FromCircuit builds the report for c. l may be nil.
func FromCircuit(c *circuit.Circuit, l *lattice.Lattice, opts ...Option) Report {
	r := Report{
		QubitCount:   c.NumQubits(),
		Depth:        c.Depth(),
		Instructions: c.Instructions(),
	}
	if l != nil {
		r.Distance = l.Distance()
	}
	for _, opt := range opts {
		opt(&r, c)
	}
	return r
}

// SortedGates returns the gate names of GateCounts in lexical order.
func (r Report) SortedGates() []string {
	gates := make([]string, 0, len(r.GateCounts))
	for g := range r.GateCounts {
		gates = append(gates, g)
	}
	sort.Strings(gates)
	return gates
}

// LatticeView is the wire form of a lattice.
type LatticeView struct {
	Distance         int                  `json:"distance"`
	NumDataQubits    int                  `json:"num_data_qubits"`
	NumAncillaQubits int                  `json:"num_ancilla_qubits"`
	NumQubits        int                  `json:"num_qubits"`
	RegisterSize     int                  `json:"register_size"`
	Boundary         string               `json:"boundary"`
	Stabilizers      []lattice.Stabilizer `json:"stabilizers"`
}

// FromLattice builds the wire form of l.
func FromLattice(l *lattice.Lattice) LatticeView {
	return LatticeView{
		Distance:         l.Distance(),
		NumDataQubits:    l.NumDataQubits(),
		NumAncillaQubits: l.NumAncillaQubits(),
		NumQubits:        l.NumQubits(),
		RegisterSize:     l.RegisterSize(),
		Boundary:         l.Boundary().String(),
		Stabilizers:      l.Stabilizers(),
	}
}
