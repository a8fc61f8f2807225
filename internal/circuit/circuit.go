// Package circuit holds an ordered gate sequence over a fixed qubit
// register.
//
// A Circuit is the output of synthesis: the register size is fixed at
// construction and operations are only ever appended. Depth, gate counts,
// human-readable instructions and OpenQASM export are derived views.
package circuit

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/qsurf/internal/ir"
)

// Gate identifies the operation applied by an Op.
type Gate string

const (
	// H is the Hadamard (superposition) gate.
	H Gate = "h"
	// X is the Pauli-X gate.
	X Gate = "x"
	// Z is the Pauli-Z gate.
	Z Gate = "z"
	// CX is the controlled-NOT gate.
	CX Gate = "cx"
)

// Controlled reports whether the gate takes a control qubit.
func (g Gate) Controlled() bool {
	return g == CX
}

func (g Gate) valid() bool {
	switch g {
	case H, X, Z, CX:
		return true
	}
	return false
}

// NoControl marks a single-qubit op.
const NoControl = -1

// Op is one operation on the register.
type Op struct {
	Gate    Gate `json:"gate"`
	Control int  `json:"control"` // NoControl for single-qubit gates
	Target  int  `json:"target"`
}

// Single returns a single-qubit op.
func Single(g Gate, target int) Op {
	return Op{Gate: g, Control: NoControl, Target: target}
}

// Controlled returns a two-qubit controlled op.
func Controlled(g Gate, control, target int) Op {
	return Op{Gate: g, Control: control, Target: target}
}

// Qubits returns the qubits the op touches, control first.
func (o Op) Qubits() []int {
	if o.Control == NoControl {
		return []int{o.Target}
	}
	return []int{o.Control, o.Target}
}

// String renders the op in OpenQASM instruction form, e.g. "cx q[0],q[9]".
func (o Op) String() string {
	if o.Control == NoControl {
		return fmt.Sprintf("%s q[%d]", o.Gate, o.Target)
	}
	return fmt.Sprintf("%s q[%d],q[%d]", o.Gate, o.Control, o.Target)
}

// Errors returned by Append.
var (
	ErrQubitOutOfRange = errors.New("qubit index outside register")
	ErrInvalidOp       = errors.New("invalid operation")
)

// Circuit is an ordered sequence of ops bound to a register of NumQubits.
type Circuit struct {
	numQubits int
	ops       []Op
}

// New allocates an empty circuit over n qubits.
func New(n int) *Circuit {
	return &Circuit{numQubits: n}
}

// NumQubits returns the register size.
func (c *Circuit) NumQubits() int { return c.numQubits }

// Len returns the number of ops.
func (c *Circuit) Len() int { return len(c.ops) }

// Ops returns a copy of the op sequence.
func (c *Circuit) Ops() []Op { return slices.Clone(c.ops) }

// At returns the op at position i.
func (c *Circuit) At(i int) Op { return c.ops[i] }

// Append validates op against the register and appends it.
func (c *Circuit) Append(op Op) error {
	if !op.Gate.valid() {
		return fmt.Errorf("%w: unknown gate %q", ErrInvalidOp, op.Gate)
	}
	if op.Target < 0 || op.Target >= c.numQubits {
		return fmt.Errorf("%w: target %d, register size %d", ErrQubitOutOfRange, op.Target, c.numQubits)
	}
	if op.Gate.Controlled() {
		if op.Control < 0 || op.Control >= c.numQubits {
			return fmt.Errorf("%w: control %d, register size %d", ErrQubitOutOfRange, op.Control, c.numQubits)
		}
		if op.Control == op.Target {
			return fmt.Errorf("%w: control and target are both %d", ErrInvalidOp, op.Target)
		}
	} else if op.Control != NoControl {
		return fmt.Errorf("%w: %s takes no control qubit", ErrInvalidOp, op.Gate)
	}
	c.ops = append(c.ops, op)
	return nil
}

// Clone returns an independent copy.
func (c *Circuit) Clone() *Circuit {
	return &Circuit{numQubits: c.numQubits, ops: slices.Clone(c.ops)}
}

// Depth returns the length of the longest chain of ops that share a qubit.
// Each op lands one layer above the deepest layer reached so far on any of
// its qubits.
func (c *Circuit) Depth() int {
	level := make([]int, c.numQubits)
	depth := 0
	for _, op := range c.ops {
		l := 0
		for _, q := range op.Qubits() {
			l = max(l, level[q])
		}
		l++
		for _, q := range op.Qubits() {
			level[q] = l
		}
		depth = max(depth, l)
	}
	return depth
}

// GateCounts returns the number of ops per gate.
func (c *Circuit) GateCounts() map[Gate]int {
	counts := make(map[Gate]int)
	for _, op := range c.ops {
		counts[op.Gate]++
	}
	return counts
}

// Instructions returns one human-readable line per op, in order.
func (c *Circuit) Instructions() []string {
	out := make([]string, len(c.ops))
	for i, op := range c.ops {
		out[i] = op.String()
	}
	return out
}

// QASM renders the circuit as an OpenQASM 2.0 program.
func (c *Circuit) QASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", c.numQubits)
	for _, op := range c.ops {
		sb.WriteString(op.String())
		sb.WriteString(";\n")
	}
	return sb.String()
}

// Canonical returns the circuit as an ir.IRObject for hashing.
func (c *Circuit) Canonical() ir.IRObject {
	ops := make(ir.IRArray, len(c.ops))
	for i, op := range c.ops {
		ops[i] = ir.IRObject{
			"gate":    ir.IRString(op.Gate),
			"control": ir.IRInt(op.Control),
			"target":  ir.IRInt(op.Target),
		}
	}
	return ir.IRObject{
		"num_qubits": ir.IRInt(c.numQubits),
		"ops":        ops,
	}
}

// Hash returns the content-addressed ID of the circuit.
func (c *Circuit) Hash() string {
	return ir.MustCircuitHash(c.Canonical())
}
