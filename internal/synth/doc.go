// Package synth turns surface-code lattice geometry into a gate sequence.
//
// Synthesize prepares every data qubit with a Hadamard and then emits one
// measurement block per stabilizer generator, using a dedicated ancilla
// qubit assigned by list position. The block is chosen by generator
// weight:
//
//	weight 4: H(a); CX(d -> a) for each data qubit d; H(a)
//	other:    CX(a -> d) for each data qubit d
//
// All generators of an odd-distance lattice have weight 4, so the Z
// crosses are measured like plaquettes. Compat.KindDispatch selects the
// block from the generator's Kind instead.
//
// ApplyLogical appends a logical X (first grid row) or logical Z (first
// grid column) to an existing circuit.
//
// Compat also reproduces value-lookup ancilla assignment and the logical Z
// stride over the whole register. All options are off by default.
package synth
