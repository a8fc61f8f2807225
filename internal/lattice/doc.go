// Package lattice derives the geometry of a planar surface code.
//
// A Lattice of odd distance d places d*d data qubits on a square grid and
// lists the stabilizer generators that act on them. Generators come in two
// passes and the order is fixed, because ancilla qubits are assigned by
// list position:
//
//   - X-type: one weight-4 plaquette per cell of the (d-1)x(d-1) grid,
//     covering the four corner data qubits.
//   - Z-type: one weight-4 cross centred on every (odd, odd) grid point,
//     covering its four nearest neighbours.
//
// The package produces geometry only. Gate semantics live in package synth.
//
// A Lattice is immutable after New returns and is safe for concurrent reads.
package lattice
