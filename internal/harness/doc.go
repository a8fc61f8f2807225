// Package harness runs surface-code synthesis scenarios as executable
// contract tests.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: d3_logical_x
//	description: "Distance 3 with a logical X appended"
//	distance: 3
//	logical: [X]
//	compat:
//	  kind_dispatch: false
//	expect:
//	  num_qubits: 13
//	  register_size: 14
//	  stabilizers: 5
//	  depth: 14
//	  gate_counts: {h: 19, cx: 20, x: 3}
//	  prefix: ["h q[0]", "h q[1]"]
//
// A scenario that expects failure names the error kind instead:
//
//	expect:
//	  error: invalid_distance
//
// Error kinds are invalid_distance, invalid_operation and other.
//
// # Execution
//
// Run synthesizes the scenario with a tracing observer, records the run in
// a fresh in-memory store, reads the circuit back and checks that it
// round-trips to the same content hash. Every expect field that is set is
// then compared against the synthesized result; unset fields are ignored.
//
// Run IDs come from a fixed generator, so traces are identical across runs
// and can be compared against golden files with RunWithGolden.
package harness
