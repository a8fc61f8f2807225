// Package store provides SQLite-backed history of synthesized circuits.
//
// Two tables:
//   - circuits: content-addressed by the canonical circuit hash, so a
//     circuit synthesized many times is stored once
//   - runs: one row per synthesis request (distance, logical operators,
//     compatibility flags) pointing at its circuit
//
// Runs are ordered by a logical sequence number, never by wall-clock
// time; every listing uses ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package store
