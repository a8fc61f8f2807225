package store

import (
	"github.com/roach88/qsurf/internal/synth"
)

// Run is one recorded synthesis request.
type Run struct {
	ID          string       `json:"id"`
	Seq         int64        `json:"seq"`
	Name        string       `json:"name,omitempty"`
	Distance    int          `json:"distance"`
	Logical     []string     `json:"logical"`
	Compat      synth.Compat `json:"compat"`
	CircuitHash string       `json:"circuit_hash"`
}

// CircuitSummary describes a stored circuit without its body.
type CircuitSummary struct {
	Hash      string `json:"hash"`
	NumQubits int    `json:"num_qubits"`
	Depth     int    `json:"depth"`
	OpCount   int    `json:"op_count"`
}

// ListOptions filters ListRuns.
type ListOptions struct {
	Distance int // 0 means any distance
	Limit    int // 0 means no limit
}
