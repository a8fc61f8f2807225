package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/qsurf/internal/circuit"
)

// circuitBody is the stored canonical form of a circuit.
type circuitBody struct {
	NumQubits int          `json:"num_qubits"`
	Ops       []circuit.Op `json:"ops"`
}

// ReadCircuit loads the circuit stored under hash.
func (s *Store) ReadCircuit(ctx context.Context, hash string) (*circuit.Circuit, error) {
	var body string
	err := s.db.QueryRowContext(ctx, "SELECT body FROM circuits WHERE hash = ?", hash).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read circuit %s: %w", hash, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read circuit %s: %w", hash, err)
	}

	var cb circuitBody
	if err := json.Unmarshal([]byte(body), &cb); err != nil {
		return nil, fmt.Errorf("read circuit %s: decode: %w", hash, err)
	}
	c := circuit.New(cb.NumQubits)
	for i, op := range cb.Ops {
		if err := c.Append(op); err != nil {
			return nil, fmt.Errorf("read circuit %s: op %d: %w", hash, i, err)
		}
	}
	return c, nil
}

// ReadCircuitSummary loads the stored counters for a circuit.
func (s *Store) ReadCircuitSummary(ctx context.Context, hash string) (CircuitSummary, error) {
	cs := CircuitSummary{Hash: hash}
	err := s.db.QueryRowContext(ctx,
		"SELECT num_qubits, depth, op_count FROM circuits WHERE hash = ?", hash,
	).Scan(&cs.NumQubits, &cs.Depth, &cs.OpCount)
	if errors.Is(err, sql.ErrNoRows) {
		return CircuitSummary{}, fmt.Errorf("read circuit %s: %w", hash, ErrNotFound)
	}
	if err != nil {
		return CircuitSummary{}, fmt.Errorf("read circuit %s: %w", hash, err)
	}
	return cs, nil
}

// ReadQASM returns the stored OpenQASM program for a circuit.
func (s *Store) ReadQASM(ctx context.Context, hash string) (string, error) {
	var qasm string
	err := s.db.QueryRowContext(ctx, "SELECT qasm FROM circuits WHERE hash = ?", hash).Scan(&qasm)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("read qasm %s: %w", hash, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read qasm %s: %w", hash, err)
	}
	return qasm, nil
}

const runColumns = "id, seq, name, distance, logical, compat, circuit_hash"

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run             Run
		logical, compat string
	)
	if err := row.Scan(&run.ID, &run.Seq, &run.Name, &run.Distance, &logical, &compat, &run.CircuitHash); err != nil {
		return Run{}, err
	}
	if err := json.Unmarshal([]byte(logical), &run.Logical); err != nil {
		return Run{}, fmt.Errorf("decode logical: %w", err)
	}
	if err := json.Unmarshal([]byte(compat), &run.Compat); err != nil {
		return Run{}, fmt.Errorf("decode compat: %w", err)
	}
	return run, nil
}

// ReadRun loads a run by ID.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns runs in sequence order.
func (s *Store) ListRuns(ctx context.Context, opts ListOptions) ([]Run, error) {
	var (
		query strings.Builder
		args  []any
	)
	query.WriteString("SELECT " + runColumns + " FROM runs")
	if opts.Distance > 0 {
		query.WriteString(" WHERE distance = ?")
		args = append(args, opts.Distance)
	}
	query.WriteString(" ORDER BY seq ASC, id ASC COLLATE BINARY")
	if opts.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// CountCircuits returns the number of distinct stored circuits.
func (s *Store) CountCircuits(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM circuits").Scan(&n); err != nil {
		return 0, fmt.Errorf("count circuits: %w", err)
	}
	return n, nil
}
