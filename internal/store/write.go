package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/qsurf/internal/circuit"
	"github.com/roach88/qsurf/internal/ir"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WriteCircuit stores c under its content hash and returns the hash.
// Writing the same circuit twice is a no-op.
func (s *Store) WriteCircuit(ctx context.Context, c *circuit.Circuit) (string, error) {
	return writeCircuit(ctx, s.db, c)
}

func writeCircuit(ctx context.Context, db execer, c *circuit.Circuit) (string, error) {
	canonical := c.Canonical()
	hash, err := ir.CircuitHash(canonical)
	if err != nil {
		return "", fmt.Errorf("write circuit: %w", err)
	}
	body, err := ir.MarshalCanonical(canonical)
	if err != nil {
		return "", fmt.Errorf("write circuit: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO circuits (hash, num_qubits, depth, op_count, body, qasm)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`, hash, c.NumQubits(), c.Depth(), c.Len(), string(body), c.QASM())
	if err != nil {
		return "", fmt.Errorf("write circuit: %w", err)
	}
	return hash, nil
}

// WriteRun inserts a run. When run.Seq is zero the next sequence number is
// assigned. The referenced circuit must already exist.
func (s *Store) WriteRun(ctx context.Context, run Run) (Run, error) {
	return writeRun(ctx, s.db, run)
}

func writeRun(ctx context.Context, db execer, run Run) (Run, error) {
	if run.Seq == 0 {
		if err := db.QueryRowContext(ctx,
			"SELECT COALESCE(MAX(seq), 0) + 1 FROM runs",
		).Scan(&run.Seq); err != nil {
			return Run{}, fmt.Errorf("write run: next seq: %w", err)
		}
	}
	if run.Logical == nil {
		run.Logical = []string{}
	}

	logical, err := json.Marshal(run.Logical)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}
	compat, err := json.Marshal(run.Compat)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, seq, name, distance, logical, compat, circuit_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Seq, run.Name, run.Distance, string(logical), string(compat), run.CircuitHash)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}
	return run, nil
}

// Record stores c and a run pointing at it in one transaction. run.ID must
// be set; CircuitHash and Seq are filled in.
func (s *Store) Record(ctx context.Context, run Run, c *circuit.Circuit) (Run, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record: begin: %w", err)
	}
	defer tx.Rollback()

	hash, err := writeCircuit(ctx, tx, c)
	if err != nil {
		return Run{}, fmt.Errorf("record: %w", err)
	}
	run.CircuitHash = hash

	run, err = writeRun(ctx, tx, run)
	if err != nil {
		return Run{}, fmt.Errorf("record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record: commit: %w", err)
	}
	return run, nil
}
