package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qsurf/internal/store"
)

// seedHistory records three runs: d3, d3 with logical X, d5.
func seedHistory(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "qsurf.db")
	rootOpts := &RootOptions{Format: "text", DB: dbPath, IDs: store.NewFixedGenerator("run-a", "run-b", "run-c")}

	_, err := executeSynth(t, rootOpts, "3")
	require.NoError(t, err)
	_, err = executeSynth(t, rootOpts, "3", "--logical", "X", "--name", "with-x")
	require.NoError(t, err)
	_, err = executeSynth(t, rootOpts, "5")
	require.NoError(t, err)
	return dbPath
}

func executeHistory(t *testing.T, rootOpts *RootOptions, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func executeShow(t *testing.T, rootOpts *RootOptions, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewShowCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestHistoryRequiresDatabase(t *testing.T) {
	_, err := executeHistory(t, &RootOptions{Format: "text"})
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--db is required")
}

func TestHistoryRequiresDatabaseJSON(t *testing.T) {
	out, err := executeHistory(t, &RootOptions{Format: "json"})
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInvalidInput, resp.Error.Code)
}

func TestHistoryNonExistentDirectory(t *testing.T) {
	_, err := executeHistory(t, &RootOptions{Format: "text", DB: "/nonexistent/path/qsurf.db"})
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestHistoryEmpty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")

	out, err := executeHistory(t, &RootOptions{Format: "text", DB: dbPath})
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")

	out, err = executeHistory(t, &RootOptions{Format: "json", DB: dbPath})
	require.NoError(t, err)
	assert.Contains(t, out, `"data":[]`)
}

func TestHistoryText(t *testing.T) {
	dbPath := seedHistory(t)

	out, err := executeHistory(t, &RootOptions{Format: "text", DB: dbPath})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "run-a  d=3  -")
	assert.Contains(t, lines[1], "run-b  d=3  X  with-x")
	assert.Contains(t, lines[2], "run-c  d=5")
}

func TestHistoryFilters(t *testing.T) {
	dbPath := seedHistory(t)

	out, err := executeHistory(t, &RootOptions{Format: "json", DB: dbPath}, "--distance", "3", "--limit", "1")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   []store.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "run-a", resp.Data[0].ID)
	assert.Equal(t, int64(1), resp.Data[0].Seq)
}

func TestShowRun(t *testing.T) {
	dbPath := seedHistory(t)

	out, err := executeShow(t, &RootOptions{Format: "text", DB: dbPath}, "run-b")
	require.NoError(t, err)
	assert.Contains(t, out, "Distance:   3")
	assert.Contains(t, out, "Operations: 42 (cx=20 h=19 x=3)")
	assert.Contains(t, out, "Logical:    X")
	assert.Contains(t, out, "Run:        run-b")
}

func TestShowRunJSON(t *testing.T) {
	dbPath := seedHistory(t)

	out, err := executeShow(t, &RootOptions{Format: "json", DB: dbPath}, "run-c")
	require.NoError(t, err)

	var resp struct {
		Data ShowResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 5, resp.Data.Run.Distance)
	assert.Equal(t, 45, resp.Data.Circuit.NumQubits)
	assert.Equal(t, 145, resp.Data.Circuit.OpCount)
	require.NotNil(t, resp.Data.Report)
	assert.Equal(t, resp.Data.Run.CircuitHash, resp.Data.Report.Hash)
	assert.Equal(t, resp.Data.Circuit.Depth, resp.Data.Report.Depth)
}

func TestShowQASM(t *testing.T) {
	dbPath := seedHistory(t)

	out, err := executeShow(t, &RootOptions{Format: "text", DB: dbPath}, "run-a", "--qasm")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "OPENQASM 2.0;\n"))
	assert.Contains(t, out, "qreg q[14];")
}

func TestShowUnknownRun(t *testing.T) {
	dbPath := seedHistory(t)

	out, err := executeShow(t, &RootOptions{Format: "text", DB: dbPath}, "nope")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E104 NOT_FOUND]")
}
