package synth

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qsurf/internal/circuit"
	"github.com/roach88/qsurf/internal/lattice"
)

func appended(c *circuit.Circuit, from int) []circuit.Op {
	return c.Ops()[from:]
}

func TestApplyLogical_X(t *testing.T) {
	l := lattice.MustNew(3)
	c := Synthesize(l)
	before := c.Len()

	require.NoError(t, ApplyLogical(c, AxisX, l))

	assert.Equal(t, []circuit.Op{
		circuit.Single(circuit.X, 0),
		circuit.Single(circuit.X, 1),
		circuit.Single(circuit.X, 2),
	}, appended(c, before))
	assert.Equal(t, 14, c.NumQubits())
}

func TestApplyLogical_ZDataColumn(t *testing.T) {
	l := lattice.MustNew(3)
	c := Synthesize(l)
	before := c.Len()

	require.NoError(t, ApplyLogical(c, AxisZ, l))

	assert.Equal(t, []circuit.Op{
		circuit.Single(circuit.Z, 0),
		circuit.Single(circuit.Z, 3),
		circuit.Single(circuit.Z, 6),
	}, appended(c, before))
}

func TestApplyLogical_ZLegacyStride(t *testing.T) {
	l := lattice.MustNew(3)
	c := Synthesize(l)
	before := c.Len()

	require.NoError(t, ApplyLogical(c, AxisZ, l, WithLegacyZStride()))

	var targets []int
	for _, op := range appended(c, before) {
		assert.Equal(t, circuit.Z, op.Gate)
		targets = append(targets, op.Target)
	}
	assert.Equal(t, []int{0, 3, 6, 9, 12}, targets)
}

func TestLogicalQubits(t *testing.T) {
	l := lattice.MustNew(5)

	x, err := LogicalQubits(AxisX, l, Compat{})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, x)

	z, err := LogicalQubits(AxisZ, l, Compat{})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 5, 10, 15, 20}, z)

	// 41 qubits: the stride runs on into the ancilla range.
	z, err = LogicalQubits(AxisZ, l, Compat{ZStrideToRegister: true})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 5, 10, 15, 20, 25, 30, 35, 40}, z)
}

func TestParseAxis(t *testing.T) {
	tests := []struct {
		token string
		want  Axis
		ok    bool
	}{
		{"X", AxisX, true},
		{"x", AxisX, true},
		{"Z", AxisZ, true},
		{" z ", AxisZ, true},
		{"Y", "", false},
		{"y", "", false},
		{"", "", false},
		{"XZ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseAxis(tt.token)
			if !tt.ok {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidOperation))
				var oe *OperationError
				require.True(t, errors.As(err, &oe))
				assert.Equal(t, tt.token, oe.Token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyLogicalToken_InvalidLeavesCircuitUnchanged(t *testing.T) {
	l := lattice.MustNew(3)
	c := Synthesize(l)
	hash := c.Hash()
	obs := &recordingObserver{}

	err := ApplyLogicalToken(c, "Y", l, WithObserver(obs))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Equal(t, hash, c.Hash())
	assert.Len(t, obs.rejected, 1)

	err = ApplyLogical(c, Axis("Y"), l)
	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.Equal(t, hash, c.Hash())
}

func TestApplyLogicalToken_CaseInsensitive(t *testing.T) {
	l := lattice.MustNew(3)
	c := Synthesize(l)
	obs := &recordingObserver{}

	require.NoError(t, ApplyLogicalToken(c, "x", l, WithObserver(obs)))
	require.NoError(t, ApplyLogicalToken(c, "z", l, WithObserver(obs)))
	assert.Equal(t, []Axis{AxisX, AxisZ}, obs.logical)
	assert.Equal(t, 39+3+3, c.Len())
}

func TestApplyLogical_RegisterTooSmall(t *testing.T) {
	l := lattice.MustNew(5)
	c := circuit.New(3)
	var buf bytes.Buffer
	obs := &recordingObserver{}

	err := ApplyLogical(c, AxisX, l,
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		WithObserver(obs),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, circuit.ErrQubitOutOfRange)
	assert.Equal(t, 0, c.Len())
	require.Len(t, obs.rejected, 1)
	assert.ErrorIs(t, obs.rejected[0], circuit.ErrQubitOutOfRange)
	assert.Empty(t, obs.logical)
	assert.Contains(t, buf.String(), "rejected logical operation")
}
