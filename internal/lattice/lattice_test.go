package lattice

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidDistance(t *testing.T) {
	for _, d := range []int{-3, -1, 0, 1, 2, 4, 6, 10} {
		l, err := New(d)
		require.Error(t, err, "distance %d", d)
		assert.Nil(t, l)
		assert.True(t, errors.Is(err, ErrInvalidDistance))
		assert.True(t, IsInvalidDistance(err))

		var de *DistanceError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, d, de.Distance)
	}
}

func TestNew_QubitCounts(t *testing.T) {
	for d := 3; d <= 15; d += 2 {
		l, err := New(d)
		require.NoError(t, err)
		assert.Equal(t, d, l.Distance())
		assert.Equal(t, d*d, l.NumDataQubits())
		assert.Equal(t, (d-1)*(d-1), l.NumAncillaQubits())
		assert.Equal(t, d*d+(d-1)*(d-1), l.NumQubits())
	}
}

func TestNew_GeneratorCountsAndKinds(t *testing.T) {
	for d := 3; d <= 15; d += 2 {
		l := MustNew(d)
		numX := (d - 1) * (d - 1)
		numZ := ((d - 1) / 2) * ((d - 1) / 2)

		stabs := l.Stabilizers()
		require.Len(t, stabs, numX+numZ, "distance %d", d)
		assert.Equal(t, numX+numZ, l.NumStabilizers())
		assert.Len(t, l.XStabilizers(), numX)
		assert.Len(t, l.ZStabilizers(), numZ)

		for i, s := range stabs {
			assert.Equal(t, i, s.Index)
			assert.Equal(t, 4, s.Weight())
			if i < numX {
				assert.Equal(t, KindX, s.Kind)
			} else {
				assert.Equal(t, KindZ, s.Kind)
			}
		}
	}
}

func TestNew_Distance3(t *testing.T) {
	l := MustNew(3)

	assert.Equal(t, 13, l.NumQubits())
	assert.Equal(t, 14, l.RegisterSize())

	want := [][]Coord{
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
		{{1, 0}, {1, 1}, {2, 0}, {2, 1}},
		{{1, 1}, {1, 2}, {2, 1}, {2, 2}},
		{{0, 1}, {2, 1}, {1, 0}, {1, 2}},
	}
	stabs := l.Stabilizers()
	require.Len(t, stabs, len(want))
	for i, coords := range want {
		assert.Equal(t, coords, stabs[i].Coords, "generator %d", i)
	}
	assert.Equal(t, KindZ, stabs[4].Kind)
}

func TestNew_CoordinatesInGrid(t *testing.T) {
	for _, b := range []Boundary{BoundaryClip, BoundaryStrict, BoundaryRaw} {
		for d := 3; d <= 21; d += 2 {
			l, err := New(d, WithBoundary(b))
			require.NoError(t, err, "boundary %s distance %d", b, d)
			for _, s := range l.Stabilizers() {
				for _, c := range s.Coords {
					assert.True(t, l.InGrid(c), "generator %d coordinate %s", s.Index, c)
				}
			}
		}
	}
}

func TestNew_BoundaryModesAgreeForOddDistance(t *testing.T) {
	for d := 3; d <= 11; d += 2 {
		clip := MustNew(d, WithBoundary(BoundaryClip))
		raw := MustNew(d, WithBoundary(BoundaryRaw))
		assert.Equal(t, raw.Stabilizers(), clip.Stabilizers())
	}
}

func TestNew_Deterministic(t *testing.T) {
	a := MustNew(7)
	b := MustNew(7)
	assert.Equal(t, a.Stabilizers(), b.Stabilizers())
}

func TestStabilizers_ReturnsCopy(t *testing.T) {
	l := MustNew(3)
	s := l.Stabilizers()
	s[0].Coords[0] = Coord{Row: 99, Col: 99}

	again, ok := l.Stabilizer(0)
	require.True(t, ok)
	assert.Equal(t, Coord{Row: 0, Col: 0}, again.Coords[0])

	_, ok = l.Stabilizer(l.NumStabilizers())
	assert.False(t, ok)
}

func TestDataIndex(t *testing.T) {
	l := MustNew(5)
	for idx := 0; idx < l.NumDataQubits(); idx++ {
		c := l.DataCoord(idx)
		assert.Equal(t, idx, l.DataIndex(c))
	}
	assert.Equal(t, 7, l.DataIndex(Coord{Row: 1, Col: 2}))
}

func TestSameShape(t *testing.T) {
	a := Stabilizer{Index: 0, Kind: KindX, Coords: []Coord{{0, 0}, {0, 1}}}
	b := Stabilizer{Index: 5, Kind: KindZ, Coords: []Coord{{0, 0}, {0, 1}}}
	c := Stabilizer{Index: 0, Kind: KindX, Coords: []Coord{{0, 1}, {0, 0}}}
	assert.True(t, a.SameShape(b))
	assert.False(t, a.SameShape(c))
}

func TestKindText(t *testing.T) {
	b, err := KindZ.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Z", string(b))

	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("x")))
	assert.Equal(t, KindX, k)
	assert.Error(t, k.UnmarshalText([]byte("Y")))

	_, err = Kind(0).MarshalText()
	assert.Error(t, err)
}

func TestNew_LogsThroughInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	_, err := New(5, WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "initialized surface code")
	assert.Contains(t, buf.String(), "distance=5")

	buf.Reset()
	_, err = New(4, WithLogger(logger))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "rejected surface code distance")
}
