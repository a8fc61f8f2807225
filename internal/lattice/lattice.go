package lattice

import (
	"fmt"
	"slices"
)

// Kind tags a stabilizer generator as X-type or Z-type.
type Kind uint8

const (
	KindX Kind = iota + 1
	KindZ
)

func (k Kind) String() string {
	switch k {
	case KindX:
		return "X"
	case KindZ:
		return "Z"
	default:
		return "?"
	}
}

// Coord is a (row, col) position on the data grid.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Stabilizer is one generator of the stabilizer group.
type Stabilizer struct {
	Index  int     `json:"index"` // position in the generator list
	Kind   Kind    `json:"kind"`
	Coords []Coord `json:"coords"`
}

// Weight returns the number of data qubits the generator acts on.
func (s Stabilizer) Weight() int {
	return len(s.Coords)
}

// SameShape reports whether two generators reference the same coordinates
// in the same order. Index and Kind are ignored.
func (s Stabilizer) SameShape(o Stabilizer) bool {
	return slices.Equal(s.Coords, o.Coords)
}

func (s Stabilizer) clone() Stabilizer {
	s.Coords = slices.Clone(s.Coords)
	return s
}

// Lattice is the immutable geometry of a planar surface code.
type Lattice struct {
	distance    int
	boundary    Boundary
	stabilizers []Stabilizer
	numX        int
}

// New builds the lattice for the given code distance.
//
// It fails with a *DistanceError wrapping ErrInvalidDistance when distance
// is below 3 or even, and never returns a partially built Lattice.
func New(distance int, opts ...Option) (*Lattice, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if distance < 3 || distance%2 == 0 {
		cfg.logger.Error("rejected surface code distance", "distance", distance)
		return nil, &DistanceError{Distance: distance}
	}

	l := &Lattice{distance: distance, boundary: cfg.boundary}
	if err := l.generate(); err != nil {
		cfg.logger.Error("stabilizer generation failed", "distance", distance, "error", err)
		return nil, err
	}

	cfg.logger.Info("initialized surface code",
		"distance", distance,
		"data_qubits", l.NumDataQubits(),
		"ancilla_qubits", l.NumAncillaQubits(),
		"stabilizers", len(l.stabilizers),
		"boundary", l.boundary.String(),
	)
	return l, nil
}

// MustNew is like New but panics on error.
// Use only in tests or with constant distances.
func MustNew(distance int, opts ...Option) *Lattice {
	l, err := New(distance, opts...)
	if err != nil {
		panic(err)
	}
	return l
}

// generate fills the generator list: every X plaquette first, then every
// Z cross.
func (l *Lattice) generate() error {
	d := l.distance
	numZ := ((d - 1) / 2) * ((d - 1) / 2)
	l.stabilizers = make([]Stabilizer, 0, (d-1)*(d-1)+numZ)

	for i := 0; i < d-1; i++ {
		for j := 0; j < d-1; j++ {
			if err := l.add(KindX, []Coord{
				{i, j}, {i, j + 1},
				{i + 1, j}, {i + 1, j + 1},
			}); err != nil {
				return err
			}
		}
	}
	l.numX = len(l.stabilizers)

	for i := 1; i < d; i += 2 {
		for j := 1; j < d; j += 2 {
			if err := l.add(KindZ, []Coord{
				{i - 1, j}, {i + 1, j},
				{i, j - 1}, {i, j + 1},
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *Lattice) add(kind Kind, coords []Coord) error {
	idx := len(l.stabilizers)
	switch l.boundary {
	case BoundaryRaw:
	case BoundaryStrict:
		for _, c := range coords {
			if !l.InGrid(c) {
				return &CoordinateError{Generator: idx, Coord: c, Distance: l.distance}
			}
		}
	default:
		coords = slices.DeleteFunc(coords, func(c Coord) bool { return !l.InGrid(c) })
		if len(coords) == 0 {
			return nil
		}
	}
	l.stabilizers = append(l.stabilizers, Stabilizer{Index: idx, Kind: kind, Coords: coords})
	return nil
}

// Distance returns the code distance d.
func (l *Lattice) Distance() int { return l.distance }

// Boundary returns the boundary mode the lattice was built with.
func (l *Lattice) Boundary() Boundary { return l.boundary }

// NumDataQubits returns d².
func (l *Lattice) NumDataQubits() int { return l.distance * l.distance }

// NumAncillaQubits returns (d-1)².
func (l *Lattice) NumAncillaQubits() int { return (l.distance - 1) * (l.distance - 1) }

// NumQubits returns d² + (d-1)².
func (l *Lattice) NumQubits() int { return l.NumDataQubits() + l.NumAncillaQubits() }

// NumStabilizers returns the length of the generator list.
func (l *Lattice) NumStabilizers() int { return len(l.stabilizers) }

// RegisterSize returns the number of qubits needed to give every generator
// its own ancilla: d² plus the generator count. It is never smaller than
// NumQubits.
func (l *Lattice) RegisterSize() int {
	return max(l.NumDataQubits()+len(l.stabilizers), l.NumQubits())
}

// Stabilizers returns a copy of the generator list in construction order.
func (l *Lattice) Stabilizers() []Stabilizer {
	out := make([]Stabilizer, len(l.stabilizers))
	for i, s := range l.stabilizers {
		out[i] = s.clone()
	}
	return out
}

// Stabilizer returns the generator at position i.
func (l *Lattice) Stabilizer(i int) (Stabilizer, bool) {
	if i < 0 || i >= len(l.stabilizers) {
		return Stabilizer{}, false
	}
	return l.stabilizers[i].clone(), true
}

// XStabilizers returns the X-type generators.
func (l *Lattice) XStabilizers() []Stabilizer {
	return l.Stabilizers()[:l.numX]
}

// ZStabilizers returns the Z-type generators.
func (l *Lattice) ZStabilizers() []Stabilizer {
	return l.Stabilizers()[l.numX:]
}

// InGrid reports whether c lies in [0,d)x[0,d).
func (l *Lattice) InGrid(c Coord) bool {
	return c.Row >= 0 && c.Row < l.distance && c.Col >= 0 && c.Col < l.distance
}

// DataIndex maps a grid coordinate to its data-qubit index row*d + col.
func (l *Lattice) DataIndex(c Coord) int {
	return c.Row*l.distance + c.Col
}

// DataCoord is the inverse of DataIndex.
func (l *Lattice) DataCoord(index int) Coord {
	return Coord{Row: index / l.distance, Col: index % l.distance}
}

// MarshalText encodes the kind as "X" or "Z".
func (k Kind) MarshalText() ([]byte, error) {
	if k != KindX && k != KindZ {
		return nil, fmt.Errorf("unknown stabilizer kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes "X" or "Z".
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "X", "x":
		*k = KindX
	case "Z", "z":
		*k = KindZ
	default:
		return fmt.Errorf("unknown stabilizer kind %q", b)
	}
	return nil
}
