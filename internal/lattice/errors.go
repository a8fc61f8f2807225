package lattice

import (
	"errors"
	"fmt"
)

// ErrInvalidDistance is returned when a code distance is below 3 or even.
var ErrInvalidDistance = errors.New("surface code distance must be an odd integer greater than or equal to 3")

// ErrCoordinateOutOfRange is returned when a generator references a
// coordinate outside the data grid and the lattice is built with BoundaryStrict.
var ErrCoordinateOutOfRange = errors.New("stabilizer coordinate outside data grid")

// DistanceError reports the rejected distance.
type DistanceError struct {
	Distance int
}

func (e *DistanceError) Error() string {
	return fmt.Sprintf("invalid distance %d: %v", e.Distance, ErrInvalidDistance)
}

func (e *DistanceError) Unwrap() error {
	return ErrInvalidDistance
}

// CoordinateError reports the generator and coordinate that left the grid.
type CoordinateError struct {
	Generator int
	Coord     Coord
	Distance  int
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("generator %d: coordinate %s outside [0,%d)x[0,%d)",
		e.Generator, e.Coord, e.Distance, e.Distance)
}

func (e *CoordinateError) Unwrap() error {
	return ErrCoordinateOutOfRange
}

// IsInvalidDistance reports whether err is, or wraps, ErrInvalidDistance.
func IsInvalidDistance(err error) bool {
	return errors.Is(err, ErrInvalidDistance)
}
