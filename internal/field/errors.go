package field

import (
	"errors"
	"fmt"
)

// Domain errors for field operations.
var (
	// ErrOutOfBounds indicates a position with no enclosing cell.
	ErrOutOfBounds = errors.New("field: position outside grid bounds")

	// ErrInvalidRange indicates a caller-supplied parameter outside its documented range.
	ErrInvalidRange = errors.New("field: parameter out of valid range")

	// ErrDegenerateCell indicates a cell whose crossing count is not 0, 2 or 4.
	ErrDegenerateCell = errors.New("field: degenerate cell")

	// ErrDimensionMismatch indicates an array whose length differs from the point count.
	ErrDimensionMismatch = errors.New("field: array length does not match point count")

	// ErrInvalidGrid indicates grid dimensions or spacing that cannot describe cells.
	ErrInvalidGrid = errors.New("field: invalid grid geometry")

	// ErrUnknownArray indicates a lookup for an array the source does not carry.
	ErrUnknownArray = errors.New("field: unknown array")
)

// OutOfBoundsError wraps ErrOutOfBounds with the rejected position.
type OutOfBoundsError struct {
	Position Vec3
	Field    string
}

func (e *OutOfBoundsError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: (%g, %g, %g)", ErrOutOfBounds, e.Position[0], e.Position[1], e.Position[2])
	}
	return fmt.Sprintf("%s: %q at (%g, %g, %g)", ErrOutOfBounds, e.Field, e.Position[0], e.Position[1], e.Position[2])
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// RangeError wraps ErrInvalidRange with the offending parameter.
type RangeError struct {
	Name  string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s=%g not in [%g, %g]", ErrInvalidRange, e.Name, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}

// CheckRange returns a *RangeError when v lies outside [lo, hi].
func CheckRange(name string, v, lo, hi float64) error {
	if v < lo || v > hi || v != v {
		return &RangeError{Name: name, Value: v, Min: lo, Max: hi}
	}
	return nil
}
