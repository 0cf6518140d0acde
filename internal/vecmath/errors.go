package vecmath

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch indicates an operation between vectors of different dimension.
	ErrDimensionMismatch = errors.New("vecmath: dimension mismatch")

	// ErrDimensionIncorrect indicates a component list longer than the vector dimension.
	ErrDimensionIncorrect = errors.New("vecmath: too many components for dimension")

	// ErrIndexOutOfRange indicates a component offset outside [0, dim).
	ErrIndexOutOfRange = errors.New("vecmath: component index out of range")
)

// DimensionError records the sizes involved in a failed vector operation.
type DimensionError struct {
	Got     int
	Want    int
	Wrapped error
}

func (e *DimensionError) Error() string {
	if errors.Is(e.Wrapped, ErrDimensionIncorrect) {
		return fmt.Sprintf("%v: got %d components, max %d", e.Wrapped, e.Got, e.Want)
	}
	return fmt.Sprintf("%v: %d vs %d", e.Wrapped, e.Got, e.Want)
}

func (e *DimensionError) Unwrap() error {
	return e.Wrapped
}

// IndexError records an out of range component access.
type IndexError struct {
	Index int
	Dim   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: index %d, dimension %d", ErrIndexOutOfRange, e.Index, e.Dim)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

func incorrect(got, want int) error {
	return &DimensionError{Got: got, Want: want, Wrapped: ErrDimensionIncorrect}
}

func mismatch(a, b int) error {
	return &DimensionError{Got: a, Want: b, Wrapped: ErrDimensionMismatch}
}
