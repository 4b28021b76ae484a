package tensor

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrShapeOverflow is returned when a shape's byte count does not fit in an int64.
var ErrShapeOverflow = errors.New("shape size overflows int64")

// Shape represents the dimensions of an array in row-major order.
type Shape []int

// NumElements returns the total number of elements.
// Callers must have validated the shape; see ByteSize for an overflow-checked variant.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that the shape has at least one dimension and no negative extents.
// Zero extents are allowed: NumPy writes empty arrays with shape (0,).
func (s Shape) Validate() error {
	if len(s) == 0 {
		return errors.New("shape has no dimensions")
	}
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// ByteSize returns product(s) * elemSize, failing with ErrShapeOverflow
// instead of wrapping around.
func (s Shape) ByteSize(elemSize int) (int64, error) {
	total := uint64(elemSize) //nolint:gosec // G115: element sizes are 1..8
	for _, dim := range s {
		hi, lo := bits.Mul64(total, uint64(dim)) //nolint:gosec // G115: validated non-negative
		if hi != 0 || lo > 1<<63-1 {
			return 0, fmt.Errorf("%w: %v x %d", ErrShapeOverflow, []int(s), elemSize)
		}
		total = lo
	}
	return int64(total), nil //nolint:gosec // G115: bounded above
}

// Rows returns the product of every dimension except the last.
// A rank-1 shape is a single row.
func (s Shape) Rows() int {
	if len(s) == 0 {
		return 0
	}
	return s[:len(s)-1].NumElements()
}

// Last returns the extent of the fastest-varying dimension.
func (s Shape) Last() int {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}
