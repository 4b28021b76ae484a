package tensor

import (
	"errors"
	"fmt"
	"unsafe"
)

// DType is a constraint for Go element types with a DataType counterpart.
type DType interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// ErrTypeMismatch is returned when a typed view does not match the data type
// recorded for a buffer.
var ErrTypeMismatch = errors.New("element type mismatch")

// InferDataType returns the DataType whose elements have Go type T.
func InferDataType[T DType]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case int8:
		return Int8
	case uint8:
		return Uint8
	case int16:
		return Int16
	case uint16:
		return Uint16
	case int32:
		return Int32
	case uint32:
		return Uint32
	case int64:
		return Int64
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		panic("unsupported type")
	}
}

// View reinterprets data as a []T without copying.
//
// dt must be the data type the bytes were read as, len(data) must be a
// multiple of the element size and the first byte must be aligned for T.
// The view aliases data; it is valid as long as data is.
func View[T DType](data []byte, dt DataType) ([]T, error) {
	want := InferDataType[T]()
	if dt != want {
		return nil, fmt.Errorf("%w: buffer holds %s, requested %s", ErrTypeMismatch, dt, want)
	}

	size := want.Size()
	if len(data)%size != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of %s elements", ErrTypeMismatch, len(data), want)
	}
	if len(data) == 0 {
		return []T{}, nil
	}
	if uintptr(unsafe.Pointer(&data[0]))%uintptr(size) != 0 { //nolint:gosec // alignment check only
		return nil, fmt.Errorf("%w: buffer is not %d-byte aligned", ErrTypeMismatch, size)
	}

	//nolint:gosec // unsafe.Slice for zero-copy access, length checked above
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), len(data)/size), nil
}

// Bytes returns the memory of values as a byte slice without copying.
// Elements are in host byte order, which is little-endian on every platform
// the codec supports.
func Bytes[T DType](values []T) []byte {
	if len(values) == 0 {
		return []byte{}
	}
	size := InferDataType[T]().Size()
	//nolint:gosec // unsafe.Slice for zero-copy access
	return unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*size)
}
