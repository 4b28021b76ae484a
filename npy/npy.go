// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package npy

import (
	"io"

	"github.com/born-ml/npy/internal/mem"
	"github.com/born-ml/npy/internal/serialization"
	"github.com/born-ml/npy/internal/tensor"
)

// DataType identifies the element type of an array.
type DataType = tensor.DataType

// Supported element types.
const (
	Int8    DataType = tensor.Int8
	Uint8   DataType = tensor.Uint8
	Int16   DataType = tensor.Int16
	Uint16  DataType = tensor.Uint16
	Int32   DataType = tensor.Int32
	Uint32  DataType = tensor.Uint32
	Int64   DataType = tensor.Int64
	Uint64  DataType = tensor.Uint64
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Descriptor describes the storage of one element type.
type Descriptor = tensor.Descriptor

// DataTypes returns every supported element type.
func DataTypes() []DataType {
	return tensor.DataTypes()
}

// Shape holds the extents of an array, outermost first.
// Example: Shape{2, 3} is 2 rows of 3 elements.
type Shape = tensor.Shape

// Header is the decoded header of a .npy file.
type Header = serialization.Header

// Preamble holds version and layout information about a .npy file.
type Preamble = serialization.Preamble

// AlignedBuffer is a row-padded array buffer returned by the aligned readers.
// Call Release when done with it.
type AlignedBuffer = mem.AlignedBuffer

// MmapReader gives zero-copy access to the payload of a .npy file.
type MmapReader = serialization.MmapReader

// Error types.
type (
	FormatError     = serialization.FormatError
	IOError         = serialization.IOError
	AllocationError = serialization.AllocationError
)

// Format error sentinels wrapped by *FormatError.
var (
	ErrInvalidMagic       = serialization.ErrInvalidMagic
	ErrUnsupportedVersion = serialization.ErrUnsupportedVersion
	ErrHeaderTooLarge     = serialization.ErrHeaderTooLarge
	ErrMalformedHeader    = serialization.ErrMalformedHeader
	ErrFortranOrder       = serialization.ErrFortranOrder
	ErrBigEndian          = serialization.ErrBigEndian
	ErrUnsupportedDType   = serialization.ErrUnsupportedDType
	ErrMalformedShape     = serialization.ErrMalformedShape
)

// Other sentinels.
var (
	ErrTruncated    = serialization.ErrTruncated    // wrapped by *IOError
	ErrShortBuffer  = serialization.ErrShortBuffer  // data shorter than the shape needs
	ErrAllocation   = mem.ErrAllocation             // wrapped by *AllocationError
	ErrClosed       = serialization.ErrClosed       // MmapReader used after Close
	ErrTypeMismatch = tensor.ErrTypeMismatch        // AsSlice on the wrong element type
)

// DefaultAlignment is the row alignment for aligned loads when the caller has
// no specific requirement.
const DefaultAlignment = serialization.DefaultAlignment

// ValidationLevel controls how strictly header dictionaries are checked.
type ValidationLevel = serialization.ValidationLevel

// Validation levels.
const (
	ValidationStrict = serialization.ValidationStrict // reject unknown keys (default)
	ValidationNormal = serialization.ValidationNormal // ignore unknown keys
)

// Option configures reads and writes.
type Option = serialization.Option

// Options re-exported from the codec.
var (
	WithLogger          = serialization.WithLogger
	WithValidationLevel = serialization.WithValidationLevel
	WithMaxHeaderSize   = serialization.WithMaxHeaderSize
	WithMaxAllocBytes   = serialization.WithMaxAllocBytes
)

// WriteArray writes one array to w in .npy version 1.0 format and returns
// the number of bytes written.
//
// data must hold at least shape.NumElements() * dt.Size() bytes; exactly
// that many are written.
func WriteArray(w io.Writer, data []byte, dt DataType, shape Shape, opts ...Option) (int64, error) {
	return serialization.Write(w, data, dt, shape, opts...)
}

// ReadArray reads one array from r into a newly allocated, 64-byte aligned
// buffer owned by the caller.
func ReadArray(r io.Reader, opts ...Option) ([]byte, DataType, Shape, error) {
	return serialization.Read(r, opts...)
}

// ReadArrayAligned reads one array from r into a buffer whose rows (the last
// dimension) each start on an alignment boundary. Rank-1 arrays are a single
// row.
//
// Panics if alignment is not a power of two.
func ReadArrayAligned(r io.Reader, alignment int, opts ...Option) (*AlignedBuffer, DataType, Shape, error) {
	return serialization.ReadAligned(r, alignment, opts...)
}

// ReadHeader reads the preamble of a .npy stream, leaving r positioned at
// the first payload byte.
func ReadHeader(r io.Reader, opts ...Option) (Preamble, error) {
	return serialization.ReadPreamble(r, opts...)
}

// WriteFile writes one array to path, creating or truncating it.
func WriteFile(path string, data []byte, dt DataType, shape Shape, opts ...Option) (int64, error) {
	return serialization.WriteFile(path, data, dt, shape, opts...)
}

// ReadFile reads one array from path.
func ReadFile(path string, opts ...Option) ([]byte, DataType, Shape, error) {
	return serialization.ReadFile(path, opts...)
}

// ReadFileAligned reads one array from path with row-aligned layout.
// Panics if alignment is not a power of two.
func ReadFileAligned(path string, alignment int, opts ...Option) (*AlignedBuffer, DataType, Shape, error) {
	return serialization.ReadFileAligned(path, alignment, opts...)
}

// OpenMmap memory-maps path and parses its header. The payload is served
// from the page cache without copying.
//
// Important: Always call Close() when done (use defer).
func OpenMmap(path string, opts ...Option) (*MmapReader, error) {
	return serialization.NewMmapReader(path, opts...)
}
