package serialization

import (
	"errors"
	"fmt"

	"github.com/born-ml/npy/internal/mem"
)

// Format errors. Each FormatError wraps exactly one of these.
var (
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrMalformedHeader    = errors.New("malformed header")
	ErrFortranOrder       = errors.New("fortran order is not supported")
	ErrBigEndian          = errors.New("big-endian data is not supported")
	ErrUnsupportedDType   = errors.New("unsupported dtype")
	ErrMalformedShape     = errors.New("malformed shape")
)

// I/O and caller errors.
var (
	ErrTruncated   = errors.New("truncated payload")
	ErrShortBuffer = errors.New("buffer is smaller than the array payload")
)

// FormatError reports input that violates the .npy format or uses an
// unsupported feature of it.
type FormatError struct {
	Field   string // Part of the file involved (e.g., "magic", "descr", "shape")
	Details string // What was found versus what was expected
	Err     error  // One of the Err* format sentinels
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("npy: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("npy: %s: %v: %s", e.Field, e.Err, e.Details)
}

// Unwrap returns the sentinel error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// IOError reports a failure of the underlying stream, including premature EOF.
type IOError struct {
	Op  string // Operation that failed (e.g., "read header", "write payload")
	Err error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("npy: failed to %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying stream error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// AllocationError reports a payload buffer that could not be allocated.
type AllocationError struct {
	Size      int64 // Requested size in bytes
	Alignment int   // Requested alignment in bytes
	Err       error
}

// Error implements the error interface.
func (e *AllocationError) Error() string {
	return fmt.Sprintf("npy: could not allocate %d bytes aligned to %d: %v", e.Size, e.Alignment, e.Err)
}

// Unwrap returns the allocator error (matches mem.ErrAllocation).
func (e *AllocationError) Unwrap() error {
	return e.Err
}

func formatErr(field string, sentinel error, format string, args ...any) *FormatError {
	return &FormatError{
		Field:   field,
		Details: fmt.Sprintf(format, args...),
		Err:     sentinel,
	}
}

func ioErr(op string, err error) *IOError {
	return &IOError{Op: op, Err: err}
}

func allocErr(size int64, alignment int, err error) *AllocationError {
	if !errors.Is(err, mem.ErrAllocation) {
		err = fmt.Errorf("%w: %w", mem.ErrAllocation, err)
	}
	return &AllocationError{Size: size, Alignment: alignment, Err: err}
}
