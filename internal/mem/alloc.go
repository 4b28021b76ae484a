package mem

import (
	"errors"
	"fmt"
	"math"
	"unsafe"
)

// Alignment is the default byte alignment (64 bytes, AVX-512 friendly).
const Alignment = 64

// ErrAllocation is returned when an aligned allocation cannot be satisfied.
var ErrAllocation = errors.New("aligned allocation failed")

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// AlignUp rounds n up to the nearest multiple of alignment.
// alignment must be a power of two.
func AlignUp(n, alignment int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}

// Alloc allocates a byte slice of the given size whose first byte is aligned
// to alignment. limit caps the size in bytes; zero means no limit.
//
// Allocation never panics on oversized requests: sizes that overflow or exceed
// limit fail with ErrAllocation.
func Alloc(size int64, alignment int, limit int64) ([]byte, error) {
	if !IsPowerOfTwo(alignment) {
		panic(fmt.Sprintf("mem: alignment %d is not a power of two", alignment))
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrAllocation, size)
	}
	if limit > 0 && size > limit {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrAllocation, size, limit)
	}
	if size > math.MaxInt-int64(alignment) {
		return nil, fmt.Errorf("%w: %d bytes is not addressable", ErrAllocation, size)
	}
	if size == 0 {
		return []byte{}, nil
	}

	// Over-allocate so the start can be shifted up to alignment-1 bytes.
	buf := make([]byte, int(size)+alignment)

	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // unsafe is required for memory alignment
	offset := int((uintptr(alignment) - addr&uintptr(alignment-1)) & uintptr(alignment-1))

	return buf[offset : offset+int(size) : offset+int(size)], nil
}

// AllocAligned allocates size bytes on the default 64-byte boundary.
// It returns nil for non-positive sizes.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}
	buf, err := Alloc(int64(size), Alignment, 0)
	if err != nil {
		return nil
	}
	return buf
}

// IsAligned reports whether the first byte of buf is aligned to alignment.
// Empty slices are trivially aligned.
func IsAligned(buf []byte, alignment int) bool {
	if len(buf) == 0 {
		return true
	}
	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // unsafe is required for memory alignment
	return addr&uintptr(alignment-1) == 0
}
