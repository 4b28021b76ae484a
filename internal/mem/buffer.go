package mem

import "fmt"

// AlignedBuffer is a byte block partitioned into Rows rows of Stride bytes.
// Each row starts on an Alignment boundary; only the first RowBytes bytes of a
// row carry data, the remainder is padding with unspecified content.
//
// The buffer is owned by whoever holds it. Release drops the memory; the
// buffer must not be used afterwards.
type AlignedBuffer struct {
	data      []byte
	stride    int
	rows      int
	rowBytes  int
	alignment int
}

// NewAlignedBuffer allocates a buffer of rows rows, each able to hold rowBytes
// bytes, with row starts aligned to alignment. limit caps the total size in
// bytes (zero means no limit).
//
// Panics if alignment is not a power of two.
func NewAlignedBuffer(rows, rowBytes, alignment int, limit int64) (*AlignedBuffer, error) {
	if !IsPowerOfTwo(alignment) {
		panic(fmt.Sprintf("mem: alignment %d is not a power of two", alignment))
	}
	if rows < 0 || rowBytes < 0 {
		return nil, fmt.Errorf("%w: negative layout rows=%d row_bytes=%d", ErrAllocation, rows, rowBytes)
	}
	if rowBytes > int(^uint(0)>>1)-alignment {
		return nil, fmt.Errorf("%w: row of %d bytes is not addressable", ErrAllocation, rowBytes)
	}

	stride := AlignUp(rowBytes, alignment)
	if rows > 0 && stride > 0 && rows > int(^uint(0)>>1)/stride {
		return nil, fmt.Errorf("%w: %d rows x %d bytes overflows", ErrAllocation, rows, stride)
	}

	data, err := Alloc(int64(rows)*int64(stride), alignment, limit)
	if err != nil {
		return nil, err
	}

	return &AlignedBuffer{
		data:      data,
		stride:    stride,
		rows:      rows,
		rowBytes:  rowBytes,
		alignment: alignment,
	}, nil
}

// Bytes returns the whole block, padding included.
func (b *AlignedBuffer) Bytes() []byte {
	return b.data
}

// Row returns the data bytes of row i (padding excluded).
func (b *AlignedBuffer) Row(i int) []byte {
	if i < 0 || i >= b.rows {
		panic(fmt.Sprintf("mem: row %d out of range [0, %d)", i, b.rows))
	}
	start := i * b.stride
	return b.data[start : start+b.rowBytes : start+b.stride]
}

// Len returns the total size in bytes (Stride * Rows).
func (b *AlignedBuffer) Len() int {
	return len(b.data)
}

// Stride returns the distance in bytes between consecutive row starts.
func (b *AlignedBuffer) Stride() int {
	return b.stride
}

// Rows returns the number of rows.
func (b *AlignedBuffer) Rows() int {
	return b.rows
}

// RowBytes returns the number of data bytes per row.
func (b *AlignedBuffer) RowBytes() int {
	return b.rowBytes
}

// Alignment returns the row alignment in bytes.
func (b *AlignedBuffer) Alignment() int {
	return b.alignment
}

// Released reports whether Release has been called.
func (b *AlignedBuffer) Released() bool {
	return b.data == nil
}

// Release drops the buffer's memory. Calling Release more than once is a no-op.
func (b *AlignedBuffer) Release() {
	b.data = nil
	b.rows = 0
}
