package serialization

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/npy/internal/mem"
	"github.com/born-ml/npy/internal/tensor"
)

// ReadAligned deserializes one array into a row-padded buffer.
//
// Every row (the last dimension) starts at a multiple of alignment bytes from
// the buffer's aligned base; the stride is the row's byte count rounded up to
// alignment. Rank-1 arrays are a single row. Padding bytes are not zeroed.
//
// alignment must be a power of two; anything else is a programming error and
// panics before any input is consumed.
func ReadAligned(r io.Reader, alignment int, opts ...Option) (*mem.AlignedBuffer, tensor.DataType, tensor.Shape, error) {
	if !mem.IsPowerOfTwo(alignment) {
		panic(fmt.Sprintf("serialization: alignment %d is not a power of two", alignment))
	}

	o := applyOptions(opts)

	p, err := readPreamble(r, &o)
	if err != nil {
		return nil, 0, nil, err
	}

	// Rejects shapes whose total size overflows before sizing rows.
	if _, err := p.PayloadSize(); err != nil {
		return nil, 0, nil, err
	}

	shape := p.Header.Shape
	rowBytes := shape.Last() * p.Header.DType.Size()
	rows := shape.Rows()

	buf, err := mem.NewAlignedBuffer(rows, rowBytes, alignment, o.MaxAllocBytes)
	if err != nil {
		stride := mem.AlignUp(rowBytes, alignment)
		return nil, 0, nil, allocErr(int64(rows)*int64(stride), alignment, err)
	}

	o.Logger.Debug("aligned layout",
		"rows", rows,
		"row_bytes", rowBytes,
		"stride", buf.Stride(),
		"alignment", alignment,
	)

	// Zero-width rows carry no bytes; rows comes from the header and may be huge.
	if rowBytes == 0 {
		return buf, p.Header.DType, shape.Clone(), nil
	}

	for i := 0; i < rows; i++ {
		if err := readFull(r, buf.Row(i), "read payload", ErrTruncated); err != nil {
			buf.Release()
			return nil, 0, nil, err
		}
	}

	return buf, p.Header.DType, shape.Clone(), nil
}

// ReadFileAligned opens path and reads one array into a row-padded buffer.
// The file is closed before ReadFileAligned returns, on every path.
func ReadFileAligned(path string, alignment int, opts ...Option) (*mem.AlignedBuffer, tensor.DataType, tensor.Shape, error) {
	if !mem.IsPowerOfTwo(alignment) {
		panic(fmt.Sprintf("serialization: alignment %d is not a power of two", alignment))
	}

	//nolint:gosec // G304: File path comes from user input, which is expected for array loading
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, nil, ioErr("open file", err)
	}
	defer func() {
		_ = file.Close()
	}()

	return ReadAligned(bufio.NewReader(file), alignment, opts...)
}
