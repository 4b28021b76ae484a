package serialization

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/npy/internal/tensor"
)

// Write serializes one array in .npy version 1.0 format.
//
// data must hold at least the payload size implied by dt and shape; exactly
// that many bytes are written. Returns the total number of bytes written.
// On a stream failure the destination is left in an unspecified state.
func Write(w io.Writer, data []byte, dt tensor.DataType, shape tensor.Shape, opts ...Option) (int64, error) {
	o := applyOptions(opts)

	header, payload, err := BuildHeader(dt, shape)
	if err != nil {
		return 0, err
	}
	if len(header) > MaxHeaderLenV1 {
		return 0, formatErr("header", ErrHeaderTooLarge, "%d bytes does not fit a version 1 header", len(header))
	}
	if int64(len(data)) < payload {
		return 0, fmt.Errorf("%w: have %d bytes, need %d for %s%v", ErrShortBuffer, len(data), payload, dt, []int(shape))
	}

	preamble := make([]byte, 0, PreambleSizeV1+len(header))
	preamble = append(preamble, MagicBytes...)
	preamble = append(preamble, FormatVersion, 0)
	preamble = binary.LittleEndian.AppendUint16(preamble, uint16(len(header))) //nolint:gosec // G115: checked against MaxHeaderLenV1
	preamble = append(preamble, header...)

	var written int64

	n, err := w.Write(preamble)
	written += int64(n)
	if err != nil {
		return written, ioErr("write header", err)
	}

	n, err = w.Write(data[:payload])
	written += int64(n)
	if err != nil {
		return written, ioErr("write payload", err)
	}

	o.Logger.Debug("wrote array",
		"descr", descrOf(dt),
		"shape", []int(shape),
		"header_len", len(header),
		"bytes", written,
	)

	return written, nil
}

// WriteFile creates (or truncates) path and writes one array to it.
// The file is closed before WriteFile returns, on every path.
func WriteFile(path string, data []byte, dt tensor.DataType, shape tensor.Shape, opts ...Option) (n int64, err error) {
	o := applyOptions(opts)

	//nolint:gosec // G304: File path comes from user input, which is expected for array saving
	file, err := os.Create(path)
	if err != nil {
		return 0, ioErr("create file", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = ioErr("close file", closeErr)
		}
	}()

	bw := bufio.NewWriter(file)
	n, err = Write(bw, data, dt, shape, opts...)
	if err != nil {
		o.Logger.Error("failed to write array", "path", path, "error", err)
		return n, err
	}
	if err := bw.Flush(); err != nil {
		return n, ioErr("write payload", err)
	}

	o.Logger.Info("wrote array file",
		"path", path,
		"bytes", n,
		"elements", shape.NumElements(),
		"dtype", dt.String(),
	)

	return n, nil
}
