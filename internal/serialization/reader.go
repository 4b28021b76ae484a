package serialization

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/npy/internal/mem"
	"github.com/born-ml/npy/internal/tensor"
)

// Preamble is everything in a .npy file before the payload.
type Preamble struct {
	Major     byte   // Format major version (1 or 2)
	Minor     byte   // Format minor version (not validated)
	HeaderLen int    // Length of the header text in bytes
	Header    Header // Decoded header dictionary
}

// DataOffset returns the byte offset at which the payload starts.
func (p Preamble) DataOffset() int64 {
	if p.Major == FormatVersion {
		return int64(PreambleSizeV1 + p.HeaderLen)
	}
	return int64(PreambleSizeV2 + p.HeaderLen)
}

// PayloadSize returns the payload length implied by the header.
func (p Preamble) PayloadSize() (int64, error) {
	size, err := p.Header.Shape.ByteSize(p.Header.DType.Size())
	if err != nil {
		return 0, formatErr(keyShape, ErrMalformedShape, "%v", err)
	}
	return size, nil
}

// readFull reads exactly len(buf) bytes. A short stream is reported as an
// IOError wrapping truncated (plus the byte counts).
func readFull(r io.Reader, buf []byte, op string, truncated error) error {
	n, err := io.ReadFull(r, buf)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ioErr(op, fmt.Errorf("%w: got %d of %d bytes", truncated, n, len(buf)))
	}
	return ioErr(op, err)
}

// ReadPreamble reads and validates the magic string, version, header length
// and header dictionary, leaving r positioned at the first payload byte.
func ReadPreamble(r io.Reader, opts ...Option) (Preamble, error) {
	o := applyOptions(opts)
	return readPreamble(r, &o)
}

func readPreamble(r io.Reader, o *Options) (Preamble, error) {
	var p Preamble

	magic := make([]byte, MagicSize)
	n, err := io.ReadFull(r, magic)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return p, ioErr("read magic", err)
	}
	if err != nil && bytes.HasPrefix([]byte(MagicBytes), magic[:n]) {
		// Too short to hold the magic string.
		return p, &FormatError{
			Field:   "magic",
			Details: fmt.Sprintf("got %d of %d bytes", n, MagicSize),
			Err:     fmt.Errorf("%w: %w", ErrInvalidMagic, io.ErrUnexpectedEOF),
		}
	}
	if string(magic[:n]) != MagicBytes {
		return p, formatErr("magic", ErrInvalidMagic, "got % x, expected % x", magic[:n], MagicBytes)
	}

	var version [1]byte
	if err := readFull(r, version[:], "read version", io.ErrUnexpectedEOF); err != nil {
		return p, err
	}
	p.Major = version[0]
	if p.Major != FormatVersion && p.Major != FormatVersionV2 {
		return p, formatErr("version", ErrUnsupportedVersion, "got %d, expected %d or %d", p.Major, FormatVersion, FormatVersionV2)
	}
	if err := readFull(r, version[:], "read version", io.ErrUnexpectedEOF); err != nil {
		return p, err
	}
	p.Minor = version[0]

	var headerLen uint64
	if p.Major == FormatVersion {
		var field [2]byte
		if err := readFull(r, field[:], "read header length", io.ErrUnexpectedEOF); err != nil {
			return p, err
		}
		headerLen = uint64(binary.LittleEndian.Uint16(field[:]))
	} else {
		var field [4]byte
		if err := readFull(r, field[:], "read header length", io.ErrUnexpectedEOF); err != nil {
			return p, err
		}
		headerLen = uint64(binary.LittleEndian.Uint32(field[:]))
	}
	if headerLen > uint64(o.MaxHeaderSize) { //nolint:gosec // G115: MaxHeaderSize is positive
		return p, formatErr("header", ErrHeaderTooLarge, "%d bytes exceeds limit of %d", headerLen, o.MaxHeaderSize)
	}
	p.HeaderLen = int(headerLen) //nolint:gosec // G115: bounded by MaxHeaderSize

	text := make([]byte, p.HeaderLen)
	if err := readFull(r, text, "read header", io.ErrUnexpectedEOF); err != nil {
		return p, err
	}

	p.Header, err = ParseHeader(string(text), o.ValidationLevel)
	if err != nil {
		return p, err
	}

	if p.DataOffset()%HeaderAlignment != 0 {
		o.Logger.Debug("payload offset is not 64-byte aligned", "offset", p.DataOffset())
	}
	o.Logger.Debug("parsed header",
		"version", fmt.Sprintf("%d.%d", p.Major, p.Minor),
		"descr", p.Header.Descr(),
		"dtype", p.Header.DType.String(),
		"shape", []int(p.Header.Shape),
	)

	return p, nil
}

// Read deserializes one array. The returned buffer is freshly allocated on a
// 64-byte boundary and owned by the caller.
func Read(r io.Reader, opts ...Option) ([]byte, tensor.DataType, tensor.Shape, error) {
	o := applyOptions(opts)

	p, err := readPreamble(r, &o)
	if err != nil {
		return nil, 0, nil, err
	}

	size, err := p.PayloadSize()
	if err != nil {
		return nil, 0, nil, err
	}

	data, err := mem.Alloc(size, mem.Alignment, o.MaxAllocBytes)
	if err != nil {
		return nil, 0, nil, allocErr(size, mem.Alignment, err)
	}

	if err := readFull(r, data, "read payload", ErrTruncated); err != nil {
		return nil, 0, nil, err
	}

	return data, p.Header.DType, p.Header.Shape, nil
}

// ReadFile opens path and reads one array from it. The file is closed before
// ReadFile returns, on every path.
func ReadFile(path string, opts ...Option) ([]byte, tensor.DataType, tensor.Shape, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for array loading
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, nil, ioErr("open file", err)
	}
	defer func() {
		_ = file.Close() // Read-only; close errors carry no data loss
	}()

	return Read(bufio.NewReader(file), opts...)
}
