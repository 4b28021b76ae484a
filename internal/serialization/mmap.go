package serialization

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/born-ml/npy/internal/mem"
)

// ErrClosed is returned by MmapReader methods after Close.
var ErrClosed = errors.New("reader is closed")

// MmapReader provides memory-mapped access to a .npy file.
// Only the preamble is parsed when opening; the payload is served straight
// from the OS page cache.
type MmapReader struct {
	file     *os.File
	data     []byte // mmap'd region (read-only)
	size     int64
	preamble Preamble
	payload  int64
	closed   bool
}

// NewMmapReader maps a .npy file and parses its preamble.
//
// Important: Always call Close() when done to unmap the file (use defer).
func NewMmapReader(path string, opts ...Option) (*MmapReader, error) {
	o := applyOptions(opts)

	//nolint:gosec // G304: File path comes from user input, which is expected for array loading
	file, err := os.Open(path)
	if err != nil {
		return nil, ioErr("open file", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, ioErr("stat file", err)
	}
	if stat.Size() > math.MaxInt {
		_ = file.Close()
		return nil, ioErr("map file", fmt.Errorf("file of %d bytes is not addressable", stat.Size()))
	}

	r := &MmapReader{
		file: file,
		size: stat.Size(),
	}

	// mmap(2) rejects zero-length mappings; an empty file fails in parsing.
	if r.size > 0 {
		r.data, err = mmapFile(file, r.size)
		if err != nil {
			_ = file.Close()
			return nil, ioErr("map file", err)
		}
	}

	if err := r.parse(&o); err != nil {
		_ = r.Close()
		return nil, err
	}

	return r, nil
}

func (r *MmapReader) parse(o *Options) error {
	p, err := readPreamble(bytes.NewReader(r.data), o)
	if err != nil {
		return err
	}

	payload, err := p.PayloadSize()
	if err != nil {
		return err
	}

	if end := p.DataOffset() + payload; end > r.size {
		return ioErr("map payload", fmt.Errorf("%w: payload ends at %d, file has %d bytes", ErrTruncated, end, r.size))
	}

	r.preamble = p
	r.payload = payload
	return nil
}

// Close unmaps and closes the file. Calling Close more than once is a no-op.
func (r *MmapReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var err error
	if r.data != nil {
		err = munmapFile(r.data)
		r.data = nil
	}

	if closeErr := r.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	return err
}

// Header returns the decoded header.
func (r *MmapReader) Header() Header {
	return r.preamble.Header
}

// Preamble returns version and layout information about the file.
func (r *MmapReader) Preamble() Preamble {
	return r.preamble
}

// Data returns a zero-copy slice of the payload.
// The returned slice is valid only while the reader is open.
// WARNING: The data is read-only - writing to it will cause undefined behavior.
//
// For cases where you need to modify the data, use DataCopy instead.
func (r *MmapReader) Data() ([]byte, error) {
	if r.closed {
		return nil, ErrClosed
	}
	start := r.preamble.DataOffset()
	return r.data[start : start+r.payload : start+r.payload], nil
}

// DataCopy returns a 64-byte aligned copy of the payload owned by the caller.
// An empty payload yields a nil slice.
func (r *MmapReader) DataCopy() ([]byte, error) {
	data, err := r.Data()
	if err != nil {
		return nil, err
	}

	// The mapping already fits in memory, so the copy cannot overflow.
	result := mem.AllocAligned(len(data))
	copy(result, data)
	return result, nil
}

// WriteTo streams the payload to w without copying it through the heap.
func (r *MmapReader) WriteTo(w io.Writer) (int64, error) {
	data, err := r.Data()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}
