package serialization

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/npy/internal/mem"
	"github.com/born-ml/npy/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmapReaderBasic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapped.npy")
	payload := sequentialBytes(6 * 4)

	_, err := WriteFile(path, payload, tensor.Float32, tensor.Shape{2, 3})
	require.NoError(t, err)

	reader, err := NewMmapReader(path)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, reader.Close())
	}()

	h := reader.Header()
	assert.Equal(t, tensor.Float32, h.DType)
	assert.Equal(t, tensor.Shape{2, 3}, h.Shape)
	assert.Equal(t, int64(64), reader.Preamble().DataOffset())

	data, err := reader.Data()
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	cp, err := reader.DataCopy()
	require.NoError(t, err)
	assert.Equal(t, payload, cp)
	assert.True(t, mem.IsAligned(cp, mem.Alignment))

	var out bytes.Buffer
	n, err := reader.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), n)
	assert.Equal(t, payload, out.Bytes())
}

func TestMmapReaderClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "closed.npy")
	_, err := WriteFile(path, []byte{1, 2, 3}, tensor.Uint8, tensor.Shape{3})
	require.NoError(t, err)

	reader, err := NewMmapReader(path)
	require.NoError(t, err)

	require.NoError(t, reader.Close())
	require.NoError(t, reader.Close())

	_, err = reader.Data()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = reader.DataCopy()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMmapReaderTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.npy")
	_, err := WriteFile(path, sequentialBytes(80), tensor.Int64, tensor.Shape{10})
	require.NoError(t, err)

	full, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, full[:len(full)-1], 0o600))

	_, err = NewMmapReader(path)
	var ioe *IOError
	require.True(t, errors.As(err, &ioe), "got %v", err)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestMmapReaderErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewMmapReader(filepath.Join(dir, "missing.npy"))
	var ioe *IOError
	require.True(t, errors.As(err, &ioe))
	assert.Equal(t, "open file", ioe.Op)

	empty := filepath.Join(dir, "empty.npy")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = NewMmapReader(empty)
	var fe *FormatError
	assert.True(t, errors.As(err, &fe), "got %v", err)
	assert.ErrorIs(t, err, ErrInvalidMagic)

	bogus := filepath.Join(dir, "bogus.npy")
	require.NoError(t, os.WriteFile(bogus, []byte("PK\x03\x04 not numpy at all"), 0o600))
	_, err = NewMmapReader(bogus)
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestMmapReaderHonoursOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.npy")
	file := numpyFile(t, 1, "{'descr':'<u2','fortran_order':False,'shape':(2,),'note':'x'}", []byte{1, 0, 2, 0})
	require.NoError(t, os.WriteFile(path, file, 0o600))

	_, err := NewMmapReader(path)
	assert.ErrorIs(t, err, ErrMalformedHeader)

	reader, err := NewMmapReader(path, WithValidationLevel(ValidationNormal))
	require.NoError(t, err)
	defer reader.Close()

	data, err := reader.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 2, 0}, data)
}
