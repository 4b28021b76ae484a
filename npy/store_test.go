// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package npy_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/born-ml/npy/blobstore"
	"github.com/born-ml/npy/npy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	stores := map[string]blobstore.BlobStore{
		"memory": blobstore.NewMemoryStore(),
		"local":  blobstore.NewLocalStore(t.TempDir()),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			values := []int32{1, -2, 3, -4, 5, -6}

			err := npy.Save(ctx, store, "layers/0.npy", npy.AsBytes(values), npy.Int32, npy.Shape{2, 3})
			require.NoError(t, err)

			arr, err := npy.Load(ctx, store, "layers/0.npy")
			require.NoError(t, err)
			assert.Equal(t, npy.Int32, arr.DType)
			assert.Equal(t, npy.Shape{2, 3}, arr.Shape)

			got, err := npy.AsSlice[int32](arr.Data, arr.DType)
			require.NoError(t, err)
			assert.Equal(t, values, got)
		})
	}
}

func TestSaveShortBufferAborts(t *testing.T) {
	store := blobstore.NewMemoryStore()

	err := npy.Save(context.Background(), store, "bad.npy", make([]byte, 3), npy.Float32, npy.Shape{4})
	assert.ErrorIs(t, err, npy.ErrShortBuffer)
	assert.Empty(t, store.List(""), "aborted blob must not be committed")
}

func TestLoadMissing(t *testing.T) {
	_, err := npy.Load(context.Background(), blobstore.NewMemoryStore(), "nope.npy")

	var ioe *npy.IOError
	require.True(t, errors.As(err, &ioe))
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestLoadCorrupt(t *testing.T) {
	store := blobstore.NewMemoryStore()
	store.Put("corrupt.npy", []byte("\x93NUMPY\x07\x00"))

	_, err := npy.Load(context.Background(), store, "corrupt.npy")
	assert.ErrorIs(t, err, npy.ErrUnsupportedVersion)
	assert.Contains(t, err.Error(), "corrupt.npy")
}

func TestLoadAll(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	names := make([]string, 20)
	for i := range names {
		names[i] = fmt.Sprintf("shard-%02d.npy", i)
		values := []uint64{uint64(i), uint64(i * i)}
		require.NoError(t, npy.Save(ctx, store, names[i], npy.AsBytes(values), npy.Uint64, npy.Shape{2}))
	}

	arrays, err := npy.LoadAll(ctx, store, names)
	require.NoError(t, err)
	require.Len(t, arrays, len(names))

	for i, arr := range arrays {
		got, err := npy.AsSlice[uint64](arr.Data, arr.DType)
		require.NoError(t, err)
		assert.Equal(t, []uint64{uint64(i), uint64(i * i)}, got, names[i])
	}
}

func TestLoadAllFailure(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, npy.Save(ctx, store, "a.npy", []byte{1}, npy.Uint8, npy.Shape{1}))

	_, err := npy.LoadAll(ctx, store, []string{"a.npy", "missing.npy"})
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	arrays, err := npy.LoadAll(ctx, store, nil)
	require.NoError(t, err)
	assert.Empty(t, arrays)
}
