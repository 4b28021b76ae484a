// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package npy

import (
	"context"
	"fmt"

	"github.com/born-ml/npy/blobstore"
	"github.com/born-ml/npy/internal/serialization"
	"golang.org/x/sync/errgroup"
)

// LoadConcurrency bounds the number of blobs LoadAll reads at once.
const LoadConcurrency = 8

// Array is a decoded array held in memory.
type Array struct {
	Data  []byte   // Raw little-endian elements, 64-byte aligned
	DType DataType // Element type
	Shape Shape    // Extents, row-major
}

// Save writes one array to store under name. The blob is committed only if
// the whole array was written; on failure it is aborted.
func Save(ctx context.Context, store blobstore.BlobStore, name string, data []byte, dt DataType, shape Shape, opts ...Option) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return &IOError{Op: "create " + name, Err: err}
	}

	if _, err := serialization.Write(w, data, dt, shape, opts...); err != nil {
		_ = w.Abort()
		return fmt.Errorf("failed to save %s: %w", name, err)
	}

	if err := w.Close(); err != nil {
		return &IOError{Op: "commit " + name, Err: err}
	}
	return nil
}

// Load reads one array stored under name.
// A missing blob is an *IOError wrapping blobstore.ErrNotFound.
func Load(ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) (*Array, error) {
	r, err := store.Open(ctx, name)
	if err != nil {
		return nil, &IOError{Op: "open " + name, Err: err}
	}
	defer func() {
		_ = r.Close()
	}()

	data, dt, shape, err := serialization.Read(r, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}

	return &Array{Data: data, DType: dt, Shape: shape}, nil
}

// LoadAll loads the named arrays concurrently and returns them in the order
// of names. The first failure cancels the remaining loads.
func LoadAll(ctx context.Context, store blobstore.BlobStore, names []string, opts ...Option) ([]*Array, error) {
	arrays := make([]*Array, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(LoadConcurrency)

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			arr, err := Load(ctx, store, name, opts...)
			if err != nil {
				return err
			}
			arrays[i] = arr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return arrays, nil
}
