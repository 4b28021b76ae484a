// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error that satisfies errors.Is(err, ErrNotFound).
// It maps to os.ErrNotExist so filesystem errors match without translation.
var ErrNotFound = os.ErrNotExist

// ErrInvalidName is returned for a blob name that would resolve outside the
// store, such as "../x" or an absolute path.
var ErrInvalidName = errors.New("invalid blob name")

// BlobStore stores named, immutable blobs.
// Implementations must be safe for concurrent use.
type BlobStore interface {
	// Open opens a blob for sequential reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Create starts a new blob. The blob becomes visible under name only
	// after Close succeeds.
	Create(ctx context.Context, name string) (WritableBlob, error)
}

// WritableBlob is a blob being written.
type WritableBlob interface {
	io.WriteCloser
	// Abort discards everything written so far. Calling Abort after Close,
	// or more than once, is a no-op.
	Abort() error
}
