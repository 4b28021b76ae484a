// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package npy

import "github.com/born-ml/npy/internal/tensor"

// Element is the set of Go types with a .npy element type.
type Element = tensor.DType

// TypeOf returns the DataType for Go element type T.
func TypeOf[T Element]() DataType {
	return tensor.InferDataType[T]()
}

// AsSlice returns a []T view of a buffer returned by ReadArray or ReadFile.
//
// dt is the element type reported by the read; a mismatch with T is an
// error wrapping ErrTypeMismatch. The view shares memory with data.
func AsSlice[T Element](data []byte, dt DataType) ([]T, error) {
	return tensor.View[T](data, dt)
}

// AsBytes returns the memory of values as bytes, ready for WriteArray.
// No copy is made.
func AsBytes[T Element](values []T) []byte {
	return tensor.Bytes(values)
}

// RowAs returns row i of an aligned buffer as a []T view.
func RowAs[T Element](buf *AlignedBuffer, dt DataType, i int) ([]T, error) {
	return tensor.View[T](buf.Row(i), dt)
}
