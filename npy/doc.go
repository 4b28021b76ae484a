// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package npy reads and writes single arrays in the NumPy .npy format.
//
// An array is described by three things: its element type (DataType), its
// extents (Shape, row-major) and its raw little-endian bytes. Writers always
// produce format version 1.0 files whose preamble is padded to 64 bytes, so
// the payload of every file starts on a 64-byte boundary. Readers accept
// versions 1 and 2.
//
// Supported element types are the signed and unsigned integers of 1, 2, 4 and
// 8 bytes plus float32 and float64. Big-endian payloads, Fortran-ordered
// arrays and structured dtypes are rejected with a *FormatError.
//
// # Errors
//
// Failures caused by the input stream or the allocator are one of three
// types, matched with errors.As:
//   - *FormatError: the input is not a supported .npy file; wraps one of the
//     Err* format sentinels
//   - *IOError: the underlying stream failed or ended early
//   - *AllocationError: the payload buffer could not be allocated
//
// Caller mistakes are plain errors wrapping a sentinel, matched with
// errors.Is: ErrShortBuffer from the writers when data is smaller than the
// shape requires, and ErrTypeMismatch from AsSlice and RowAs.
//
// # Example
//
//	values := []float32{1, 2, 3, 4, 5, 6}
//	if _, err := npy.WriteFile("x.npy", npy.AsBytes(values), npy.Float32, npy.Shape{2, 3}); err != nil {
//	    return err
//	}
//
//	data, dtype, shape, err := npy.ReadFile("x.npy")
//	if err != nil {
//	    return err
//	}
//	floats, err := npy.AsSlice[float32](data, dtype)
//
//	// Rows padded to 32 bytes for SIMD kernels.
//	buf, dtype, shape, err := npy.ReadFileAligned("x.npy", npy.DefaultAlignment)
//	defer buf.Release()
package npy
