// Package serialization implements the NumPy .npy array format.
//
// The .npy format stores a single array:
//
//	Format Structure:
//	  [6 bytes: Magic "\x93NUMPY"]
//	  [1 byte: Major version (1 or 2)]
//	  [1 byte: Minor version]
//	  [2 bytes (v1) or 4 bytes (v2): Header length (LE)]
//	  [Header: Python dict literal, space padded, '\n' terminated]
//	  [Payload: raw little-endian elements, row-major]
//
// The preamble (everything before the payload) is padded to a multiple of 64
// bytes. Writers always produce version 1.0 files.
//
// Supported element types are the signed and unsigned integers of 1, 2, 4 and
// 8 bytes and 4 and 8 byte floats. Big-endian data, Fortran-ordered arrays and
// structured dtypes are rejected with a *FormatError.
//
// Example usage:
//
//	// Save an array
//	if _, err := serialization.WriteFile("x.npy", data, tensor.Float32, tensor.Shape{3, 4}); err != nil {
//	    return err
//	}
//
//	// Load it back
//	data, dtype, shape, err := serialization.ReadFile("x.npy")
//
//	// Load with every row on a 32-byte boundary
//	buf, dtype, shape, err := serialization.ReadFileAligned("x.npy", 32)
package serialization
