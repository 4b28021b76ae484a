// Package mem provides aligned memory allocation for array payloads.
//
// # Aligned Allocation
//
// Alloc returns byte slices whose first element sits on a power-of-two
// boundary, so that typed views (float32, uint64, ...) over array payloads are
// always naturally aligned. AlignedBuffer adds a row layout on top: every row
// of a 2-D view starts at a multiple of the alignment, which lets vectorized
// code load rows without peeling.
package mem
