package sme

import "unsafe"

// This file provides aligned allocation helpers. Tile loads and stores
// assume 64-byte aligned operands (one full float32 vector per cache
// line), and the kernels refuse buffers that don't meet it.

// Alignment is the required byte alignment for matrix buffers.
const Alignment = 64

// NewAlignedFloat32 returns a zeroed slice of n float32 values whose
// backing array starts on a 64-byte boundary. The returned slice has
// capacity n, so append cannot silently grow past the aligned region.
func NewAlignedFloat32(n int) []float32 {
	if n <= 0 {
		return nil
	}
	buf := make([]float32, n+Alignment/4)
	off := 0
	for !Aligned64(buf[off:]) {
		off++
	}
	return buf[off : off+n : off+n]
}

// Aligned64 reports whether s starts on a 64-byte boundary.
// Empty slices are trivially aligned.
func Aligned64(s []float32) bool {
	if len(s) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(s)))%Alignment == 0
}
