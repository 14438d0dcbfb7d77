// Copyright 2025 tilemul Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sme

// Streaming vector configuration. The model is fixed at SVL = 512 bits,
// matching Apple M4: 16 float32 lanes per Z register, 16x16 ZA tiles.
const (
	// SVLBits is the streaming vector length in bits.
	SVLBits = 512

	// VL is the number of float32 lanes in one streaming vector.
	VL = SVLBits / 32
)

// Vec is one streaming vector register's worth of float32 lanes.
//
// Vec values are plain data and may be freely copied. Use LoadVec,
// MaskLoadVec, Splat, or ZeroVec to create them.
type Vec struct {
	lanes [VL]float32
}

// Pred is a per-lane predicate. Inactive lanes suppress both the memory
// access and the arithmetic of any operation they govern.
//
// Use AllLanes or FirstN to create one.
type Pred struct {
	bits [VL]bool
}

// AllLanes returns a predicate with every lane active.
func AllLanes() Pred {
	var p Pred
	for i := range p.bits {
		p.bits[i] = true
	}
	return p
}

// FirstN returns a predicate with the first count lanes active.
// count is clamped to [0, VL]. This is the whilelt analog used for
// tail handling when a dimension is not a multiple of VL.
func FirstN(count int) Pred {
	if count < 0 {
		count = 0
	}
	if count > VL {
		count = VL
	}
	var p Pred
	for i := 0; i < count; i++ {
		p.bits[i] = true
	}
	return p
}

// Active reports whether lane i is active.
func (p Pred) Active(i int) bool { return p.bits[i] }

// Count returns the number of active lanes.
func (p Pred) Count() int {
	n := 0
	for _, b := range p.bits {
		if b {
			n++
		}
	}
	return n
}

// AllTrue reports whether every lane is active.
func (p Pred) AllTrue() bool {
	for _, b := range p.bits {
		if !b {
			return false
		}
	}
	return true
}

// ZeroVec returns a vector with all lanes zero.
func ZeroVec() Vec { return Vec{} }

// Splat returns a vector with all lanes set to v.
func Splat(v float32) Vec {
	var out Vec
	for i := range out.lanes {
		out.lanes[i] = v
	}
	return out
}

// LoadVec loads up to VL contiguous lanes from src. If src is shorter
// than VL, the remaining lanes are zero.
func LoadVec(src []float32) Vec {
	var out Vec
	n := min(len(src), VL)
	copy(out.lanes[:n], src[:n])
	return out
}

// MaskLoadVec loads src lanes where p is active; inactive lanes are
// zero. Memory at inactive lane positions is never read, so src only
// needs to cover the active lanes.
func MaskLoadVec(p Pred, src []float32) Vec {
	var out Vec
	for i := range out.lanes {
		if p.bits[i] {
			out.lanes[i] = src[i]
		}
	}
	return out
}

// StoreVec writes up to VL lanes to dst, truncating to len(dst).
func StoreVec(v Vec, dst []float32) {
	n := min(len(dst), VL)
	copy(dst[:n], v.lanes[:n])
}

// MaskStoreVec writes v's active lanes to dst. Inactive destination
// lanes are left untouched and their memory is never written.
func MaskStoreVec(p Pred, v Vec, dst []float32) {
	for i := range v.lanes {
		if p.bits[i] {
			dst[i] = v.lanes[i]
		}
	}
}

// Lane returns lane i. Primarily for tests.
func (v Vec) Lane(i int) float32 { return v.lanes[i] }
