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

package sgemm

import "github.com/tilemul/tilemul/sme"

// Packed A layout
//
// The multiply kernels consume A's transpose in VL-column panels so
// that the vector feeding each FMOPA is one contiguous load. For an
// MxK matrix A, panel p covers rows p*VL .. p*VL+cols of A (cols <= VL
// on the last panel) and stores, k ascending, the cols elements
// A[p*VL+0..cols)[kk] contiguously:
//
//	dst[panelOffset(p,k) + kk*cols + j] = A[(p*VL+j)*k + kk]
//
// Edge panels are stored at their true width, so the packed form holds
// exactly M*K elements: the numeric content of A-transpose, reordered.
// No zero padding is allocated; kernels mask the missing lanes instead.

// PackedLen returns the length of the packed form of an MxK matrix.
func PackedLen(m, k int) int { return m * k }

// panelOffset returns the offset of panel p in the packed buffer.
// Every panel before the last is full, so the offset is exact.
func panelOffset(p, k int) int { return p * k * sme.VL }

// PackScalar packs A (MxK, row-major) into dst using ordinary indexed
// reads and writes. It is the safe fallback strategy and the
// correctness baseline for PackTiles; both produce bit-identical
// output. dst must hold PackedLen(m, k) elements and be 64-byte
// aligned. On error nothing is written.
func PackScalar(a []float32, m, k int, dst []float32) error {
	if err := validatePackArgs(a, dst, m, k); err != nil {
		return err
	}
	for p := 0; p*sme.VL < m; p++ {
		base := p * sme.VL
		cols := min(sme.VL, m-base)
		panel := dst[panelOffset(p, k):]
		for kk := 0; kk < k; kk++ {
			row := panel[kk*cols : kk*cols+cols]
			for j := range row {
				row[j] = a[(base+j)*k+kk]
			}
		}
	}
	return nil
}

// PackTiles packs A (MxK, row-major) into dst by routing VLxVL blocks
// through an accumulator tile: horizontal slice writes load up to VL
// rows of A, vertical slice reads drain them in transposed order.
// Partial blocks at the M or K edge are handled with predicated loads
// and stores; out-of-range source lanes are never read and
// out-of-range destination lanes are never written.
//
// Output is bit-identical to PackScalar for every input.
func PackTiles(a []float32, m, k int, dst []float32) error {
	if err := validatePackArgs(a, dst, m, k); err != nil {
		return err
	}
	if err := sme.Require(); err != nil {
		return err
	}

	var t sme.Tile
	for p := 0; p*sme.VL < m; p++ {
		base := p * sme.VL
		cols := min(sme.VL, m-base)
		pc := sme.FirstN(cols)
		panel := dst[panelOffset(p, k):]

		for kb := 0; kb < k; kb += sme.VL {
			rows := min(sme.VL, k-kb)
			pk := sme.FirstN(rows)

			t.Zero()
			// Tile row j <- A[base+j, kb:kb+rows]
			for j := 0; j < cols; j++ {
				t.WriteRow(j, sme.MaskLoadVec(pk, a[(base+j)*k+kb:]), pk)
			}
			// Vertical slice kk holds A-transpose row kb+kk across the
			// panel's lanes.
			for kk := 0; kk < rows; kk++ {
				sme.MaskStoreVec(pc, t.ReadCol(kk), panel[(kb+kk)*cols:])
			}
		}
	}
	return nil
}
