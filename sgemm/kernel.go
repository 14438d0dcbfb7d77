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

// MulSingleTile computes C = A*B using one accumulator tile.
//
// ap is A packed by PackScalar or PackTiles, b is KxN row-major, c is
// MxN row-major. Output blocks are visited in row-major block order;
// per block the tile is zeroed, accumulated over k ascending, then
// drained with predicated stores. Blocks at the M or N edge run with
// narrowed predicates, so every valid C element is written exactly
// once and nothing outside C is touched.
//
// Validation failures (bad dimensions, undersized or unaligned
// buffers, engine disabled) return before any tile op; there are no
// partial results.
func MulSingleTile(ap, b, c []float32, m, n, k int) error {
	if err := validateMulArgs(ap, b, c, m, n, k); err != nil {
		return err
	}
	mulSingleTile(ap, b, c, m, n, k)
	return nil
}

func mulSingleTile(ap, b, c []float32, m, n, k int) {
	var t sme.Tile
	for p := 0; p*sme.VL < m; p++ {
		i0 := p * sme.VL
		mr := min(sme.VL, m-i0)
		pm := sme.FirstN(mr)
		panel := ap[panelOffset(p, k):]

		for q := 0; q*sme.VL < n; q++ {
			j0 := q * sme.VL
			nc := min(sme.VL, n-j0)
			pn := sme.FirstN(nc)

			t.Zero()
			// K loop in VL-sized steps matching packed-panel blocks;
			// one FMOPA per k within the step. The K tail just
			// shortens the inner run, no mask needed.
			for kb := 0; kb < k; kb += sme.VL {
				kl := min(sme.VL, k-kb)
				for kk := 0; kk < kl; kk++ {
					av := sme.MaskLoadVec(pm, panel[(kb+kk)*mr:])
					bv := sme.MaskLoadVec(pn, b[(kb+kk)*n+j0:])
					t.FMOPA(av, bv, pm, pn)
				}
			}

			for r := 0; r < mr; r++ {
				t.StoreRow(r, c[(i0+r)*n+j0:], pn)
			}
		}
	}
}
