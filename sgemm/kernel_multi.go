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

// MulMultiTile computes C = A*B using all four accumulator tiles.
//
// The numerical contract is identical to MulSingleTile (and the output
// is bit-identical: each block sees the same operations in the same
// order). The difference is scheduling: four adjacent column blocks of
// C share one row range and one tile each, so every A vector loaded in
// the K loop feeds four FMOPA issues instead of one. That amortizes
// the load per arithmetic op and is where the utilization win over the
// single-tile kernel comes from.
//
// When fewer than four column blocks remain at the right edge of C,
// only that many tiles are active; a tile is never assigned columns
// outside the output.
func MulMultiTile(ap, b, c []float32, m, n, k int) error {
	if err := validateMulArgs(ap, b, c, m, n, k); err != nil {
		return err
	}
	mulMultiTile(ap, b, c, m, n, k)
	return nil
}

func mulMultiTile(ap, b, c []float32, m, n, k int) {
	var tiles [sme.NumTiles]sme.Tile
	var pn [sme.NumTiles]sme.Pred
	nBlocks := (n + sme.VL - 1) / sme.VL

	for p := 0; p*sme.VL < m; p++ {
		i0 := p * sme.VL
		mr := min(sme.VL, m-i0)
		pm := sme.FirstN(mr)
		panel := ap[panelOffset(p, k):]

		for q0 := 0; q0 < nBlocks; q0 += sme.NumTiles {
			active := min(sme.NumTiles, nBlocks-q0)
			for ti := 0; ti < active; ti++ {
				tiles[ti].Zero()
				pn[ti] = sme.FirstN(min(sme.VL, n-(q0+ti)*sme.VL))
			}

			for kb := 0; kb < k; kb += sme.VL {
				kl := min(sme.VL, k-kb)
				for kk := 0; kk < kl; kk++ {
					// One A load shared by all active tiles.
					av := sme.MaskLoadVec(pm, panel[(kb+kk)*mr:])
					for ti := 0; ti < active; ti++ {
						j0 := (q0 + ti) * sme.VL
						bv := sme.MaskLoadVec(pn[ti], b[(kb+kk)*n+j0:])
						tiles[ti].FMOPA(av, bv, pm, pn[ti])
					}
				}
			}

			for ti := 0; ti < active; ti++ {
				j0 := (q0 + ti) * sme.VL
				for r := 0; r < mr; r++ {
					tiles[ti].StoreRow(r, c[(i0+r)*n+j0:], pn[ti])
				}
			}
		}
	}
}
