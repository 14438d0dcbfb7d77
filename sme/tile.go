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

// NumTiles is the number of independent float32 ZA tiles (za0.s-za3.s).
const NumTiles = 4

// Tile is one VL x VL float32 accumulator tile.
//
// A tile holds exclusive hardware state: it is not addressable as
// ordinary memory and exposes no raw storage. The lifecycle is always
// Zero, a run of FMOPA accumulations, then a predicated drain via
// StoreRow. State must never be carried from one output block into
// the next; callers re-Zero before reuse.
type Tile struct {
	lanes [VL][VL]float32
}

// Zero clears every lane of the tile (the ZERO {ZA} analog).
func (t *Tile) Zero() {
	for i := range t.lanes {
		for j := range t.lanes[i] {
			t.lanes[i][j] = 0
		}
	}
}

// FMOPA performs a predicated outer-product-accumulate:
//
//	t[i][j] += a[i] * b[j]   for every (i, j) with pa[i] && pb[j]
//
// One call is the rank-1 update at the heart of tiled matrix multiply;
// lanes suppressed by either predicate are left untouched.
func (t *Tile) FMOPA(a, b Vec, pa, pb Pred) {
	for i := 0; i < VL; i++ {
		if !pa.bits[i] {
			continue
		}
		ai := a.lanes[i]
		row := &t.lanes[i]
		for j := 0; j < VL; j++ {
			if pb.bits[j] {
				row[j] += ai * b.lanes[j]
			}
		}
	}
}

// WriteRow writes v into horizontal slice r of the tile (MOVA
// vector-to-tile). Inactive lanes keep their previous value.
func (t *Tile) WriteRow(r int, v Vec, p Pred) {
	for j := 0; j < VL; j++ {
		if p.bits[j] {
			t.lanes[r][j] = v.lanes[j]
		}
	}
}

// ReadRow returns horizontal slice r of the tile (MOVA tile-to-vector).
func (t *Tile) ReadRow(r int) Vec {
	return Vec{lanes: t.lanes[r]}
}

// ReadCol returns vertical slice c of the tile. Reading vertically
// after writing horizontally is the in-tile transpose primitive.
func (t *Tile) ReadCol(c int) Vec {
	var out Vec
	for i := 0; i < VL; i++ {
		out.lanes[i] = t.lanes[i][c]
	}
	return out
}

// StoreRow drains horizontal slice r into dst under predicate p
// (the ST1W analog). Inactive destination lanes are never written.
func (t *Tile) StoreRow(r int, dst []float32, p Pred) {
	for j := 0; j < VL; j++ {
		if p.bits[j] {
			dst[j] = t.lanes[r][j]
		}
	}
}
