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

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/tilemul/tilemul/sme"
)

// packPool recycles aligned pack buffers across Mul calls.
var packPool = sync.Pool{
	New: func() any {
		return []float32(nil)
	},
}

// Mul computes C = A*B on the best path: tile-assisted packing of A
// followed by the four-tile multiply. A is MxK, B is KxN, C is MxN,
// all row-major; B and C must be 64-byte aligned. The packed buffer is
// pooled internally, so steady-state calls do not allocate.
//
// For explicit strategy control (benchmarking the individual stages),
// call PackScalar/PackTiles and MulSingleTile/MulMultiTile directly.
func Mul(a, b, c []float32, m, n, k int) error {
	if err := validateDims(m, n, k); err != nil {
		return err
	}
	if len(a) < m*k {
		return errors.Errorf("sgemm: A too small for %dx%d: have %d, need %d", m, k, len(a), m*k)
	}

	size := PackedLen(m, k)
	ap := packPool.Get().([]float32)
	if cap(ap) < size {
		ap = sme.NewAlignedFloat32(size)
	} else {
		ap = ap[:size]
	}
	defer packPool.Put(ap)

	if err := PackTiles(a, m, k, ap); err != nil {
		return err
	}
	return MulMultiTile(ap, b, c, m, n, k)
}

// FlopCount returns the floating-point operation count of one MxKxN
// multiply: one multiply and one add per (i, j, k) triple.
func FlopCount(m, n, k int) uint64 {
	return 2 * uint64(m) * uint64(n) * uint64(k)
}
