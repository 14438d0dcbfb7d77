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
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilemul/tilemul/sme"
)

// randMatrix fills an aligned n-element buffer with seeded values in [-1, 1).
func randMatrix(t *testing.T, rng *rand.Rand, n int) []float32 {
	t.Helper()
	buf := sme.NewAlignedFloat32(n)
	for i := range buf {
		buf[i] = rng.Float32()*2 - 1
	}
	return buf
}

func TestPackStrategiesBitIdentical(t *testing.T) {
	sizes := []struct{ m, k int }{
		{1, 1}, {1, 16}, {16, 1},
		{15, 15}, {16, 16}, {17, 17},
		{33, 33}, {64, 64}, {100, 100},
		{5, 100}, {100, 5}, {17, 64}, {64, 17}, {256, 256},
	}
	for _, size := range sizes {
		t.Run(fmt.Sprintf("%dx%d", size.m, size.k), func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			a := randMatrix(t, rng, size.m*size.k)

			scalar := sme.NewAlignedFloat32(PackedLen(size.m, size.k))
			tiled := sme.NewAlignedFloat32(PackedLen(size.m, size.k))

			require.NoError(t, PackScalar(a, size.m, size.k, scalar))
			require.NoError(t, PackTiles(a, size.m, size.k, tiled))

			require.Equal(t, scalar, tiled, "pack strategies diverged at %dx%d", size.m, size.k)
		})
	}
}

func TestPackLayoutMatchesTranspose(t *testing.T) {
	// Every element of the packed form must be pulled from A-transpose
	// at the documented position.
	m, k := 37, 21
	rng := rand.New(rand.NewSource(2))
	a := randMatrix(t, rng, m*k)
	packed := sme.NewAlignedFloat32(PackedLen(m, k))
	require.NoError(t, PackScalar(a, m, k, packed))

	for p := 0; p*sme.VL < m; p++ {
		base := p * sme.VL
		cols := min(sme.VL, m-base)
		for kk := 0; kk < k; kk++ {
			for j := 0; j < cols; j++ {
				got := packed[panelOffset(p, k)+kk*cols+j]
				want := a[(base+j)*k+kk]
				require.Equalf(t, want, got, "panel %d k %d lane %d", p, kk, j)
			}
		}
	}
}

func TestPackContentIsPermutationOfA(t *testing.T) {
	m, k := 23, 45
	rng := rand.New(rand.NewSource(3))
	a := randMatrix(t, rng, m*k)
	packed := sme.NewAlignedFloat32(PackedLen(m, k))
	require.NoError(t, PackTiles(a, m, k, packed))

	require.Len(t, packed, m*k)
	counts := map[float32]int{}
	for _, v := range a {
		counts[v]++
	}
	for _, v := range packed {
		counts[v]--
	}
	for v, c := range counts {
		require.Zerof(t, c, "element %v count mismatch", v)
	}
}

func TestPackRejectsBadArgs(t *testing.T) {
	a := sme.NewAlignedFloat32(16)
	dst := sme.NewAlignedFloat32(16)

	assert.Error(t, PackScalar(a, 0, 4, dst))
	assert.Error(t, PackScalar(a, 4, 0, dst))
	assert.Error(t, PackScalar(a, -1, 4, dst))
	assert.Error(t, PackScalar(a, 5, 4, dst), "source too small")
	assert.Error(t, PackScalar(a, 4, 4, dst[:8]), "dest too small")
	assert.Error(t, PackTiles(a, 0, 4, dst))
	assert.Error(t, PackTiles(a, 5, 4, dst))

	// Unaligned destination: shift by one float off the 64-byte boundary.
	wide := sme.NewAlignedFloat32(32)
	assert.Error(t, PackScalar(a, 4, 4, wide[1:17]))
	assert.Error(t, PackTiles(a, 4, 4, wide[1:17]))
}

func TestPackErrorWritesNothing(t *testing.T) {
	a := sme.NewAlignedFloat32(16)
	dst := sme.NewAlignedFloat32(8) // 4x4 needs 16
	for i := range dst {
		dst[i] = -7
	}
	require.Error(t, PackScalar(a, 4, 4, dst))
	for i, v := range dst {
		require.Equalf(t, float32(-7), v, "dst[%d] modified on failed pack", i)
	}
}

func TestPackTilesHonorsEngineGate(t *testing.T) {
	a := sme.NewAlignedFloat32(16)
	dst := sme.NewAlignedFloat32(16)
	t.Setenv("TILEMUL_NO_SME", "1")
	assert.Error(t, PackTiles(a, 4, 4, dst))
	assert.NoError(t, PackScalar(a, 4, 4, dst), "scalar fallback must not need the engine")
}
