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

	"github.com/stretchr/testify/require"

	"github.com/tilemul/tilemul/sme"
)

const sentinel = float32(-12345.0)

// guarded allocates an n-element region surrounded by sentinel-filled
// guard zones. The guard is one full vector wide so the region keeps
// 64-byte alignment.
func guarded(n int) (region, whole []float32) {
	whole = sme.NewAlignedFloat32(n + 2*sme.VL)
	for i := range whole {
		whole[i] = sentinel
	}
	region = whole[sme.VL : sme.VL+n : sme.VL+n]
	return region, whole
}

func checkGuards(t *testing.T, whole []float32, n int, what string) {
	t.Helper()
	for i := 0; i < sme.VL; i++ {
		require.Equalf(t, sentinel, whole[i], "%s: leading guard[%d] clobbered", what, i)
	}
	for i := sme.VL + n; i < len(whole); i++ {
		require.Equalf(t, sentinel, whole[i], "%s: trailing guard[%d] clobbered", what, i-sme.VL-n)
	}
}

// TestNoOutOfBoundsAccess runs the full pipeline on sizes that are not
// multiples of the vector length, with sentinel guard zones around
// every buffer. Predicated edge handling must leave the guards intact
// while still producing every valid output element.
func TestNoOutOfBoundsAccess(t *testing.T) {
	sizes := []struct{ m, n, k int }{
		{17, 17, 17}, {33, 33, 33}, {100, 100, 100},
		{17, 33, 100}, {1, 17, 15}, {15, 1, 17},
	}
	for _, size := range sizes {
		t.Run(fmt.Sprintf("%dx%dx%d", size.m, size.n, size.k), func(t *testing.T) {
			m, n, k := size.m, size.n, size.k
			rng := rand.New(rand.NewSource(41))

			a, aWhole := guarded(m * k)
			b, bWhole := guarded(k * n)
			cSingle, cSingleWhole := guarded(m * n)
			cMulti, cMultiWhole := guarded(m * n)
			ap, apWhole := guarded(PackedLen(m, k))

			for i := range a {
				a[i] = rng.Float32()*2 - 1
			}
			for i := range b {
				b[i] = rng.Float32()*2 - 1
			}
			// Poison the outputs so a skipped element is detectable.
			for i := range cSingle {
				cSingle[i] = sentinel
			}
			for i := range cMulti {
				cMulti[i] = sentinel
			}

			require.NoError(t, PackTiles(a, m, k, ap))
			require.NoError(t, MulSingleTile(ap, b, cSingle, m, n, k))
			require.NoError(t, MulMultiTile(ap, b, cMulti, m, n, k))

			checkGuards(t, aWhole, m*k, "A")
			checkGuards(t, bWhole, k*n, "B")
			checkGuards(t, apWhole, m*k, "A_packed")
			checkGuards(t, cSingleWhole, m*n, "C single-tile")
			checkGuards(t, cMultiWhole, m*n, "C multi-tile")

			// Every valid element written: the sentinel cannot survive a
			// multiply of inputs bounded by 1 in magnitude.
			want := make([]float32, m*n)
			Reference(a, b, want, m, n, k)
			require.Truef(t, WithinTolerance(cSingle, want, DefaultRTol, DefaultATol),
				"single-tile skipped or corrupted elements")
			require.Truef(t, WithinTolerance(cMulti, want, DefaultRTol, DefaultATol),
				"multi-tile skipped or corrupted elements")
		})
	}
}

// TestPackNoOutOfBoundsAccess checks both pack strategies against
// guard zones independently of the multiply.
func TestPackNoOutOfBoundsAccess(t *testing.T) {
	for _, size := range []struct{ m, k int }{{17, 33}, {15, 15}, {100, 7}} {
		t.Run(fmt.Sprintf("%dx%d", size.m, size.k), func(t *testing.T) {
			rng := rand.New(rand.NewSource(43))
			a, aWhole := guarded(size.m * size.k)
			for i := range a {
				a[i] = rng.Float32()
			}

			scalar, scalarWhole := guarded(PackedLen(size.m, size.k))
			tiled, tiledWhole := guarded(PackedLen(size.m, size.k))

			require.NoError(t, PackScalar(a, size.m, size.k, scalar))
			require.NoError(t, PackTiles(a, size.m, size.k, tiled))

			checkGuards(t, aWhole, size.m*size.k, "A")
			checkGuards(t, scalarWhole, size.m*size.k, "scalar packed")
			checkGuards(t, tiledWhole, size.m*size.k, "tile packed")
			require.Equal(t, scalar, tiled)
		})
	}
}
