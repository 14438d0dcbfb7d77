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

// Reference computes C = A*B with the naive triple loop.
// A is MxK, B is KxN, C is MxN, all row-major.
//
// The summation order is fixed (i, then j, then k ascending) so the
// result is reproducible and usable as the comparison baseline for the
// tiled kernels. This is the correctness oracle and performance floor;
// it has no alignment or dimension-multiple requirements.
func Reference(a, b, c []float32, m, n, k int) {
	for i := range m {
		for j := range n {
			var sum float32
			for p := range k {
				sum += a[i*k+p] * b[p*n+j]
			}
			c[i*n+j] = sum
		}
	}
}
