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

import "math"

// Tiled kernels accumulate in a different order than Reference, so
// agreement is tolerance-based, not bit-exact. A float32 dot product
// over K terms carries rounding noise that grows with K and can cancel
// to near zero, so the comparison is relative for large magnitudes
// with an absolute floor for small ones:
//
//	|got - want| <= atol + rtol*|want|
const (
	// DefaultRTol is the relative tolerance for comparing a kernel's
	// output against Reference.
	DefaultRTol = 1e-4

	// DefaultATol is the absolute floor. It keeps elements whose true
	// value cancels to near zero from failing on rounding noise that
	// is tiny relative to the accumulated terms.
	DefaultATol = 1e-4
)

// MaxRelError returns the largest per-element error between got and
// want, relative to max(|want|, 1). Flooring the denominator at 1
// makes the figure absolute for small-magnitude elements instead of
// exploding on cancellation. Slices must be the same length.
func MaxRelError(got, want []float32) float64 {
	maxErr := 0.0
	for i := range want {
		denom := math.Abs(float64(want[i]))
		if denom < 1 {
			denom = 1
		}
		rel := math.Abs(float64(got[i])-float64(want[i])) / denom
		if rel > maxErr {
			maxErr = rel
		}
	}
	return maxErr
}

// WithinTolerance reports whether every element of got matches want
// under |got-want| <= atol + rtol*|want|.
func WithinTolerance(got, want []float32, rtol, atol float64) bool {
	for i := range want {
		diff := math.Abs(float64(got[i]) - float64(want[i]))
		if diff > atol+rtol*math.Abs(float64(want[i])) {
			return false
		}
	}
	return true
}
