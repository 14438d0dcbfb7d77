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
	"github.com/pkg/errors"

	"github.com/tilemul/tilemul/sme"
)

// All validation runs before the first tile operation. Every failure
// is fatal to the call: a multiply either completes a full C or writes
// nothing.

func validateDims(m, n, k int) error {
	if m <= 0 || n <= 0 || k <= 0 {
		return errors.Errorf("sgemm: dimensions must be positive, got m=%d n=%d k=%d", m, n, k)
	}
	return nil
}

func validatePackArgs(a, dst []float32, m, k int) error {
	if m <= 0 || k <= 0 {
		return errors.Errorf("sgemm: pack dimensions must be positive, got m=%d k=%d", m, k)
	}
	if len(a) < m*k {
		return errors.Errorf("sgemm: source buffer too small for %dx%d: have %d, need %d", m, k, len(a), m*k)
	}
	if len(dst) < PackedLen(m, k) {
		return errors.Errorf("sgemm: packed buffer too small: have %d, need %d", len(dst), PackedLen(m, k))
	}
	if !sme.Aligned64(dst) {
		return errors.New("sgemm: packed buffer is not 64-byte aligned")
	}
	return nil
}

func validateMulArgs(ap, b, c []float32, m, n, k int) error {
	if err := validateDims(m, n, k); err != nil {
		return err
	}
	if err := sme.Require(); err != nil {
		return err
	}
	if len(ap) < PackedLen(m, k) {
		return errors.Errorf("sgemm: packed A too small: have %d, need %d", len(ap), PackedLen(m, k))
	}
	if len(b) < k*n {
		return errors.Errorf("sgemm: B too small for %dx%d: have %d, need %d", k, n, len(b), k*n)
	}
	if len(c) < m*n {
		return errors.Errorf("sgemm: C too small for %dx%d: have %d, need %d", m, n, len(c), m*n)
	}
	if !sme.Aligned64(ap) {
		return errors.New("sgemm: packed A is not 64-byte aligned")
	}
	if !sme.Aligned64(b) {
		return errors.New("sgemm: B is not 64-byte aligned")
	}
	if !sme.Aligned64(c) {
		return errors.New("sgemm: C is not 64-byte aligned")
	}
	return nil
}
