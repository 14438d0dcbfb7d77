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

// Package sgemm implements single-precision matrix multiplication
// (C = A*B) on the sme tile-engine model.
//
// FMOPA computes a full rank-1 update per issue, so feeding it needs
// columns of A as contiguous vectors. The layout preprocessor
// (PackScalar/PackTiles) therefore repacks A's transpose into
// VL-column panels once, ahead of the K loop:
//
//	panel p (columns p*VL .. p*VL+cols of A-transpose), k ascending,
//	the panel's cols lanes contiguous per k
//
// Both pack strategies emit bit-identical output; they differ only in
// whether the transpose runs through ordinary indexed copies or
// through tile slice writes/reads.
//
// Two multiply kernels consume the packed form. MulSingleTile uses one
// accumulator tile per output block. MulMultiTile keeps four tiles
// live across four adjacent column blocks so that every A vector
// loaded feeds four accumulations, which is where the throughput win
// comes from.
//
// Kernels are single-threaded by design: the parallelism here is
// tile-level, inside one instruction stream, not goroutine-level.
// Accumulation order is fixed (ascending k per block), so repeated
// runs are bit-identical; agreement with Reference is tolerance-based
// because the summation order differs.
package sgemm
