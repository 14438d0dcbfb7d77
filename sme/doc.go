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

// Package sme models a fixed-configuration ARM SME class matrix-tile
// engine: streaming vector registers, per-lane predicates, and the ZA
// accumulator tiles consumed by outer-product-accumulate (FMOPA)
// instructions.
//
// The model is pinned to a 512-bit streaming vector length (Apple M4
// class hardware): vectors hold 16 float32 lanes, a tile is a 16x16
// float32 accumulator, and four independent float32 tiles are
// available per instruction stream.
//
// Tiles are deliberately opaque. Hardware ZA state is not addressable
// as ordinary memory; it is written through vector slices and drained
// through predicated stores. The Tile type keeps that contract: there
// is no way to obtain a pointer into a tile, only Zero, FMOPA, slice
// reads/writes, and predicated row stores.
//
// Boundary handling is expressed with Pred values (per-lane masks)
// threaded through loads and stores, never with per-element branching
// in callers. A masked load never reads an inactive lane's memory and
// a masked store never writes one, so callers can run right up to the
// edge of a buffer without padding.
package sme
