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

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Available reports whether the tile engine may be used. The model
// itself always works; setting TILEMUL_NO_SME disables it, which is
// useful for exercising the configuration-error path in callers.
func Available() bool {
	return !noSMEEnv()
}

// Require returns a configuration error when the tile engine is
// disabled. Kernels call this once at entry, before any tile op.
func Require() error {
	if !Available() {
		return errors.New("sme: tile engine disabled via TILEMUL_NO_SME")
	}
	return nil
}

// noSMEEnv checks the TILEMUL_NO_SME environment variable. Any
// non-empty value disables the engine unless it parses as false.
func noSMEEnv() bool {
	val := os.Getenv("TILEMUL_NO_SME")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
