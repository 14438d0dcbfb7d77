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

//go:build linux && arm64

package sme

import "golang.org/x/sys/cpu"

// hasNativeSME indicates whether the host CPU implements SME itself,
// per the kernel's HWCAP2 bits.
var hasNativeSME = cpu.ARM64.HasSME

// HasNativeSME reports whether the host CPU implements SME. The model
// runs everywhere regardless; this is surfaced for benchmark reports.
func HasNativeSME() bool {
	return hasNativeSME
}
