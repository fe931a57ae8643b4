// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package tachyonaes

import "golang.org/x/sys/cpu"

// Backend supplies the two hardware-acceleratable primitives (AESENC,
// CLMUL) over 128-bit Lane values. Every kernel tier described in the spec
// (wide-SIMD, narrow-SIMD, software) is a realization of the same algorithm
// against this interface; only throughput, not output, differs between
// implementations.
type Backend interface {
	// AESEnc performs one AES round (SubBytes, ShiftRows, MixColumns,
	// AddRoundKey) of state against key.
	AESEnc(state, key Lane) Lane
	// CLMul performs a carryless 64x64->128 multiply. imm bit 4 selects
	// the high half of a, bit 0 selects the high half of b.
	CLMul(a, b Lane, imm uint8) Lane
	// Name identifies the backend for diagnostics.
	Name() string
}

// Tier identifies a dispatcher tier from spec §4.6. Tiers 1 and 2 both
// select the hardware backend: the wide AVX-512+VAES realization is
// required to be byte-identical to the single-lane AES-NI one, so this
// implementation does not maintain a separate wide kernel (see DESIGN.md
// and SPEC_FULL.md for the rationale).
type Tier int

const (
	TierSoftware Tier = iota
	TierAESNI
	TierHybridAVX512
	TierHybridAVX512VPCLMUL
)

func (t Tier) String() string {
	switch t {
	case TierHybridAVX512VPCLMUL:
		return "hybrid-avx512-vpclmulqdq"
	case TierHybridAVX512:
		return "hybrid-avx512"
	case TierAESNI:
		return "aes-ni"
	default:
		return "software"
	}
}

var (
	activeTier    Tier
	activeBackend Backend = softBackend{}
)

func init() {
	detectDispatcherTier()
}

// detectDispatcherTier implements the §4.6 ordered feature probe. Tiers 1/2
// and tier 3 all resolve to hwBackend; only tier 4 (no AES-NI) falls back
// to the pure Go software backend.
func detectDispatcherTier() {
	hasAESNI := cpu.X86.HasAES && cpu.X86.HasSSE2 && cpu.X86.HasPCLMULQDQ
	hasAVX512 := cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW && cpu.X86.HasVAES
	hasVPCLMUL := cpu.X86.HasVPCLMULQDQ

	switch {
	case hasAVX512 && hasVPCLMUL && hasAESNI:
		activeTier = TierHybridAVX512VPCLMUL
		activeBackend = hwBackendOrNil()
	case hasAVX512:
		activeTier = TierHybridAVX512
		activeBackend = hwBackendOrNil()
	case hasAESNI:
		activeTier = TierAESNI
		activeBackend = hwBackendOrNil()
	default:
		activeTier = TierSoftware
		activeBackend = softBackend{}
	}
	if activeBackend == nil {
		activeTier = TierSoftware
		activeBackend = softBackend{}
	}
}

// ActiveBackend returns the backend selected by CPU feature detection.
func ActiveBackend() Backend { return activeBackend }

// ActiveTier reports which dispatcher tier (§4.6) is currently active.
func ActiveTier() Tier { return activeTier }

// SoftwareBackend returns the portable backend directly, bypassing
// dispatch. The package's tests run against it; no test compares it with
// the hardware backend.
func SoftwareBackend() Backend { return softBackend{} }
