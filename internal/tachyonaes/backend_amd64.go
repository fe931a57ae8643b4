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

//go:build amd64
// +build amd64

package tachyonaes

// hwBackend realizes AESEnc/CLMul with single-lane AES-NI and PCLMULQDQ
// instructions (§4.6 tier 3). Tiers 1/2 (AVX-512+VAES) detect down to this
// same backend rather than a wide kernel; see backend.go.
type hwBackend struct{}

func (hwBackend) Name() string { return "aes-ni" }

//go:noescape
//go:nosplit
func aesencAsm(dst, state, key *Lane)

//go:noescape
//go:nosplit
func clmulAsm(dst, a, b *Lane, imm uint8)

func (hwBackend) AESEnc(state, key Lane) Lane {
	var dst Lane
	aesencAsm(&dst, &state, &key)
	return dst
}

func (hwBackend) CLMul(a, b Lane, imm uint8) Lane {
	// The Backend interface documents bit 4 as selecting a's high half and
	// bit 0 as selecting b's high half (backend.go). PCLMULQDQ's own imm8
	// convention is the mirror of that (bit 0 selects the first operand,
	// bit 4 the second), and clmulAsm issues PCLMULQDQ with a as the first
	// operand and b as the second, so the two bits are swapped here before
	// reaching the asm stub.
	hwImm := (imm&0x01)<<4 | (imm&0x10)>>4
	var dst Lane
	clmulAsm(&dst, &a, &b, hwImm)
	return dst
}

func hwBackendOrNil() Backend { return hwBackend{} }
