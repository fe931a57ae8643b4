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

// softBackend is the portable, pure Go realization of AESENC/CLMUL. It is
// the correctness oracle every hardware backend must agree with bit for
// bit (Testable Property 1) and is the only backend available on non-amd64
// builds.
type softBackend struct{}

func (softBackend) Name() string { return "software" }

func laneToBytes(l Lane) [16]byte {
	var b [16]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(l.Lo >> (8 * uint(i)))
		b[8+i] = byte(l.Hi >> (8 * uint(i)))
	}
	return b
}

func bytesToLane(b [16]byte) Lane {
	var lo, hi uint64
	for i := 0; i < 8; i++ {
		lo |= uint64(b[i]) << (8 * uint(i))
		hi |= uint64(b[8+i]) << (8 * uint(i))
	}
	return Lane{Lo: lo, Hi: hi}
}

// gfDouble multiplies b by x in GF(2^8) with modulus x^8+x^4+x^3+x+1,
// branchless: the reduction term is masked in with an arithmetic multiply
// instead of a conditional.
func gfDouble(b byte) byte {
	hi := b >> 7
	return (b << 1) ^ (hi * GF_POLY)
}

// mixColumn applies the AES MixColumns matrix to one 4-byte column.
func mixColumn(c *[4]byte) {
	a0, a1, a2, a3 := c[0], c[1], c[2], c[3]
	d0, d1, d2, d3 := gfDouble(a0), gfDouble(a1), gfDouble(a2), gfDouble(a3)
	c[0] = d0 ^ (d1 ^ a1) ^ a2 ^ a3
	c[1] = a0 ^ d1 ^ (d2 ^ a2) ^ a3
	c[2] = a0 ^ a1 ^ d2 ^ (d3 ^ a3)
	c[3] = (d0 ^ a0) ^ a1 ^ a2 ^ d3
}

// AESEnc performs SubBytes, ShiftRows, MixColumns, AddRoundKey over state,
// byte-for-byte against the standard AES round, operating on the 16-byte
// little-endian image of the Lane as a column-major AES state (byte i =
// row i%4, column i/4).
func (softBackend) AESEnc(state, key Lane) Lane {
	b := laneToBytes(state)
	for i := range b {
		b[i] = sbox[b[i]]
	}

	var shifted [16]byte
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			shifted[r+4*c] = b[r+4*((c+r)%4)]
		}
	}

	for c := 0; c < 4; c++ {
		col := [4]byte{shifted[4*c], shifted[4*c+1], shifted[4*c+2], shifted[4*c+3]}
		mixColumn(&col)
		shifted[4*c], shifted[4*c+1], shifted[4*c+2], shifted[4*c+3] = col[0], col[1], col[2], col[3]
	}

	kb := laneToBytes(key)
	for i := range shifted {
		shifted[i] ^= kb[i]
	}
	return bytesToLane(shifted)
}

// clmul64 is a branchless carryless 64x64->128 multiply: every bit of a
// contributes shift(b, i) masked by an all-ones/all-zeros value derived
// arithmetically from the bit, never a conditional branch on the bit.
func clmul64(a, b uint64) Lane {
	var lo, hi uint64
	for i := 0; i < 64; i++ {
		mask := uint64(0) - ((a >> uint(i)) & 1)
		var tLo, tHi uint64
		if i == 0 {
			tLo, tHi = b, 0
		} else {
			tLo = b << uint(i)
			tHi = b >> uint(64-i)
		}
		lo ^= tLo & mask
		hi ^= tHi & mask
	}
	return Lane{Lo: lo, Hi: hi}
}

// CLMul performs carryless multiplication selecting operand halves per imm
// (bit 4 selects a's high half, bit 0 selects b's high half). The half
// selection is on a caller-supplied mode constant, not secret data, so it
// may branch; only the per-bit multiply of the selected 64-bit operands
// must be data-oblivious.
func (softBackend) CLMul(a, b Lane, imm uint8) Lane {
	av := a.Lo
	if imm&0x10 != 0 {
		av = a.Hi
	}
	bv := b.Lo
	if imm&0x01 != 0 {
		bv = b.Hi
	}
	return clmul64(av, bv)
}
