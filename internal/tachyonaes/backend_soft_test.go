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

import "testing"

// TestAESEncDependsOnBothInputs checks that AESEnc is not accidentally
// ignoring either operand: changing the state or the key must change the
// output.
func TestAESEncDependsOnBothInputs(t *testing.T) {
	sb := softBackend{}
	state := Lane{Lo: 0x0102030405060708, Hi: 0x090a0b0c0d0e0f10}
	key := Lane{Lo: 0x1112131415161718, Hi: 0x191a1b1c1d1e1f20}

	base := sb.AESEnc(state, key)

	if sb.AESEnc(state.XORScalar(1), key) == base {
		t.Fatal("AESEnc output did not change when state changed")
	}
	if sb.AESEnc(state, key.XORScalar(1)) == base {
		t.Fatal("AESEnc output did not change when key changed")
	}
}

// TestAESEncZeroKeyIsNotIdentity verifies SubBytes/ShiftRows/MixColumns are
// actually applied, not skipped: encrypting under an all-zero key must not
// merely return the input state.
func TestAESEncZeroKeyIsNotIdentity(t *testing.T) {
	sb := softBackend{}
	state := Lane{Lo: 0x0102030405060708, Hi: 0x090a0b0c0d0e0f10}
	got := sb.AESEnc(state, Lane{})
	if got == state {
		t.Fatal("AESEnc with zero key returned the input state unchanged")
	}
}

// TestAESEncBijective spot-checks that AESEnc is injective for a fixed key,
// as any correct AES round function must be (every stage of an AES round -
// SubBytes, ShiftRows, MixColumns, AddRoundKey - is itself a bijection).
func TestAESEncBijective(t *testing.T) {
	sb := softBackend{}
	key := Lane{Lo: 0xdeadbeefcafef00d, Hi: 0x1122334455667788}

	seen := make(map[Lane]Lane)
	for i := uint64(0); i < 512; i++ {
		state := Lane{Lo: i * 0x9e3779b97f4a7c15, Hi: i}
		out := sb.AESEnc(state, key)
		if prev, ok := seen[out]; ok && prev != state {
			t.Fatalf("AESEnc collision: %#v and %#v both map to %#v", prev, state, out)
		}
		seen[out] = state
	}
}

func TestMixColumnKnownVector(t *testing.T) {
	// The FIPS-197 MixColumns example column.
	c := [4]byte{0xdb, 0x13, 0x53, 0x45}
	want := [4]byte{0x8e, 0x4d, 0xa1, 0xbc}
	mixColumn(&c)
	if c != want {
		t.Fatalf("mixColumn: got %#v, want %#v", c, want)
	}
}

func TestGfDouble(t *testing.T) {
	cases := []struct{ in, want byte }{
		{0x01, 0x02},
		{0x53, 0xa6},
		{0x80, 0x1b}, // top bit set forces reduction by GF_POLY
	}
	for _, c := range cases {
		if got := gfDouble(c.in); got != c.want {
			t.Errorf("gfDouble(%#x) = %#x, want %#x", c.in, got, c.want)
		}
	}
}

// TestCLMul64Linear checks carryless multiplication's defining algebraic
// property: it is linear (XOR-additive) in each operand over GF(2).
func TestCLMul64Linear(t *testing.T) {
	a := uint64(0x0123456789abcdef)
	b := uint64(0xfedcba9876543210)
	c := uint64(0x1111111111111111)

	lhs := clmul64(a, b).XOR(clmul64(a, c))
	rhs := clmul64(a, b^c)
	if lhs != rhs {
		t.Fatalf("clmul64 not linear in second operand: %#v != %#v", lhs, rhs)
	}

	lhs = clmul64(a, c).XOR(clmul64(b, c))
	rhs = clmul64(a^b, c)
	if lhs != rhs {
		t.Fatalf("clmul64 not linear in first operand: %#v != %#v", lhs, rhs)
	}
}

func TestCLMul64Identity(t *testing.T) {
	a := uint64(0xabad1deadeadbeef)
	if got := clmul64(a, 1); got != (Lane{Lo: a, Hi: 0}) {
		t.Fatalf("clmul64(a, 1) = %#v, want {Lo: %#x, Hi: 0}", got, a)
	}
	if got := clmul64(1, a); got != (Lane{Lo: a, Hi: 0}) {
		t.Fatalf("clmul64(1, a) = %#v, want {Lo: %#x, Hi: 0}", got, a)
	}
	if got := clmul64(0, a); got != (Lane{}) {
		t.Fatalf("clmul64(0, a) = %#v, want zero", got)
	}
}

func TestBackendCLMulOperandSelection(t *testing.T) {
	sb := softBackend{}
	a := Lane{Lo: 0x1111111111111111, Hi: 0x2222222222222222}
	b := Lane{Lo: 0x3333333333333333, Hi: 0x4444444444444444}

	cases := []struct {
		imm            uint8
		wantA, wantB   uint64
	}{
		{0x00, a.Lo, b.Lo},
		{0x01, a.Lo, b.Hi},
		{0x10, a.Hi, b.Lo},
		{0x11, a.Hi, b.Hi},
	}
	for _, c := range cases {
		got := sb.CLMul(a, b, c.imm)
		want := clmul64(c.wantA, c.wantB)
		if got != want {
			t.Errorf("CLMul imm=%#x: got %#v, want %#v", c.imm, got, want)
		}
	}
}
