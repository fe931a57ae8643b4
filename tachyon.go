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

// Package tachyon implements a high-throughput, cryptographically
// hardened, non-collision-resistant-but-quality 256-bit hash function
// family built on AES round primitives (AESENC) and carryless
// multiplication (CLMUL). It produces a 32-byte digest of arbitrary byte
// inputs, with bit-identical output across its hardware and software
// kernels and across one-shot and streaming use, but it is not a drop-in
// replacement for SHA-2/3: there is no claim of collision resistance under
// active cryptanalysis.
package tachyon

import "github.com/tachyonhash/tachyon/internal/tachyonaes"

// Reserved 64-bit domain identifiers (§6). Custom domains must set bit 60
// to avoid colliding with these or with a future reservation.
const (
	DomainGeneric        uint64 = 0
	DomainFileChecksum   uint64 = 1
	DomainKeyDerivation  uint64 = 2
	DomainMessageAuth    uint64 = 3
	DomainDatabaseIndex  uint64 = 4
	DomainContentAddress uint64 = 5

	// CustomDomainBit must be set on any caller-chosen domain id to avoid
	// collision with the reserved identifiers above and with the internal
	// Merkle domains (merkle.DomainLeaf, merkle.DomainNode).
	CustomDomainBit uint64 = 0x1000000000000000
)

// Size is the fixed digest length in bytes, on every platform.
const Size = 32

// Hash computes hash_full(input, domain=0, seed=0, key=nil).
func Hash(input []byte) [Size]byte {
	return hashFull(input, DomainGeneric, 0, nil)
}

// HashSeeded computes hash_full(input, domain=0, seed, key=nil). This is a
// one-shot API quirk the spec preserves deliberately: it always routes
// through domain 0 regardless of any domain a caller might separately
// want, unlike the streaming constructor NewFull which takes both as
// independent arguments.
func HashSeeded(input []byte, seed uint64) [Size]byte {
	return hashFull(input, DomainGeneric, seed, nil)
}

// HashWithDomain computes hash_full(input, domain, seed=0, key=nil).
func HashWithDomain(input []byte, domain uint64) [Size]byte {
	return hashFull(input, domain, 0, nil)
}

// HashKeyed computes hash_full(input, DomainMessageAuth, seed=0, key).
func HashKeyed(input []byte, key *[32]byte) [Size]byte {
	return hashFull(input, DomainMessageAuth, 0, key)
}

// DeriveKey computes hash_full(context, DomainKeyDerivation, seed=0,
// material). context is taken as raw UTF-8 bytes.
func DeriveKey(context string, material *[32]byte) [Size]byte {
	return hashFull([]byte(context), DomainKeyDerivation, 0, material)
}

// Verify reports whether expected equals Hash(input), comparing in
// constant time.
func Verify(input []byte, expected [Size]byte) bool {
	got := Hash(input)
	return constantTimeEqual(got, expected)
}

// VerifyMAC reports whether expected equals HashKeyed(input, key),
// comparing in constant time.
func VerifyMAC(input []byte, key *[32]byte, expected [Size]byte) bool {
	got := HashKeyed(input, key)
	return constantTimeEqual(got, expected)
}

// constantTimeEqual compares two digests by XOR-OR accumulation across
// every byte, reading both operands in full regardless of where (or
// whether) they first differ (§4.9, Testable Property 9).
func constantTimeEqual(a, b [Size]byte) bool {
	var diff byte
	for i := 0; i < Size; i++ {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}

// ActiveKernel names the dispatcher tier currently selected, for
// diagnostics.
func ActiveKernel() string { return tachyonaes.ActiveTier().String() }
