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

package tachyon

import (
	"testing"

	"github.com/tachyonhash/tachyon/ints"
)

func TestHashDeterministic(t *testing.T) {
	buf := make([]byte, 1000)
	if err := ints.RandomFillSlice(buf); err != nil {
		t.Fatal(err)
	}
	if Hash(buf) != Hash(buf) {
		t.Fatal("Hash is not deterministic")
	}
}

func TestHashSeededDiffersFromHash(t *testing.T) {
	buf := []byte("the quick brown fox")
	if HashSeeded(buf, 1) == Hash(buf) {
		t.Fatal("HashSeeded(seed=1) collided with the unseeded Hash")
	}
}

func TestHashWithDomainDiffersAcrossDomains(t *testing.T) {
	buf := []byte("the quick brown fox")
	a := HashWithDomain(buf, DomainFileChecksum)
	b := HashWithDomain(buf, DomainDatabaseIndex)
	if a == b {
		t.Fatal("HashWithDomain collided across two distinct reserved domains")
	}
}

func TestHashKeyedRequiresTheRightKey(t *testing.T) {
	buf := []byte("authenticate me")
	var k1, k2 [32]byte
	k1[0] = 1
	k2[0] = 2
	if HashKeyed(buf, &k1) == HashKeyed(buf, &k2) {
		t.Fatal("HashKeyed collided for two different keys")
	}
}

func TestDeriveKeyIsDomainSeparatedFromContext(t *testing.T) {
	var material [32]byte
	material[0] = 0xaa
	a := DeriveKey("signing", &material)
	b := DeriveKey("encryption", &material)
	if a == b {
		t.Fatal("DeriveKey produced the same subkey for two different contexts")
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	buf := []byte("round trip me")
	digest := Hash(buf)
	if !Verify(buf, digest) {
		t.Fatal("Verify rejected a digest it just produced")
	}
	digest[0] ^= 1
	if Verify(buf, digest) {
		t.Fatal("Verify accepted a corrupted digest")
	}
}

func TestVerifyMACRoundTrip(t *testing.T) {
	buf := []byte("authenticate me")
	var key [32]byte
	key[0] = 0x42
	mac := HashKeyed(buf, &key)
	if !VerifyMAC(buf, &key, mac) {
		t.Fatal("VerifyMAC rejected a MAC it just produced")
	}
	var wrongKey [32]byte
	wrongKey[0] = 0x43
	if VerifyMAC(buf, &wrongKey, mac) {
		t.Fatal("VerifyMAC accepted a MAC under the wrong key")
	}
}

func TestConstantTimeEqualReadsEveryByte(t *testing.T) {
	a := [Size]byte{}
	b := [Size]byte{}
	b[Size-1] = 1
	if constantTimeEqual(a, b) {
		t.Fatal("constantTimeEqual did not notice a difference in the last byte")
	}
	a[0] = 1
	b[0] = 1
	b[Size-1] = 0
	if !constantTimeEqual(a, b) {
		t.Fatal("constantTimeEqual reported unequal for identical digests")
	}
}

func TestActiveKernelIsNonEmpty(t *testing.T) {
	if ActiveKernel() == "" {
		t.Fatal("ActiveKernel returned an empty string")
	}
}

// TestLargeInputRoutesThroughMerkle exercises the ChunkSize boundary from
// the public API's side: an input one byte beyond it must produce a
// deterministic digest, and must differ from the digest of the
// one-byte-shorter input of exactly ChunkSize bytes, which is itself still
// Merkle-routed.
func TestLargeInputRoutesThroughMerkle(t *testing.T) {
	const chunkSize = 256 * 1024
	buf := make([]byte, chunkSize+1)
	if err := ints.RandomFillSlice(buf); err != nil {
		t.Fatal(err)
	}
	a := Hash(buf)
	b := Hash(buf)
	if a != b {
		t.Fatal("Hash is not deterministic for a Merkle-routed input")
	}
	if Hash(buf[:chunkSize]) == a {
		t.Fatal("truncating a Merkle-routed input by one byte did not change the digest")
	}
}
