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
	"github.com/tachyonhash/tachyon/internal/merkle"
	"github.com/tachyonhash/tachyon/internal/tachyonaes"
)

// hashFull implements the large-input policy from §4.9: inputs at least
// merkle.ChunkSize route through the Merkle engine, everything else goes
// straight to the dispatched kernel.
func hashFull(input []byte, domain, seed uint64, key *[32]byte) [Size]byte {
	backend := mustBackend()
	if len(input) >= merkle.ChunkSize {
		return merkle.HashLarge(input, domain, seed, key, backend)
	}
	return tachyonaes.HashDirect(input, domain, seed, key, backend)
}

// mustBackend returns the dispatched kernel or panics with the §4.9
// "CPU features missing" failure mode. Every build of this module carries
// a software kernel, so in practice a backend is always available; the
// check exists because one-shot APIs are documented to panic rather than
// return an error, and NewHasher/NewFull must still be able to report the
// same condition without panicking.
func mustBackend() tachyonaes.Backend {
	b := tachyonaes.ActiveBackend()
	if b == nil {
		panic("tachyon: CPU features missing")
	}
	return b
}
