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

// HashDirect runs the full kernel (init, block compression, finalization)
// over input against the given domain/seed/key, without any Merkle
// reduction. Callers are the one-shot API for inputs below CHUNK_SIZE and
// the Merkle engine for individual leaves; inputs shorter than
// ShortThreshold are handed on to HashSmall.
func HashDirect(input []byte, domain, seed uint64, key *[32]byte, backend Backend) [32]byte {
	if len(input) < ShortThreshold {
		return HashSmall(input, domain, seed, key, backend)
	}

	acc := NewState(seed, key, backend)
	var blockIdx uint64
	nBlocks := len(input) / BlockSize
	for i := 0; i < nBlocks; i++ {
		CompressBlock(&acc, input[i*BlockSize:(i+1)*BlockSize], &blockIdx, backend)
	}
	remainder := input[nBlocks*BlockSize:]
	return Finalize(acc, remainder, uint64(len(input)), domain, key, backend)
}
