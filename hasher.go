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
	"golang.org/x/exp/slices"

	"github.com/tachyonhash/tachyon/internal/merkle"
	"github.com/tachyonhash/tachyon/internal/tachyonaes"
	"github.com/tachyonhash/tachyon/ints"
)

// Hasher is Tachyon's incremental, streaming hash state (§4.8). It must
// produce byte-identical output to the one-shot API for any input,
// regardless of how the caller partitioned it across Update calls
// (Testable Property 2). The zero value is not usable; construct one with
// NewFull or NewHasher.
type Hasher struct {
	domain  uint64
	seed    uint64
	key     *[32]byte
	backend tachyonaes.Backend

	buf    []byte
	total  uint64
	engine *merkle.Engine
}

// NewHasher constructs a Hasher with domain=0 and the given seed.
func NewHasher(seed uint64) (*Hasher, error) {
	return NewFull(DomainGeneric, seed)
}

// NewFull constructs a Hasher with both domain and seed as independent,
// named arguments (§9's resolution of the new_full/hash_seeded open
// question — see SPEC_FULL.md).
func NewFull(domain, seed uint64) (*Hasher, error) {
	return newFullKeyed(domain, seed, nil)
}

// NewMAC constructs a keyed Hasher equivalent to the streaming form of
// HashKeyed.
func NewMAC(key *[32]byte) (*Hasher, error) {
	return newFullKeyed(DomainMessageAuth, 0, key)
}

func newFullKeyed(domain, seed uint64, key *[32]byte) (*Hasher, error) {
	backend := tachyonaes.ActiveBackend()
	if backend == nil {
		return nil, &CpuFeatureError{Reason: "no AES-NI or software kernel available"}
	}
	h := &Hasher{
		domain:  domain,
		seed:    seed,
		key:     key,
		backend: backend,
		engine:  merkle.NewEngine(seed, key, backend),
	}
	return h, nil
}

// Update adds bytes to the hash state.
func (h *Hasher) Update(p []byte) {
	h.total += uint64(len(p))

	if len(h.buf) == 0 && len(p) >= merkle.ChunkSize {
		full := int(ints.AlignDown(uint(len(p)), uint(merkle.ChunkSize)))
		h.pushFullChunks(p[:full])
		h.buf = append(h.buf, p[full:]...)
		return
	}

	h.buf = append(h.buf, p...)
	if len(h.buf) >= merkle.ChunkSize {
		h.drainFull()
	}
}

// drainFull pushes every complete ChunkSize-sized prefix of the buffer
// into the Merkle engine (possibly more than one leaf at once, which
// PushLeaves hashes in parallel — this is the "batching" §4.8 describes),
// leaving fewer than ChunkSize bytes behind.
func (h *Hasher) drainFull() {
	full := int(ints.AlignDown(uint(len(h.buf)), uint(merkle.ChunkSize)))
	if full == 0 {
		return
	}
	h.pushFullChunks(h.buf[:full])
	remaining := len(h.buf) - full
	copy(h.buf, h.buf[full:])
	h.buf = h.buf[:remaining]
}

func (h *Hasher) pushFullChunks(p []byte) {
	h.engine.PushLeaves(merkle.SplitLeaves(p))
}

// Finalize drains any remaining full chunks, folds the leftover tail into
// the Merkle engine (or, if the Merkle engine was never activated because
// the whole stream was under ChunkSize, hashes the tail directly — §9
// "stack is empty at finalize time"), and returns the 32-byte digest.
func (h *Hasher) Finalize() [Size]byte {
	h.drainFull()
	if !h.engine.Pushed() {
		return tachyonaes.HashDirect(h.buf, h.domain, h.seed, h.key, h.backend)
	}
	return h.engine.Finalize(h.buf, h.domain, h.total)
}

// Reset clears the buffer, resets the Merkle stack, and zeroes the byte
// counter, preserving the configured domain, seed, and key.
func (h *Hasher) Reset() {
	h.buf = h.buf[:0]
	h.total = 0
	h.engine = merkle.NewEngine(h.seed, h.key, h.backend)
}

// Clone returns an independent Hasher with the same configuration and
// continuation state.
func (h *Hasher) Clone() *Hasher {
	return &Hasher{
		domain:  h.domain,
		seed:    h.seed,
		key:     h.key,
		backend: h.backend,
		buf:     slices.Clone(h.buf),
		total:   h.total,
		engine:  h.engine.Clone(),
	}
}
