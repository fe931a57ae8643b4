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

package merkle

import (
	"encoding/binary"
	"sync"

	"github.com/tachyonhash/tachyon/internal/tachyonaes"
	"github.com/tachyonhash/tachyon/ints"
)

// Engine drives leaf hashing and sparse-stack reduction for one hash
// session (one-shot large input, or one streaming Hasher's lifetime).
// Leaf hashing within a single PushLeaves call may run in parallel;
// reduction into the stack is always sequential and index-ordered, so the
// resulting digest never depends on goroutine scheduling (§4.7, §5).
type Engine struct {
	stack   *stack
	seed    uint64
	key     *[32]byte
	backend tachyonaes.Backend
	pushed  bool
}

// NewEngine creates an Engine bound to one (seed, key, backend)
// configuration.
func NewEngine(seed uint64, key *[32]byte, backend tachyonaes.Backend) *Engine {
	return &Engine{stack: newStack(seed, key, backend), seed: seed, key: key, backend: backend}
}

// PushLeaves hashes every byte slice in leaves (with DOMAIN_LEAF) and
// pushes the results into the stack in order. Leaves are hashed
// concurrently — a goroutine per leaf — but every push happens on the
// calling goroutine after all hashing completes, so the reduction order is
// exactly the order leaves were supplied in, independent of which
// goroutine finishes first.
func (e *Engine) PushLeaves(leaves [][]byte) {
	if len(leaves) == 0 {
		return
	}
	hashes := make([][32]byte, len(leaves))
	var wg sync.WaitGroup
	wg.Add(len(leaves))
	for i, leaf := range leaves {
		i, leaf := i, leaf
		go func() {
			defer wg.Done()
			hashes[i] = tachyonaes.HashDirect(leaf, DomainLeaf, e.seed, e.key, e.backend)
		}()
	}
	wg.Wait()

	for _, h := range hashes {
		e.stack.push(h)
		e.pushed = true
	}
}

// Pushed reports whether any leaf has ever been pushed into this engine.
func (e *Engine) Pushed() bool { return e.pushed }

// Clone returns an independent copy of the engine's reduction state.
func (e *Engine) Clone() *Engine {
	return &Engine{stack: e.stack.clone(), seed: e.seed, key: e.key, backend: e.backend, pushed: e.pushed}
}

// Finalize hashes any partial-leaf tail, collapses the stack into a root,
// and returns the length-committed 256-bit digest: hash(root ∥ domain ∥
// total_len, domain=0) (§4.7).
func (e *Engine) Finalize(tail []byte, domain, totalLen uint64) [32]byte {
	if len(tail) > 0 {
		leaf := tachyonaes.HashDirect(tail, DomainLeaf, e.seed, e.key, e.backend)
		e.stack.push(leaf)
		e.pushed = true
	}

	root, _ := e.stack.collapse()

	var commit [48]byte
	copy(commit[0:32], root[:])
	binary.LittleEndian.PutUint64(commit[32:40], domain)
	binary.LittleEndian.PutUint64(commit[40:48], totalLen)
	return tachyonaes.HashDirect(commit[:], 0, e.seed, e.key, e.backend)
}

// SplitLeaves partitions input into ChunkSize-sized leaves, the last of
// which may be shorter. Used by the one-shot large-input path and by the
// streaming hasher when it pushes the full-chunk prefix of its buffer.
func SplitLeaves(input []byte) [][]byte {
	leaves := make([][]byte, 0, int(ints.ChunkCount(uint(len(input)), uint(ChunkSize))))
	for off := 0; off < len(input); off += ChunkSize {
		end := ints.Min(off+ChunkSize, len(input))
		leaves = append(leaves, input[off:end])
	}
	return leaves
}

// HashLarge computes the one-shot digest of an input of at least ChunkSize
// bytes via the Merkle engine.
func HashLarge(input []byte, domain, seed uint64, key *[32]byte, backend tachyonaes.Backend) [32]byte {
	e := NewEngine(seed, key, backend)
	leaves := SplitLeaves(input)
	// Finalize always treats the last leaf as a tail it hashes itself, so
	// PushLeaves only handles the full leading chunks here.
	n := len(leaves)
	if n > 0 {
		e.PushLeaves(leaves[:n-1])
		return e.Finalize(leaves[n-1], domain, uint64(len(input)))
	}
	return e.Finalize(nil, domain, uint64(len(input)))
}
