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
	"testing"

	"github.com/tachyonhash/tachyon/internal/tachyonaes"
	"github.com/tachyonhash/tachyon/ints"
)

func TestSplitLeaves(t *testing.T) {
	input := make([]byte, ChunkSize*2+100)
	leaves := SplitLeaves(input)
	if len(leaves) != 3 {
		t.Fatalf("SplitLeaves produced %d leaves, want 3", len(leaves))
	}
	if len(leaves[0]) != ChunkSize || len(leaves[1]) != ChunkSize {
		t.Fatal("SplitLeaves did not produce full ChunkSize leading leaves")
	}
	if len(leaves[2]) != 100 {
		t.Fatalf("SplitLeaves trailing leaf has length %d, want 100", len(leaves[2]))
	}
}

func TestSplitLeavesExactMultiple(t *testing.T) {
	input := make([]byte, ChunkSize*3)
	leaves := SplitLeaves(input)
	if len(leaves) != 3 {
		t.Fatalf("SplitLeaves produced %d leaves, want 3", len(leaves))
	}
	for i, l := range leaves {
		if len(l) != ChunkSize {
			t.Fatalf("leaf %d has length %d, want %d", i, len(l), ChunkSize)
		}
	}
}

func TestEnginePushedReflectsActivity(t *testing.T) {
	backend := tachyonaes.SoftwareBackend()
	e := NewEngine(0, nil, backend)
	if e.Pushed() {
		t.Fatal("freshly constructed engine reports Pushed()==true")
	}
	e.PushLeaves([][]byte{{1, 2, 3}})
	if !e.Pushed() {
		t.Fatal("engine did not report Pushed()==true after PushLeaves")
	}
}

func TestHashLargeDeterministic(t *testing.T) {
	backend := tachyonaes.SoftwareBackend()
	input := make([]byte, ChunkSize*3+17)
	if err := ints.RandomFillSlice(input); err != nil {
		t.Fatal(err)
	}

	a := HashLarge(input, 0, 0, nil, backend)
	b := HashLarge(input, 0, 0, nil, backend)
	if a != b {
		t.Fatal("HashLarge is not deterministic")
	}
}

func TestHashLargeLengthSensitive(t *testing.T) {
	backend := tachyonaes.SoftwareBackend()
	input := make([]byte, ChunkSize*2+5)
	if err := ints.RandomFillSlice(input); err != nil {
		t.Fatal(err)
	}

	full := HashLarge(input, 0, 0, nil, backend)
	truncated := HashLarge(input[:len(input)-1], 0, 0, nil, backend)
	if full == truncated {
		t.Fatal("HashLarge did not distinguish inputs of different lengths")
	}
}

func TestHashLargeIndependentOfLeafBatching(t *testing.T) {
	// Whether PushLeaves is called once with all leading leaves or in
	// several smaller batches must not change the final digest, since
	// reduction order into the stack is always sequential.
	backend := tachyonaes.SoftwareBackend()
	input := make([]byte, ChunkSize*4+9)
	if err := ints.RandomFillSlice(input); err != nil {
		t.Fatal(err)
	}

	whole := HashLarge(input, 5, 42, nil, backend)

	leaves := SplitLeaves(input)
	n := len(leaves)
	e := NewEngine(42, nil, backend)
	for i := 0; i < n-1; i++ {
		e.PushLeaves(leaves[i : i+1])
	}
	batched := e.Finalize(leaves[n-1], 5, uint64(len(input)))

	if whole != batched {
		t.Fatal("digest depends on how leaves were batched across PushLeaves calls")
	}
}

func TestEngineClone(t *testing.T) {
	backend := tachyonaes.SoftwareBackend()
	e := NewEngine(0, nil, backend)
	e.PushLeaves([][]byte{{1}, {2}, {3}})

	clone := e.Clone()
	beforeRoot, _ := clone.stack.collapse()

	e.PushLeaves([][]byte{{4}})
	afterRoot, _ := clone.stack.collapse()

	if beforeRoot != afterRoot {
		t.Fatal("Engine.Clone shared mutable state with the original engine")
	}
}
