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

// NumLanes is the width of the flat accumulator array (§3: "a flat 32-lane
// array"), independent of the kernel's register width.
const NumLanes = 32

// ctSelectSeed returns seed when seed != 0, and fallback otherwise, without
// branching on the comparison result. The spec requires the seed-zero
// substitution to be data-oblivious (§9 "Seed-zero branch") so the two
// code paths do not differ in timing.
func ctSelectSeed(seed, fallback uint64) uint64 {
	nz := (seed | -seed) >> 63 // 1 if seed != 0, 0 if seed == 0
	mask := uint64(0) - nz     // all-ones if seed != 0, all-zero otherwise
	return (seed & mask) | (fallback &^ mask)
}

// NewState builds the initial 32-lane accumulator for a given seed and
// optional 32-byte key (§4.2).
func NewState(seed uint64, key *[32]byte, backend Backend) [NumLanes]Lane {
	var acc [NumLanes]Lane

	// Step 1: distinct per-lane fill.
	for i := 0; i < NumLanes; i++ {
		base := groupC(i / 4)
		j := uint64(i % 4)
		acc[i] = Lane{Lo: base + j*2, Hi: base + j*2 + 1}
	}

	// Step 2: seed mixing, with the zero-seed substitution kept
	// data-oblivious.
	broadcastVal := ctSelectSeed(seed, C5)
	bv := Broadcast(broadcastVal)
	for i := 0; i < NumLanes; i++ {
		acc[i] = backend.AESEnc(acc[i], bv)
	}

	if key == nil {
		return acc
	}

	// Step 3: key absorption.
	k0 := LoadLane(key[0:16])
	k1 := LoadLane(key[16:32])
	phi := Broadcast(GOLDEN_RATIO)
	k2 := k0.XOR(phi)
	k3 := k1.XOR(phi)
	keys := [4]Lane{k0, k1, k2, k3}

	for g := 0; g < 8; g++ {
		lo := Broadcast(LANE_OFFSETS[g])
		for j := 0; j < 4; j++ {
			idx := g*4 + j
			keyJ := keys[j]
			acc[idx] = backend.AESEnc(acc[idx], keyJ.Add64(lo))
			acc[idx] = backend.AESEnc(acc[idx], keyJ)
		}
	}

	return acc
}
