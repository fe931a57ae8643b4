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

// BlockSize is the number of input bytes consumed by one CompressBlock
// call (§3 "Block").
const BlockSize = 512

// whiteningKey returns the broadcast (WHITENING0, WHITENING1) key used to
// pre-mix input data before it reaches the accumulator.
func whiteningKey() Lane { return Lane{Lo: WHITENING0, Hi: WHITENING1} }

// rotateGroups performs a cyclic rotation of the 8 four-lane groups:
// group g takes the value previously held by group (g+1) mod 8.
func rotateGroups(acc *[NumLanes]Lane) {
	var next [NumLanes]Lane
	for g := 0; g < 8; g++ {
		src := (g + 1) % 8
		for j := 0; j < 4; j++ {
			next[g*4+j] = acc[src*4+j]
		}
	}
	*acc = next
}

// rotateWithinGroups rotates the 4 lanes inside every group by 1
// (Steps 3 and 6).
func rotateWithinGroups(acc *[NumLanes]Lane) {
	var next [NumLanes]Lane
	for g := 0; g < 8; g++ {
		for j := 0; j < 4; j++ {
			next[g*4+j] = acc[g*4+(j+1)%4]
		}
	}
	*acc = next
}

// crossDiffuse applies one asymmetric XOR/ADD diffusion stage between the
// given group pairs (Step 4).
func crossDiffuse(acc *[NumLanes]Lane, pairs [4][2]int) {
	for _, p := range pairs {
		loGroup, hiGroup := p[0], p[1]
		for j := 0; j < 4; j++ {
			loIdx, hiIdx := loGroup*4+j, hiGroup*4+j
			lo, hi := acc[loIdx], acc[hiIdx]
			acc[loIdx] = lo.XOR(hi)
			acc[hiIdx] = hi.Add64(lo)
		}
	}
}

// halfRound runs the 5-round AESENC/feedback/group-rotation procedure
// shared by compression Steps 2 and 5, mutating acc and d in place. Lane i
// always reads d[i]; Step 5 gets its +4-group data rotation by passing the
// permuted copy built by rotatedView.
func halfRound(acc *[NumLanes]Lane, d *[NumLanes]Lane, rks []Lane, blockIdx uint64, backend Backend) {
	bi := Broadcast(blockIdx)
	for _, rk := range rks {
		for i := 0; i < NumLanes; i++ {
			keyMat := d[i].Add64(rk).AddScalar(LANE_OFFSETS[i]).Add64(bi)
			acc[i] = backend.AESEnc(acc[i], keyMat)
		}
		var nextD [NumLanes]Lane
		for i := 0; i < NumLanes; i++ {
			nextD[i] = d[i].XOR(acc[(i+12)%NumLanes])
		}
		*d = nextD
		rotateGroups(acc)
	}
}

// rotatedView returns a copy of d permuted so that lane i reads from data
// group (i/4 + 4) mod 8, lane-in-group unchanged — the Step 5 data source.
func rotatedView(d *[NumLanes]Lane) [NumLanes]Lane {
	var out [NumLanes]Lane
	for i := 0; i < NumLanes; i++ {
		srcGroup := (i/4 + 4) % 8
		out[i] = d[srcGroup*4+i%4]
	}
	return out
}

// CompressBlock updates acc with one 512-byte block and advances
// *blockIdx (§4.3). block must be exactly BlockSize bytes.
func CompressBlock(acc *[NumLanes]Lane, block []byte, blockIdx *uint64, backend Backend) {
	var d [NumLanes]Lane
	wk := whiteningKey()
	for i := 0; i < NumLanes; i++ {
		d[i] = backend.AESEnc(LoadLane(block[i*16:i*16+16]), wk)
	}

	s := *acc

	halfRound(acc, &d, RK_CHAIN[0:5], *blockIdx, backend)
	rotateWithinGroups(acc)

	crossDiffuse(acc, [4][2]int{{0, 4}, {1, 5}, {2, 6}, {3, 7}})
	crossDiffuse(acc, [4][2]int{{0, 2}, {1, 3}, {4, 6}, {5, 7}})

	d2 := rotatedView(&d)
	halfRound(acc, &d2, RK_CHAIN[5:10], *blockIdx, backend)
	rotateWithinGroups(acc)

	for i := 0; i < NumLanes; i++ {
		acc[i] = acc[i].XOR(s[i])
	}

	*blockIdx++
}
