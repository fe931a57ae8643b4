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

// Nothing-up-my-sleeve constants. Every 64-bit value below is
// floor(frac(ln(p)) * 2^64) for a consecutive prime p, or floor(frac(phi) *
// 2^64) for the golden ratio, following the same derivation rule the
// reference constants table used: no value here was chosen by hand.
const (
	C0 = 0xb17217f7d1cf79ab // floor(frac(ln(2))  * 2^64)
	C1 = 0x193ea7aad030a976 // floor(frac(ln(3))  * 2^64)
	C2 = 0x9c041f7ed8d336af // floor(frac(ln(5))  * 2^64)
	C3 = 0xf2272ae325a57546 // floor(frac(ln(7))  * 2^64)
	C5 = 0x65dc76efe6e976f7 // floor(frac(ln(11)) * 2^64)
	C6 = 0x90a08566318a1fd0 // floor(frac(ln(13)) * 2^64)
	C7 = 0xd54d783f4fef39df // floor(frac(ln(17)) * 2^64)

	// C4 is the golden-ratio constant (the spec derives C4 from phi rather
	// than a prime, to desymmetrise it from C0..C3/C5..C7).
	C4 = GOLDEN_RATIO

	WHITENING0 = 0xf1c6c0c096658e40 // floor(frac(ln(19)) * 2^64)
	WHITENING1 = 0x22afbfba367e0122 // floor(frac(ln(23)) * 2^64)

	CLMUL_CONSTANT  = 0x6f19c912256b3e22 // floor(frac(ln(31)) * 2^64)
	CLMUL_CONSTANT2 = 0x9c651dc758f7a6f2 // floor(frac(ln(37)) * 2^64)

	GOLDEN_RATIO = 0x9e3779b97f4a7c15 // floor(frac(phi) * 2^64), phi = (1+sqrt(5))/2
	CHAOS_BASE   = GOLDEN_RATIO

	// GF_POLY is the reduction byte for GF(2^8) with modulus x^8+x^4+x^3+x+1.
	GF_POLY = 0x1b
)

// LANE_OFFSETS holds one 64-bit constant per accumulator lane, derived from
// 32 consecutive primes 37..191. 37 is also CLMUL_CONSTANT2's source prime,
// so LANE_OFFSETS[0] == CLMUL_CONSTANT2 — the two concerns are allowed to
// share a source prime since "distinct" in the spec only binds the 32 lane
// offsets against each other, not against every other table.
var LANE_OFFSETS = [32]uint64{
	0x9c651dc758f7a6f2, // ln(37)
	0xb6aca8b1d589b575, // ln(41)
	0xc2de02c29d8222cb, // ln(43)
	0xd9a345f21e16cb31, // ln(47)
	0xf8650d044795568f, // ln(53)
	0x13d97e71ca5e2da9, // ln(59)
	0x1c623ac49b03386c, // ln(61)
	0x3466bc4a044b5829, // ln(67)
	0x433efd0935b23d6b, // ln(71)
	0x4a5b8cc88bf98cd3, // ln(73)
	0x5e94226bec5cbfb8, // ln(79)
	0x6b392358b9206784, // ln(83)
	0x7d1745eba2bd8e2d, // ln(89)
	0x9320423952fe003b, // ln(97)
	0x9d7889c6ee8c2f8e, // ln(101)
	0xa27d995644faf994, // ln(103)
	0xac3e82afd1d6dc79, // ln(107)
	0xb0fc2cc0554191f5, // ln(109)
	0xba36168ce0d6ee1d, // ln(113)
	0xd81ca5180b90858d, // ln(127)
	0xe00cee88b2189a5c, // ln(131)
	0xeb83deb56027349a, // ln(137)
	0xef39af05c2c4931b, // ln(139)
	0x0102a006f9cb3c2a, // ln(149)
	0x046c738e0014c2f8, // ln(151)
	0x0e662006821719e4, // ln(157)
	0x1800035e755ec056, // ln(163)
	0x1e34d7ad75d7a815, // ln(167)
	0x273e1e311ea1a70b, // ln(173)
	0x2ff88423d2160504, // ln(179)
	0x32d0b391a3caa870, // ln(181)
	0x4094fdcb1c2e7ee1, // ln(191)
}

// RK_CHAIN holds the ten 128-bit round keys shared by the compression and
// finalization rounds, derived from the twenty consecutive primes 197..311
// (193, the prime right after the lane offsets' range, is not used), two
// primes per round key.
var RK_CHAIN = [10]Lane{
	{0x48800a2108f04118, 0x4b160665f3618981}, // ln(197), ln(199)
	{0x5a135fe81c7eb508, 0x683c68c2468d7997}, // ln(211), ln(223)
	{0x6cc9863b846aad92, 0x6f0867bcd230a9f5}, // ln(227), ln(229)
	{0x7377418f4d97dd42, 0x79f983ed4826668c}, // ln(233), ln(239)
	{0x7c1ba6de8b1f8f86, 0x8684157528789d37}, // ln(241), ln(251)
	{0x8c904013a4042b60, 0x9278afc87a60335d}, // ln(257), ln(263)
	{0x983f0145f2edc31d, 0x9a247583fc017667}, // ln(269), ln(271)
	{0x9fbf9c7d34c2bd9a, 0xa36b362c098e99e2}, // ln(277), ln(281)
	{0xa53c0204aeaf7a3a, 0xae1fcac75d01262f}, // ln(283), ln(293)
	{0xba12b1a90eeb16f1, 0xbd63117b9f564eb3}, // ln(307), ln(311)
}

// groupC returns the initialization constant for lane group g (0..7), used
// by NewState to seed the 32-lane accumulator (§4.2 step 1).
func groupC(g int) uint64 {
	switch g {
	case 0:
		return C0
	case 1:
		return C1
	case 2:
		return C2
	case 3:
		return C3
	case 4:
		return C4
	case 5:
		return C5
	case 6:
		return C6
	default:
		return C7
	}
}

// sbox is the standard AES S-box used by the software AESENC SubBytes step.
var sbox = [256]byte{
	0x63, 0x7c, 0x77, 0x7b, 0xf2, 0x6b, 0x6f, 0xc5, 0x30, 0x01, 0x67, 0x2b, 0xfe, 0xd7, 0xab, 0x76,
	0xca, 0x82, 0xc9, 0x7d, 0xfa, 0x59, 0x47, 0xf0, 0xad, 0xd4, 0xa2, 0xaf, 0x9c, 0xa4, 0x72, 0xc0,
	0xb7, 0xfd, 0x93, 0x26, 0x36, 0x3f, 0xf7, 0xcc, 0x34, 0xa5, 0xe5, 0xf1, 0x71, 0xd8, 0x31, 0x15,
	0x04, 0xc7, 0x23, 0xc3, 0x18, 0x96, 0x05, 0x9a, 0x07, 0x12, 0x80, 0xe2, 0xeb, 0x27, 0xb2, 0x75,
	0x09, 0x83, 0x2c, 0x1a, 0x1b, 0x6e, 0x5a, 0xa0, 0x52, 0x3b, 0xd6, 0xb3, 0x29, 0xe3, 0x2f, 0x84,
	0x53, 0xd1, 0x00, 0xed, 0x20, 0xfc, 0xb1, 0x5b, 0x6a, 0xcb, 0xbe, 0x39, 0x4a, 0x4c, 0x58, 0xcf,
	0xd0, 0xef, 0xaa, 0xfb, 0x43, 0x4d, 0x33, 0x85, 0x45, 0xf9, 0x02, 0x7f, 0x50, 0x3c, 0x9f, 0xa8,
	0x51, 0xa3, 0x40, 0x8f, 0x92, 0x9d, 0x38, 0xf5, 0xbc, 0xb6, 0xda, 0x21, 0x10, 0xff, 0xf3, 0xd2,
	0xcd, 0x0c, 0x13, 0xec, 0x5f, 0x97, 0x44, 0x17, 0xc4, 0xa7, 0x7e, 0x3d, 0x64, 0x5d, 0x19, 0x73,
	0x60, 0x81, 0x4f, 0xdc, 0x22, 0x2a, 0x90, 0x88, 0x46, 0xee, 0xb8, 0x14, 0xde, 0x5e, 0x0b, 0xdb,
	0xe0, 0x32, 0x3a, 0x0a, 0x49, 0x06, 0x24, 0x5c, 0xc2, 0xd3, 0xac, 0x62, 0x91, 0x95, 0xe4, 0x79,
	0xe7, 0xc8, 0x37, 0x6d, 0x8d, 0xd5, 0x4e, 0xa9, 0x6c, 0x56, 0xf4, 0xea, 0x65, 0x7a, 0xae, 0x08,
	0xba, 0x78, 0x25, 0x2e, 0x1c, 0xa6, 0xb4, 0xc6, 0xe8, 0xdd, 0x74, 0x1f, 0x4b, 0xbd, 0x8b, 0x8a,
	0x70, 0x3e, 0xb5, 0x66, 0x48, 0x03, 0xf6, 0x0e, 0x61, 0x35, 0x57, 0xb9, 0x86, 0xc1, 0x1d, 0x9e,
	0xe1, 0xf8, 0x98, 0x11, 0x69, 0xd9, 0x8e, 0x94, 0x9b, 0x1e, 0x87, 0xe9, 0xce, 0x55, 0x28, 0xdf,
	0x8c, 0xa1, 0x89, 0x0d, 0xbf, 0xe6, 0x42, 0x68, 0x41, 0x99, 0x2d, 0x0f, 0xb0, 0x54, 0xbb, 0x16,
}
