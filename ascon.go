// Copyright © 2023 by Andrew Ekstedt <andrew.ekstedt@gmail.com>
// All rights reserved. See LICENSE for details.

package ascon

import "math/bits"

// https://doi.org/10.6028/NIST.SP.800-232

type state [5]uint64

// permute applies the last n rounds of the 12-round permutation p12.
func (s *state) permute(n int) {
	if n < 1 || n > len(roundc) {
		panic("ascon: invalid round count")
	}
	roundGeneric(s, roundc[len(roundc)-n:])
}

func roundGeneric(s *state, rounds []uint64) {
	var x0, x1, x2, x3, x4 uint64
	x0 = s[0]
	x1 = s[1]
	x2 = s[2]
	x3 = s[3]
	x4 = s[4]

	for _, r := range rounds {
		// Section 3.2, Constant-addition layer
		x2 ^= r

		// Section 3.3, Substitution layer, bit-sliced
		x0 ^= x4
		x4 ^= x3
		x2 ^= x1

		t0 := x0 ^ (^x1 & x2)
		t1 := x1 ^ (^x2 & x3)
		t2 := x2 ^ (^x3 & x4)
		t3 := x3 ^ (^x4 & x0)
		t4 := x4 ^ (^x0 & x1)

		t1 ^= t0
		t0 ^= t4
		t3 ^= t2
		t2 = ^t2

		// Section 3.4, Linear diffusion layer
		x0 = t0 ^ bits.RotateLeft64(t0, -19) ^ bits.RotateLeft64(t0, -28)
		x1 = t1 ^ bits.RotateLeft64(t1, -61) ^ bits.RotateLeft64(t1, -39)
		x2 = t2 ^ bits.RotateLeft64(t2, -1) ^ bits.RotateLeft64(t2, -6)
		x3 = t3 ^ bits.RotateLeft64(t3, -10) ^ bits.RotateLeft64(t3, -17)
		x4 = t4 ^ bits.RotateLeft64(t4, -7) ^ bits.RotateLeft64(t4, -41)
	}

	s[0] = x0
	s[1] = x1
	s[2] = x2
	s[3] = x3
	s[4] = x4
}
