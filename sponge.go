// Copyright © 2023 by Andrew Ekstedt <andrew.ekstedt@gmail.com>
// All rights reserved. See LICENSE for details.

package ascon

// mode selects what duplexBlocks and duplexTail do with each input word.
type mode int

const (
	// absorbOnly xors the input into the rate.
	absorbOnly mode = iota
	// duplexEncrypt xors plaintext into the rate and emits the result.
	duplexEncrypt
	// duplexDecrypt emits rate^ciphertext and replaces the rate with the ciphertext.
	duplexDecrypt
)

// duplexWord processes one full input word against s[i].
// dst may be nil in absorbOnly mode.
// dst and src may overlap exactly.
func (s *state) duplexWord(m mode, i int, dst, src []byte) {
	x := le64dec(src)
	switch m {
	case absorbOnly:
		s[i] ^= x
	case duplexEncrypt:
		s[i] ^= x
		le64enc(dst, s[i])
	case duplexDecrypt:
		le64enc(dst, s[i]^x)
		s[i] = x
	}
}

// duplexBlocks processes whole blocks of rate words,
// permuting for the given number of rounds after each block.
// len(src) must be a multiple of 8*rate.
func (s *state) duplexBlocks(m mode, rate, rounds int, dst, src []byte) {
	bs := 8 * rate
	if len(src)%bs != 0 {
		panic("ascon: internal error")
	}
	for len(src) > 0 {
		for i := 0; i < rate; i++ {
			var out []byte
			if dst != nil {
				out = dst[8*i:]
			}
			s.duplexWord(m, i, out, src[8*i:])
		}
		src = src[bs:]
		if dst != nil {
			dst = dst[bs:]
		}
		s.permute(rounds)
	}
}

// duplexTail processes the final, short block and applies the padding.
// len(tail) must be less than 8*rate; it may be zero.
// No permutation is done afterwards.
func (s *state) duplexTail(m mode, rate int, dst, tail []byte) {
	if len(tail) >= 8*rate {
		panic("ascon: internal error")
	}
	w := 0
	for len(tail) >= 8 {
		var out []byte
		if dst != nil {
			out = dst
			dst = dst[8:]
		}
		s.duplexWord(m, w, out, tail)
		tail = tail[8:]
		w++
	}

	n := len(tail)
	x := le64decPartial(tail)
	switch m {
	case absorbOnly:
		s[w] ^= pad(x, n)
	case duplexEncrypt:
		s[w] ^= pad(x, n)
		le64encPartial(dst[:n], s[w])
	case duplexDecrypt:
		le64encPartial(dst[:n], s[w]^x)
		// The low n bytes become the ciphertext,
		// everything above keeps the padded state.
		mask := uint64(1)<<(8*n) - 1
		s[w] = pad(s[w], n)&^mask | x
	}
}

// duplex runs src through the sponge: whole blocks followed by the padded tail.
func (s *state) duplex(m mode, rate, rounds int, dst, src []byte) {
	full, tail := split(src, 8*rate)
	s.duplexBlocks(m, rate, rounds, dst, full)
	if dst != nil {
		dst = dst[len(full):]
	}
	s.duplexTail(m, rate, dst, tail)
}
