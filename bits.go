// Copyright © 2023 by Andrew Ekstedt <andrew.ekstedt@gmail.com>
// All rights reserved. See LICENSE for details.

// byte manipulation

package ascon

import "encoding/binary"

func le64dec(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}

func le64enc(b []byte, x uint64) {
	binary.LittleEndian.PutUint64(b, x)
}

// le64decPartial loads up to 8 bytes, zero-extended.
func le64decPartial(b []byte) uint64 {
	var x uint64
	for i := range b {
		x |= uint64(b[i]) << (8 * i)
	}
	return x
}

// le64encPartial stores the low len(b) bytes of x.
func le64encPartial(b []byte, x uint64) {
	for i := range b {
		b[i] = byte(x >> (8 * i))
	}
}

// pad sets the marker bit just past the last of size data bytes in v.
// The bytes of v above size must be zero.
func pad(v uint64, size int) uint64 {
	return v ^ 1<<(8*size)
}

// split returns the longest prefix of b that is a whole number of blocks,
// and the remainder.
func split(b []byte, blockSize int) (full, tail []byte) {
	n := len(b) - len(b)%blockSize
	return b[:n], b[n:]
}

// sliceForAppend extends in by n bytes, reusing its capacity if possible.
// head is the extended slice and tail the n new bytes.
func sliceForAppend(in []byte, n int) (head, tail []byte) {
	if total := len(in) + n; cap(in) >= total {
		head = in[:total]
	} else {
		head = make([]byte, total)
		copy(head, in)
	}
	tail = head[len(in):]
	return
}
