// Copyright © 2023 by Andrew Ekstedt <andrew.ekstedt@gmail.com>
// All rights reserved. See LICENSE for details.

package ascon

import (
	"errors"
	"hash"
	"io"
)

const HashSize = 256 / 8 // bytes
const BlockSize = 64 / 8 // bytes

// MaxCustomizationSize is the longest customization string accepted by NewCxof128.
const MaxCustomizationSize = 2048 / 8

// ErrCustomizationTooLong is returned by NewCxof128.
var ErrCustomizationTooLong = errors.New("ascon: customization string too long")

// Sum256 returns the Ascon-Hash256 digest of data.
func Sum256(data []byte) [HashSize]byte {
	var s state
	s.initHash(ivHash256)
	s.duplex(absorbOnly, hashRate, roundsH, nil, data)

	// Squeeze
	var out [HashSize]byte
	for i := 0; i < HashSize; i += 8 {
		s.permute(roundsH)
		le64enc(out[i:], s[0])
	}
	return out
}

// SumXof128 returns n bytes of Ascon-XOF128 output for data.
func SumXof128(data []byte, n int) []byte {
	x := NewXof128()
	x.Write(data)
	out := make([]byte, n)
	x.Read(out)
	return out
}

func (s *state) initHash(iv uint64) {
	*s = state{iv, 0, 0, 0, 0}
	s.permute(roundsH)
}

// digest is the sponge shared by Hash256, Xof128 and Cxof128.
type digest struct {
	s   state
	buf [BlockSize]byte
	len uint8 // number of bytes in buf

	initialized bool
	doneWriting bool
}

func (d *digest) write(b []byte) {
	if d.doneWriting {
		panic("ascon: Write called after Read")
	}
	const bs = BlockSize
	// try to empty the buffer, if it isn't empty already
	if d.len > 0 {
		n := copy(d.buf[d.len:], b)
		d.len += uint8(n)
		b = b[n:]
		if d.len < bs {
			return
		}
		d.s.duplexBlocks(absorbOnly, hashRate, roundsH, nil, d.buf[:])
		d.len = 0
	}
	// absorb bytes directly, skipping the buffer
	full, tail := split(b, bs)
	d.s.duplexBlocks(absorbOnly, hashRate, roundsH, nil, full)
	// store any remaining bytes in the buffer
	d.len = uint8(copy(d.buf[:], tail))
}

// finish absorbs the buffered bytes with padding
// and prepares the buffer for squeezing.
func (d *digest) finish() {
	d.s.duplexTail(absorbOnly, hashRate, nil, d.buf[:d.len])
	// an exhausted buffer makes the first read permute
	d.len = BlockSize
	d.doneWriting = true
}

// read squeezes len(p) bytes.
//
// While squeezing, buf holds the current output block
// and len is the number of bytes of it already read.
func (d *digest) read(p []byte) {
	if !d.doneWriting {
		d.finish()
	}
	const bs = BlockSize
	for len(p) > 0 {
		if d.len == bs {
			d.s.permute(roundsH)
			le64enc(d.buf[:], d.s[0])
			d.len = 0
		}
		n := copy(p, d.buf[d.len:])
		d.len += uint8(n)
		p = p[n:]
	}
}

// Hash256 provides an implementation of Ascon-Hash256 from NIST.SP.800-232.
// It implements the hash.Hash interface.
type Hash256 struct{ d digest }

var _ hash.Hash = (*Hash256)(nil)

func NewHash256() *Hash256 {
	h := new(Hash256)
	h.Reset()
	return h
}

// The size of the final hash, in bytes.
func (h *Hash256) Size() int { return HashSize }

// The data rate of the sponge, in bytes.
// Writes which are a multiple of BlockSize will be more performant.
func (h *Hash256) BlockSize() int { return BlockSize }

func (h *Hash256) Reset() {
	h.d = digest{initialized: true}
	h.d.s.initHash(ivHash256)
}

// Write absorbs more data into the hash. It never returns an error.
func (h *Hash256) Write(p []byte) (int, error) {
	if !h.d.initialized {
		h.Reset()
	}
	h.d.write(p)
	return len(p), nil
}

// Sum appends the message digest to b and returns the new slice.
// It does not modify the hash state.
func (h *Hash256) Sum(b []byte) []byte {
	if !h.d.initialized {
		h.Reset()
	}
	d := h.d
	var out [HashSize]byte
	d.read(out[:])
	return append(b, out[:]...)
}

// Clone returns a new copy of h.
func (h *Hash256) Clone() *Hash256 {
	c := *h
	return &c
}

// Xof128 is an implementation of the Ascon-XOF128 arbitrary-length hash algorithm.
// It implements io.ReadWriter; Write must not be called after Read.
type Xof128 struct{ d digest }

var _ io.ReadWriter = (*Xof128)(nil)

func NewXof128() *Xof128 {
	x := new(Xof128)
	x.Reset()
	return x
}

func (x *Xof128) Reset() {
	x.d = digest{initialized: true}
	x.d.s.initHash(ivXof128)
}

// The data rate of the sponge, in bytes.
func (x *Xof128) BlockSize() int { return BlockSize }

// Write absorbs more data. It panics if called after Read.
func (x *Xof128) Write(p []byte) (int, error) {
	if !x.d.initialized {
		x.Reset()
	}
	x.d.write(p)
	return len(p), nil
}

// Read reads len(p) bytes of output. The error is always nil.
func (x *Xof128) Read(p []byte) (int, error) {
	if !x.d.initialized {
		x.Reset()
	}
	x.d.read(p)
	return len(p), nil
}

// Clone returns a new copy of x.
func (x *Xof128) Clone() *Xof128 {
	c := *x
	return &c
}

// Cxof128 is an implementation of the Ascon-CXOF128 customized arbitrary-length hash algorithm.
type Cxof128 struct {
	d            digest
	initialState state
}

var _ io.ReadWriter = (*Cxof128)(nil)

// NewCxof128 returns a CXOF keyed to the customization string,
// which may be at most MaxCustomizationSize bytes.
func NewCxof128(customization string) (*Cxof128, error) {
	if len(customization) > MaxCustomizationSize {
		return nil, ErrCustomizationTooLong
	}
	x := new(Cxof128)
	s := &x.initialState
	s.initHash(ivCxof128)
	// absorb Z_0, the length of the customization string in bits
	s[0] ^= uint64(len(customization)) * 8
	s.permute(roundsH)
	// absorb the customization string, padded
	s.duplex(absorbOnly, hashRate, roundsH, nil, []byte(customization))
	s.permute(roundsH)
	x.d = digest{s: x.initialState, initialized: true}
	return x, nil
}

func (x *Cxof128) Reset() {
	if !x.d.initialized {
		panic("ascon: reset of uninitialized CXOF")
	}
	x.d = digest{s: x.initialState, initialized: true}
}

// The data rate of the sponge, in bytes.
func (x *Cxof128) BlockSize() int { return BlockSize }

// Write absorbs more data. It panics if called after Read.
func (x *Cxof128) Write(p []byte) (int, error) {
	if !x.d.initialized {
		panic("ascon: write to uninitialized CXOF")
	}
	x.d.write(p)
	return len(p), nil
}

// Read reads len(p) bytes of output. The error is always nil.
func (x *Cxof128) Read(p []byte) (int, error) {
	if !x.d.initialized {
		panic("ascon: read from uninitialized CXOF")
	}
	x.d.read(p)
	return len(p), nil
}

// Clone returns a new copy of x.
func (x *Cxof128) Clone() *Cxof128 {
	c := *x
	return &c
}
