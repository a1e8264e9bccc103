// Copyright © 2023 by Andrew Ekstedt <andrew.ekstedt@gmail.com>
// All rights reserved. See LICENSE for details.

package ascon

import (
	"crypto/cipher"
	"crypto/subtle"
	"errors"
	"fmt"
)

const (
	KeySize   = 128 / 8
	NonceSize = 128 / 8
	TagSize   = 128 / 8
)

// ErrAuthentication is returned when a ciphertext and tag do not verify.
var ErrAuthentication = errors.New("ascon: message authentication failed")

// A SizeError reports a key, nonce or tag of the wrong length.
type SizeError struct {
	Param string // "key", "nonce" or "tag"
	Len   int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("ascon: invalid %s size %d (want %d)", e.Param, e.Len, paramSize(e.Param))
}

func paramSize(param string) int {
	switch param {
	case "nonce":
		return NonceSize
	case "tag":
		return TagSize
	}
	return KeySize
}

func checkSize(param string, b []byte) error {
	if len(b) != paramSize(param) {
		return &SizeError{Param: param, Len: len(b)}
	}
	return nil
}

// TODO: "The number of processed plaintext and associated data blocks protected by the encryption algorithm is limited to a total of 2^64 blocks per key" (section 4.2.1)

// AEAD128 provides an implementation of Ascon-AEAD128 from NIST.SP.800-232.
// It implements the crypto/cipher.AEAD interface.
// It is safe for concurrent use.
type AEAD128 struct {
	k0, k1 uint64
}

var _ cipher.AEAD = (*AEAD128)(nil)

// NewAEAD128 returns an AEAD128 using the given 16-byte key.
func NewAEAD128(key []byte) (*AEAD128, error) {
	if err := checkSize("key", key); err != nil {
		return nil, err
	}
	return &AEAD128{k0: le64dec(key[0:]), k1: le64dec(key[8:])}, nil
}

func (*AEAD128) NonceSize() int { return NonceSize }
func (*AEAD128) Overhead() int  { return TagSize }

// Seal encrypts and authenticates a plaintext
// and appends ciphertext and tag to dst, returning the appended slice.
// To reuse plaintext's storage for the output, use plaintext[:0] as dst.
func (a *AEAD128) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	if len(nonce) != NonceSize {
		panic(fmt.Sprintf("ascon: bad nonce (len %d)", len(nonce)))
	}
	ret, out := sliceForAppend(dst, len(plaintext)+TagSize)
	t0, t1 := a.seal(out[:len(plaintext)], nonce, plaintext, additionalData)
	le64enc(out[len(plaintext):], t0)
	le64enc(out[len(plaintext)+8:], t1)
	return ret
}

// Open decrypts and authenticates a ciphertext with the tag appended
// and appends the plaintext to dst, returning the appended slice.
// To reuse ciphertext's storage for the output, use ciphertext[:0] as dst.
// If the tag does not verify, nothing is appended
// and ErrAuthentication is returned.
func (a *AEAD128) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		panic(fmt.Sprintf("ascon: bad nonce (len %d)", len(nonce)))
	}
	if len(ciphertext) < TagSize {
		return nil, ErrAuthentication
	}
	n := len(ciphertext) - TagSize
	tag := ciphertext[n:]
	ciphertext = ciphertext[:n]

	ret, out := sliceForAppend(dst, n)
	if !a.open(out, nonce, ciphertext, additionalData, tag) {
		return nil, ErrAuthentication
	}
	return ret, nil
}

// Encrypt encrypts and authenticates plaintext with Ascon-AEAD128,
// returning a ciphertext of the same length and a separate tag.
// The only errors are size errors for key and nonce.
func Encrypt(key, nonce, additionalData, plaintext []byte) (ciphertext []byte, tag [TagSize]byte, err error) {
	a, err := NewAEAD128(key)
	if err != nil {
		return nil, tag, err
	}
	if err := checkSize("nonce", nonce); err != nil {
		return nil, tag, err
	}
	ciphertext = make([]byte, len(plaintext))
	t0, t1 := a.seal(ciphertext, nonce, plaintext, additionalData)
	le64enc(tag[0:], t0)
	le64enc(tag[8:], t1)
	return ciphertext, tag, nil
}

// Decrypt checks tag and decrypts ciphertext with Ascon-AEAD128.
// If the tag does not verify it returns ErrAuthentication and no plaintext.
func Decrypt(key, nonce, additionalData, ciphertext, tag []byte) ([]byte, error) {
	a, err := NewAEAD128(key)
	if err != nil {
		return nil, err
	}
	if err := checkSize("nonce", nonce); err != nil {
		return nil, err
	}
	if err := checkSize("tag", tag); err != nil {
		return nil, err
	}
	plaintext := make([]byte, len(ciphertext))
	if !a.open(plaintext, nonce, ciphertext, additionalData, tag) {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

// seal writes the ciphertext to dst, which must be len(plaintext) bytes,
// and returns the tag words.
func (a *AEAD128) seal(dst, nonce, plaintext, additionalData []byte) (t0, t1 uint64) {
	var s state
	s.initAEAD(a.k0, a.k1, nonce)
	s.mixAdditionalData(additionalData)
	s.duplex(duplexEncrypt, aeadRate, roundsB, dst, plaintext)
	return s.finalizeAEAD(a.k0, a.k1)
}

// open writes the candidate plaintext to dst and reports whether the tag verified.
// On failure dst is zeroed.
func (a *AEAD128) open(dst, nonce, ciphertext, additionalData, tag []byte) bool {
	var s state
	s.initAEAD(a.k0, a.k1, nonce)
	s.mixAdditionalData(additionalData)
	s.duplex(duplexDecrypt, aeadRate, roundsB, dst, ciphertext)
	t0, t1 := s.finalizeAEAD(a.k0, a.k1)

	// Check tag in constant time
	t0 ^= le64dec(tag[0:])
	t1 ^= le64dec(tag[8:])
	t := uint32(t0>>32) | uint32(t0)
	t |= uint32(t1>>32) | uint32(t1)
	if subtle.ConstantTimeEq(int32(t), 0) == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return false
	}
	return true
}

// Initialize
// IV || key || nonce
func (s *state) initAEAD(k0, k1 uint64, nonce []byte) {
	s[0] = ivAEAD128
	s[1] = k0
	s[2] = k1
	s[3] = le64dec(nonce[0:])
	s[4] = le64dec(nonce[8:])
	s.permute(roundsA)
	// mix the key in again
	s[3] ^= k0
	s[4] ^= k1
}

func (s *state) mixAdditionalData(ad []byte) {
	// If there is no additional data, nothing is added
	// and no padding is applied
	if len(ad) > 0 {
		s.duplex(absorbOnly, aeadRate, roundsB, nil, ad)
		s.permute(roundsB)
	}
	// domain-separation constant
	s[4] ^= dsep
}

// finalizeAEAD returns the two tag words.
// note: no round is done after the final message block
func (s *state) finalizeAEAD(k0, k1 uint64) (t0, t1 uint64) {
	s[2] ^= k0
	s[3] ^= k1
	s.permute(roundsA)
	s[3] ^= k0
	s[4] ^= k1
	return s[3], s[4]
}
