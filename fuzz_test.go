// Copyright © 2023 by Andrew Ekstedt <andrew.ekstedt@gmail.com>
// All rights reserved. See LICENSE for details.

//go:build go1.18

package ascon

import (
	"bytes"
	"testing"

	fuzz "github.com/trailofbits/go-fuzz-utils"
)

func FuzzAEAD128(f *testing.F) {
	f.Add(make([]byte, 64))
	f.Add(bytes.Repeat([]byte{0xa5}, 200))

	f.Fuzz(func(t *testing.T, data []byte) {
		tp, err := fuzz.NewTypeProvider(data)
		if err != nil {
			t.Skip(err)
		}
		key, err := getBlock(tp)
		if err != nil {
			t.Skip(err)
		}
		nonce, err := getBlock(tp)
		if err != nil {
			t.Skip(err)
		}
		ad, err := tp.GetBytes()
		if err != nil {
			t.Skip(err)
		}
		msg, err := tp.GetBytes()
		if err != nil {
			t.Skip(err)
		}
		noise, err := tp.GetByte()
		if err != nil {
			t.Skip(err)
		}
		noiseIndex, err := tp.GetUint16()
		if err != nil {
			t.Skip(err)
		}

		ciphertext, tag, err := Encrypt(key, nonce, ad, msg)
		if err != nil {
			t.Fatal(err)
		}
		if len(ciphertext) != len(msg) {
			t.Fatalf("ciphertext length %d, want %d", len(ciphertext), len(msg))
		}
		decrypted, err := Decrypt(key, nonce, ad, ciphertext, tag[:])
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(decrypted, msg) {
			t.Fatal("plaintext mismatch")
		}

		a, _ := NewAEAD128(key)
		sealed := a.Seal(nil, nonce, msg, ad)
		if !bytes.Equal(sealed[:len(msg)], ciphertext) || !bytes.Equal(sealed[len(msg):], tag[:]) {
			t.Fatal("Seal disagrees with Encrypt")
		}

		doNoise := func(name string, thing []byte) {
			if len(thing) > 0 {
				i := int(noiseIndex) % len(thing)
				thing[i] ^= noise
				out, err := Decrypt(key, nonce, ad, ciphertext, tag[:])
				thing[i] ^= noise
				if err == nil || out != nil {
					t.Error("Decrypt succeeded with a modified ", name)
				}
			}
		}
		if noise != 0 {
			doNoise("nonce", nonce)
			doNoise("key", key)
			doNoise("ciphertext", ciphertext)
			doNoise("additional data", ad)
			doNoise("tag", tag[:])
		}
	})
}

// getBlock reads a 16-byte key, nonce or tag.
func getBlock(tp *fuzz.TypeProvider) ([]byte, error) {
	b := make([]byte, 16)
	for i := 0; i < len(b); i += 8 {
		x, err := tp.GetUint64()
		if err != nil {
			return nil, err
		}
		le64enc(b[i:], x)
	}
	return b, nil
}

func FuzzHash256(f *testing.F) {
	f.Add([]byte{}, uint8(1))
	f.Add(seqBytes(100), uint8(7))

	f.Fuzz(func(t *testing.T, msg []byte, chunk uint8) {
		want := Sum256(msg)
		h := NewHash256()
		step := int(chunk) + 1
		for b := msg; len(b) > 0; {
			n := step
			if n > len(b) {
				n = len(b)
			}
			h.Write(b[:n])
			b = b[n:]
		}
		if got := h.Sum(nil); !bytes.Equal(got, want[:]) {
			t.Fatalf("chunked hash %x, want %x", got, want)
		}
	})
}
