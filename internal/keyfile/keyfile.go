// Copyright © 2023 by Andrew Ekstedt <andrew.ekstedt@gmail.com>
// All rights reserved. See LICENSE for details.

// Package keyfile stores Ascon-AEAD128 key material as hex strings in a TOML file.
package keyfile

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	ascon "github.com/magical/go-ascon128"
)

// File is the TOML-able form of a key and a nonce.
type File struct {
	Key   string
	Nonce string
}

// Generate returns a File holding a fresh random key and nonce.
func Generate() (*File, error) {
	var b [ascon.KeySize + ascon.NonceSize]byte
	if _, err := rand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}
	return &File{
		Key:   hex.EncodeToString(b[:ascon.KeySize]),
		Nonce: hex.EncodeToString(b[ascon.KeySize:]),
	}, nil
}

// Load reads a key file.
func Load(path string) (*File, error) {
	f := new(File)
	if _, err := toml.DecodeFile(path, f); err != nil {
		return nil, fmt.Errorf("reading key file %s: %w", path, err)
	}
	return f, nil
}

// Save writes f to path, readable only by its owner.
func (f *File) Save(path string) error {
	fd, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(fd).Encode(f); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

// Decode returns the raw key and nonce, checking their lengths.
func (f *File) Decode() (key, nonce []byte, err error) {
	if key, err = DecodeHex("key", f.Key, ascon.KeySize); err != nil {
		return nil, nil, err
	}
	if nonce, err = DecodeHex("nonce", f.Nonce, ascon.NonceSize); err != nil {
		return nil, nil, err
	}
	return key, nonce, nil
}

// DecodeHex decodes a hex string that must hold exactly size bytes.
func DecodeHex(name, s string, size int) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("parsing %s hex: %w", name, err)
	}
	if len(b) != size {
		return nil, fmt.Errorf("%s must be exactly %d bytes long, got %d", name, size, len(b))
	}
	return b, nil
}
