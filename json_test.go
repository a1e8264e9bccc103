// Copyright © 2023 by Andrew Ekstedt <andrew.ekstedt@gmail.com>
// All rights reserved. See LICENSE for details.

package ascon

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// ACVP test vectors for SP 800-232, stored as json/<algorithm>/{simple,want}.json.

type jsonPrompt struct {
	TcId int `json:"tcId"`

	// Hash, XOF, CXOF
	Msg    string `json:"msg"`
	OutLen int    `json:"outLen"`
	Cs     string `json:"cs"`

	// AEAD
	Key       string `json:"key"`
	SecondKey string `json:"secondKey"` // for nonce masking
	Nonce     string `json:"nonce"`
	Pt        string `json:"pt"`
	Ct        string `json:"ct"`
	Ad        string `json:"ad"`
	Tag       string `json:"tag"`
	TagLen    int    `json:"tagLen"`
}

type jsonExpected struct {
	TcId int `json:"tcId"`

	// Hash, XOF, CXOF
	Md string `json:"md"`

	// AEAD
	Tag        string `json:"tag"`
	Ct         string `json:"ct"`
	Pt         string `json:"pt"`
	TestPassed *bool  `json:"testPassed"`
}

func loadJson(t *testing.T, dir string) ([]jsonPrompt, []jsonExpected) {
	t.Helper()
	read := func(name string, v interface{}) {
		f, err := os.Open(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			t.Skipf("skipping test because %s/%s is missing", dir, name)
		}
		require.NoError(t, err)
		defer f.Close()
		require.NoError(t, json.NewDecoder(f).Decode(v))
	}

	var prompts []jsonPrompt
	var expected []jsonExpected
	read("simple.json", &prompts)
	read("want.json", &expected)

	require.NotEmpty(t, prompts, "no tests loaded")
	require.Len(t, expected, len(prompts), "mismatch between simple.json and want.json")
	return prompts, expected
}

func unhex(t *testing.T, id int, name, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err, "tcId=%d: %s", id, name)
	return b
}

func checkHex(t *testing.T, id int, name string, actual []byte, expected string) {
	t.Helper()
	if !strings.EqualFold(expected, hex.EncodeToString(actual)) {
		t.Errorf("tcId=%d: %s: want %s, got %X", id, name, expected, actual)
	}
}

func TestHashJson(t *testing.T) {
	prompts, expected := loadJson(t, "json/hash")
	for i, tc := range prompts {
		msg := unhex(t, tc.TcId, "msg", tc.Msg)
		sum := Sum256(msg)
		checkHex(t, tc.TcId, "Sum256", sum[:], expected[i].Md)

		h := NewHash256()
		h.Write(msg)
		checkHex(t, tc.TcId, "Hash256", h.Sum(nil), expected[i].Md)
	}
}

func TestXofJson(t *testing.T) {
	prompts, expected := loadJson(t, "json/xof")
	for i, tc := range prompts {
		msg := unhex(t, tc.TcId, "msg", tc.Msg)
		checkHex(t, tc.TcId, "output", SumXof128(msg, tc.OutLen/8), expected[i].Md)
	}
}

func TestCxofJson(t *testing.T) {
	prompts, expected := loadJson(t, "json/cxof")
	for i, tc := range prompts {
		custom := unhex(t, tc.TcId, "cs", tc.Cs)
		msg := unhex(t, tc.TcId, "msg", tc.Msg)

		x, err := NewCxof128(string(custom))
		require.NoError(t, err)
		x.Write(msg)
		output := make([]byte, tc.OutLen/8)
		x.Read(output)
		checkHex(t, tc.TcId, "output", output, expected[i].Md)
	}
}

func TestAEADJson(t *testing.T) {
	prompts, expected := loadJson(t, "json/aead")
	for i, tc := range prompts {
		if tc.TagLen != 8*TagSize {
			// truncated tags are not supported
			continue
		}
		want := &expected[i]
		key := unhex(t, tc.TcId, "key", tc.Key)
		nonce := unhex(t, tc.TcId, "nonce", tc.Nonce)
		ad := unhex(t, tc.TcId, "ad", tc.Ad)

		if tc.SecondKey != "" {
			mask := unhex(t, tc.TcId, "secondKey", tc.SecondKey)
			for i, x := range mask {
				nonce[i] ^= x
			}
		}

		if tc.Pt != "" {
			ct, tag, err := Encrypt(key, nonce, ad, unhex(t, tc.TcId, "pt", tc.Pt))
			require.NoError(t, err)
			checkHex(t, tc.TcId, "ct", ct, want.Ct)
			checkHex(t, tc.TcId, "tag", tag[:], want.Tag)
		}
		if tc.Ct != "" {
			ct := unhex(t, tc.TcId, "ct", tc.Ct)
			tag := unhex(t, tc.TcId, "tag", tc.Tag)
			pt, err := Decrypt(key, nonce, ad, ct, tag)
			shouldPass := want.TestPassed == nil || *want.TestPassed
			switch {
			case err != nil && shouldPass:
				t.Errorf("tcId=%d: unexpected error: %v", tc.TcId, err)
			case err == nil && !shouldPass:
				t.Errorf("tcId=%d: Decrypt unexpectedly succeeded", tc.TcId)
			case err == nil && want.Pt != "":
				checkHex(t, tc.TcId, "pt", pt, want.Pt)
			}
		}
	}
}
