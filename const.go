// Copyright © 2023 by Andrew Ekstedt <andrew.ekstedt@gmail.com>
// All rights reserved. See LICENSE for details.

package ascon

// Section 2.6.1, Table 4 (page 13)
// p12 uses 0..12
// p8 uses 4..12
var roundc = [12]uint64{
	0x00000000000000f0,
	0x00000000000000e1,
	0x00000000000000d2,
	0x00000000000000c3,
	0x00000000000000b4,
	0x00000000000000a5,
	0x0000000000000096,
	0x0000000000000087,
	0x0000000000000078,
	0x0000000000000069,
	0x000000000000005a,
	0x000000000000004b,
}

// Initial values, NIST SP 800-232 Table 12.
// Layout (low to high): v (8 bits), a (4 bits), b (4 bits), t (16 bits), r/8 (8 bits).
const (
	ivAEAD128 = 0x00001000808c0001 // v=1 a=12 b=8 t=128 r=128
	ivHash256 = 0x0000080100cc0002 // v=2 a=12 b=12 t=256 r=64
	ivXof128  = 0x0000080000cc0003 // v=3 a=12 b=12 t=0 r=64
	ivCxof128 = 0x0000080000cc0004 // v=4 a=12 b=12 t=0 r=64
)

// Round counts.
const (
	roundsA = 12 // initialization and finalization
	roundsB = 8  // AEAD data blocks
	roundsH = 12 // hash, xof, cxof
)

// Rates, in 64-bit words.
const (
	aeadRate = 2
	hashRate = 1
)

// domain separation between associated data and message
const dsep = 0x80 << 56
