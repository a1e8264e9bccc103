// Copyright © 2023 by Andrew Ekstedt <andrew.ekstedt@gmail.com>
// All rights reserved. See LICENSE for details.

// Package ascon implements Ascon-AEAD128 authenticated encryption and the
// Ascon-Hash256, Ascon-XOF128 and Ascon-CXOF128 hash functions,
// as specified in NIST SP 800-232.
//
// All byte strings are little-endian, as in the final standard.
// The earlier big-endian Ascon v1.2 variants are not implemented.
//
// https://csrc.nist.gov/pubs/sp/800/232/final
package ascon
