// Copyright © 2023 by Andrew Ekstedt <andrew.ekstedt@gmail.com>
// All rights reserved. See LICENSE for details.

// ascon encrypts, decrypts and hashes files with Ascon-AEAD128 and Ascon-Hash256.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := CLI().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ascon: %v\n", err)
		os.Exit(1)
	}
}
