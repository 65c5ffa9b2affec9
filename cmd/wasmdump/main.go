// Copyright 2016 The wasm Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command wasmdump prints the section structure of a WebAssembly binary
// module. It is a thin demonstrator of the wasmcore decoder, not part of
// the decoder itself: it owns file opening, flag parsing, and diagnostic
// logging, none of which the library does on its own.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/wasmcore/wasmcore"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("wasm>> ")

	flag.Parse()

	fname := flag.Arg(0)
	f, err := os.Open(fname)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	mod, err := wasmcore.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("version: %d\n", mod.Version)
	fmt.Printf("#sections: %d\n", len(mod.Sections))
	for _, sec := range mod.Sections {
		fmt.Printf("section: %2d\n", sec.ID)
		if sec.ID == wasmcore.SectionExport {
			for _, exp := range sec.Exports {
				fmt.Printf("  export %q %s @%d\n", exp.Field, exp.Internal.Kind, exp.Internal.Index)
			}
		}
	}
}
