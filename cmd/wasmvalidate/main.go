// Copyright 2016 The wasm Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command wasmvalidate decodes a WebAssembly binary module and checks that
// its export shape matches a minimal embedded-runtime convention: exactly
// one exported function named "main" taking and returning nothing, exactly
// one exported memory named "memory" at index 0, and no start section. It
// is a thin demonstrator built on top of wasmcore.Decode, not a general
// semantic validator — the decoder itself performs no validation beyond
// what the binary format's own structure requires.
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
		log.Fatal("decode: ", err)
	}

	if err := validateEntryPointShape(mod); err != nil {
		log.Fatal("validate: ", err)
	}
	fmt.Println("ok")
}

// funcSig looks up the declared signature of a function, indexed into the
// module's function index space (imports first, then the function
// section's own entries). It returns nil for an imported function, since an
// import's signature lives in the import entry, not the function/type
// sections this validator cares about.
func funcSig(mod *wasmcore.Module) func(idx uint32) *wasmcore.FuncType {
	var types []wasmcore.FuncType
	var typeIndices []uint32
	var numImportedFuncs uint32
	for _, sec := range mod.Sections {
		switch sec.ID {
		case wasmcore.SectionType:
			types = sec.Types
		case wasmcore.SectionFunction:
			typeIndices = sec.FunctionTypeIndices
		case wasmcore.SectionImport:
			for _, imp := range sec.Imports {
				if imp.Import.Kind == wasmcore.ExternalFunction {
					numImportedFuncs++
				}
			}
		}
	}
	return func(idx uint32) *wasmcore.FuncType {
		if idx < numImportedFuncs {
			return nil
		}
		idx -= numImportedFuncs
		if int(idx) >= len(typeIndices) {
			return nil
		}
		tyIdx := typeIndices[idx]
		if int(tyIdx) >= len(types) {
			return nil
		}
		return &types[tyIdx]
	}
}

func validateEntryPointShape(mod *wasmcore.Module) error {
	sig := funcSig(mod)
	var mainFunc, memory bool
	for _, sec := range mod.Sections {
		switch sec.ID {
		case wasmcore.SectionStart:
			return fmt.Errorf("module declares a start function, want none")
		case wasmcore.SectionExport:
			for _, exp := range sec.Exports {
				switch {
				case exp.Field == "main" && exp.Internal.Kind == wasmcore.InternalFunction:
					if mainFunc {
						return fmt.Errorf(`more than one exported function "main"`)
					}
					typ := sig(exp.Internal.Index)
					if typ == nil || len(typ.Params) != 0 || len(typ.Results) != 0 {
						return fmt.Errorf(`exported function "main" must take and return nothing`)
					}
					mainFunc = true
				case exp.Field == "memory" && exp.Internal.Kind == wasmcore.InternalMemory && exp.Internal.Index == 0:
					if memory {
						return fmt.Errorf(`more than one exported memory "memory" at index 0`)
					}
					memory = true
				}
			}
		}
	}
	if !mainFunc {
		return fmt.Errorf(`missing exported function "main"`)
	}
	if !memory {
		return fmt.Errorf(`missing exported memory "memory" at index 0`)
	}
	return nil
}
