//go:build simd

// Copyright 2016 The wasm Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasmcore

// decodeSimdPrefix handles opcode 0xFC under the "simd" build tag: the MVP
// decoder still does not understand any SIMD instruction, but it now
// reports which SIMD sub-opcode it was asked for instead of folding it into
// the generic unknown-opcode failure.
func decodeSimdPrefix(r Reader, prefix byte) (Instruction, error) {
	sub, err := decodeVarUint32(r)
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{}, &UnknownSimdOpcodeError{Opcode: sub}
}
