//go:build !simd

// Copyright 2016 The wasm Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasmcore

// decodeSimdPrefix handles opcode 0xFC, the SIMD/misc prefix byte. Without
// the "simd" build tag it is not recognized: byte 0xFC surfaces as an
// ordinary UnknownOpcodeError, the same as any other unassigned opcode.
func decodeSimdPrefix(r Reader, prefix byte) (Instruction, error) {
	return Instruction{}, &UnknownOpcodeError{Byte: prefix}
}
