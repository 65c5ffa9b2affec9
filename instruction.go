// Copyright 2016 The wasm Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasmcore

import "math"

// Opcode is a single WebAssembly 1.0 instruction byte.
type Opcode byte

const (
	OpUnreachable  Opcode = 0x00
	OpNop          Opcode = 0x01
	OpBlock        Opcode = 0x02
	OpLoop         Opcode = 0x03
	OpIf           Opcode = 0x04
	OpElse         Opcode = 0x05
	OpEnd          Opcode = 0x0b
	OpBr           Opcode = 0x0c
	OpBrIf         Opcode = 0x0d
	OpBrTable      Opcode = 0x0e
	OpReturn       Opcode = 0x0f
	OpCall         Opcode = 0x10
	OpCallIndirect Opcode = 0x11

	OpDrop   Opcode = 0x1a
	OpSelect Opcode = 0x1b

	OpGetLocal  Opcode = 0x20
	OpSetLocal  Opcode = 0x21
	OpTeeLocal  Opcode = 0x22
	OpGetGlobal Opcode = 0x23
	OpSetGlobal Opcode = 0x24

	OpI32Load    Opcode = 0x28
	OpI64Load    Opcode = 0x29
	OpF32Load    Opcode = 0x2a
	OpF64Load    Opcode = 0x2b
	OpI32Load8S  Opcode = 0x2c
	OpI32Load8U  Opcode = 0x2d
	OpI32Load16S Opcode = 0x2e
	OpI32Load16U Opcode = 0x2f
	OpI64Load8S  Opcode = 0x30
	OpI64Load8U  Opcode = 0x31
	OpI64Load16S Opcode = 0x32
	OpI64Load16U Opcode = 0x33
	OpI64Load32S Opcode = 0x34
	OpI64Load32U Opcode = 0x35
	OpI32Store   Opcode = 0x36
	OpI64Store   Opcode = 0x37
	OpF32Store   Opcode = 0x38
	OpF64Store   Opcode = 0x39
	OpI32Store8  Opcode = 0x3a
	OpI32Store16 Opcode = 0x3b
	OpI64Store8  Opcode = 0x3c
	OpI64Store16 Opcode = 0x3d
	OpI64Store32 Opcode = 0x3e

	OpCurrentMemory Opcode = 0x3f
	OpGrowMemory    Opcode = 0x40

	OpI32Const Opcode = 0x41
	OpI64Const Opcode = 0x42
	OpF32Const Opcode = 0x43
	OpF64Const Opcode = 0x44

	// opNumericLo and opNumericHi bound the contiguous run of comparison,
	// arithmetic, bitwise, conversion, and reinterpret instructions
	// (i32.eqz through f64.reinterpret_i64) that take no immediates at all.
	opNumericLo Opcode = 0x45
	opNumericHi Opcode = 0xbf

	// OpSimdPrefix (the "misc"/SIMD escape byte) is recognized as a prefix
	// requiring a further VarUint32 sub-opcode; see simd_on.go / simd_off.go.
	OpSimdPrefix Opcode = 0xfc
)

// Instruction is a single decoded WebAssembly instruction. It is a flat
// record rather than one Go type per opcode: only the fields relevant to
// Op are populated, mirroring how the memory/variable/constant immediate
// shapes below are each shared by many opcodes.
type Instruction struct {
	Op Opcode

	Block BlockType // block / loop / if

	LabelIndex uint32   // br / br_if
	Labels     []uint32 // br_table jump table
	Default    uint32   // br_table default label

	FuncIndex uint32 // call
	TypeIndex uint32 // call_indirect

	LocalIndex  uint32 // get_local / set_local / tee_local
	GlobalIndex uint32 // get_global / set_global

	Align  uint32 // memory load/store
	Offset uint32 // memory load/store

	I32 int32  // i32.const
	I64 int64  // i64.const
	F32 uint32 // f32.const, raw IEEE-754 bits
	F64 uint64 // f64.const, raw IEEE-754 bits
}

// isBlock reports whether ins opens a new nesting level that decodeExpression
// must balance with a matching end.
func (ins Instruction) isBlock() bool {
	switch ins.Op {
	case OpBlock, OpLoop, OpIf:
		return true
	default:
		return false
	}
}

// isEnd reports whether ins is the "end" opcode that closes a nesting level.
func (ins Instruction) isEnd() bool { return ins.Op == OpEnd }

// isMemoryOp reports whether op is one of the twenty-three load/store
// instructions (0x28 through 0x3e), each of which takes a VarUint32 alignment hint followed by
// a VarUint32 byte offset.
func isMemoryOp(op Opcode) bool {
	return op >= OpI32Load && op <= OpI64Store32
}

func decodeMemoryRef(r Reader) error {
	b, err := mustByte(r)
	if err != nil {
		return err
	}
	if b != 0 {
		return &InvalidMemoryReferenceError{Byte: b}
	}
	return nil
}

func decodeTableRef(r Reader) error {
	b, err := mustByte(r)
	if err != nil {
		return err
	}
	if b != 0 {
		return &InvalidTableReferenceError{Byte: b}
	}
	return nil
}

// decodeInstruction decodes exactly one instruction, including any
// immediates, but does not interpret it as part of a larger sequence —
// that is decodeExpression's and decodeInitExpr's job.
func decodeInstruction(r Reader, limit uint64) (Instruction, error) {
	b, err := mustByte(r)
	if err != nil {
		return Instruction{}, err
	}
	op := Opcode(b)

	switch {
	case op == OpUnreachable, op == OpNop, op == OpElse, op == OpEnd,
		op == OpReturn, op == OpDrop, op == OpSelect:
		return Instruction{Op: op}, nil

	case op >= opNumericLo && op <= opNumericHi:
		return Instruction{Op: op}, nil

	case op == OpBlock, op == OpLoop, op == OpIf:
		bt, err := decodeBlockType(r)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Block: bt}, nil

	case op == OpBr, op == OpBrIf:
		idx, err := decodeVarUint32(r)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, LabelIndex: idx}, nil

	case op == OpBrTable:
		labels, err := decodeVector(r, limit, decodeLabelIndex)
		if err != nil {
			return Instruction{}, err
		}
		def, err := decodeVarUint32(r)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Labels: labels, Default: def}, nil

	case op == OpCall:
		idx, err := decodeVarUint32(r)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, FuncIndex: idx}, nil

	case op == OpCallIndirect:
		idx, err := decodeVarUint32(r)
		if err != nil {
			return Instruction{}, err
		}
		if err := decodeTableRef(r); err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, TypeIndex: idx}, nil

	case op == OpGetLocal, op == OpSetLocal, op == OpTeeLocal:
		idx, err := decodeVarUint32(r)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, LocalIndex: idx}, nil

	case op == OpGetGlobal, op == OpSetGlobal:
		idx, err := decodeVarUint32(r)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, GlobalIndex: idx}, nil

	case isMemoryOp(op):
		align, err := decodeVarUint32(r)
		if err != nil {
			return Instruction{}, err
		}
		offset, err := decodeVarUint32(r)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, Align: align, Offset: offset}, nil

	case op == OpCurrentMemory, op == OpGrowMemory:
		if err := decodeMemoryRef(r); err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op}, nil

	case op == OpI32Const:
		v, err := decodeVarInt32(r)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, I32: v}, nil

	case op == OpI64Const:
		v, err := decodeVarInt64(r)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, I64: v}, nil

	case op == OpF32Const:
		v, err := decodeUint32(r)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, F32: v}, nil

	case op == OpF64Const:
		v, err := decodeUint64(r)
		if err != nil {
			return Instruction{}, err
		}
		return Instruction{Op: op, F64: v}, nil

	case op == OpSimdPrefix:
		return decodeSimdPrefix(r, b)

	default:
		return Instruction{}, &UnknownOpcodeError{Byte: b}
	}
}

func decodeLabelIndex(r Reader) (uint32, error) { return decodeVarUint32(r) }

// decodeExpression decodes a function body's instruction sequence. Nesting
// starts at depth 1 (the implicit outer block of the function itself);
// block/loop/if push a level, end pops one, and the sequence terminates the
// instant the pop brings depth back to zero — the terminating end is
// included in the result. A depth overflow (more nested blocks than fit in
// an int) fails rather than looping forever on malformed input.
func decodeExpression(r Reader, limit uint64) ([]Instruction, error) {
	depth := 1
	var out []Instruction
	for {
		ins, err := decodeInstruction(r, limit)
		if err != nil {
			return nil, err
		}
		out = append(out, ins)
		if ins.isEnd() {
			depth--
		} else if ins.isBlock() {
			if depth == math.MaxInt {
				return nil, &OtherError{Msg: "too many instructions"}
			}
			depth++
		}
		if depth == 0 {
			return out, nil
		}
	}
}

// decodeInitExpr decodes a constant initializer expression (a global's
// initial value or an element/data segment's offset). Unlike
// decodeExpression it terminates at the very first end and never nests —
// a block/loop/if here is simply another instruction in the straight-line
// sequence, never a reason to keep reading past a terminating end.
//
// The instructions collected before the terminator are retained in the
// returned slice.
func decodeInitExpr(r Reader, limit uint64) ([]Instruction, error) {
	var out []Instruction
	for {
		ins, err := decodeInstruction(r, limit)
		if err != nil {
			return nil, err
		}
		out = append(out, ins)
		if ins.isEnd() {
			return out, nil
		}
	}
}
