// Copyright 2016 The wasm Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasmcore

import "fmt"

// ValueType is one of the four WebAssembly 1.0 value types, encoded on the
// wire as a VarInt7.
type ValueType int8

const (
	ValueTypeI32 ValueType = -0x01
	ValueTypeI64 ValueType = -0x02
	ValueTypeF32 ValueType = -0x03
	ValueTypeF64 ValueType = -0x04
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	default:
		return fmt.Sprintf("ValueType(%d)", int8(t))
	}
}

func decodeValueType(r Reader) (ValueType, error) {
	v, err := decodeVarInt7(r)
	if err != nil {
		return 0, err
	}
	switch ValueType(v) {
	case ValueTypeI32, ValueTypeI64, ValueTypeF32, ValueTypeF64:
		return ValueType(v), nil
	default:
		return 0, &UnknownValueTypeError{Value: v}
	}
}

// BlockType is the operand of block/loop/if: either a value type naming the
// block's single result, or the no-result marker 0x40. It is its own sum
// type rather than a bare ValueType alias because 0x40 is not itself a
// member of ValueType.
type BlockType struct {
	HasResult bool
	Result    ValueType
}

// blockTypeEmpty is the wire encoding for "no result".
const blockTypeEmpty int8 = -0x40

func decodeBlockType(r Reader) (BlockType, error) {
	v, err := decodeVarInt7(r)
	if err != nil {
		return BlockType{}, err
	}
	if v == blockTypeEmpty {
		return BlockType{}, nil
	}
	switch ValueType(v) {
	case ValueTypeI32, ValueTypeI64, ValueTypeF32, ValueTypeF64:
		return BlockType{HasResult: true, Result: ValueType(v)}, nil
	default:
		return BlockType{}, &UnknownValueTypeError{Value: v}
	}
}

// TableElementType is the element type of a table. WebAssembly 1.0 has
// exactly one: anyfunc.
type TableElementType int8

const TableElementTypeAnyFunc TableElementType = -0x10

func (t TableElementType) String() string {
	if t == TableElementTypeAnyFunc {
		return "anyfunc"
	}
	return fmt.Sprintf("TableElementType(%d)", int8(t))
}

func decodeTableElementType(r Reader) (TableElementType, error) {
	v, err := decodeVarInt7(r)
	if err != nil {
		return 0, err
	}
	if TableElementType(v) != TableElementTypeAnyFunc {
		return 0, &UnknownTableElementTypeError{Value: v}
	}
	return TableElementType(v), nil
}

// funcTypeForm is the byte that must introduce every func type: 0x60.
const funcTypeForm = 0x60

// FuncType is a function signature: zero or more parameter types and, in
// the MVP wire format, at most one result type (relaxed to
// maxFunctionResults under the "multivalue" build tag).
type FuncType struct {
	Params  []ValueType
	Results []ValueType
}

func (t FuncType) String() string {
	return fmt.Sprintf("%v -> %v", t.Params, t.Results)
}

func decodeFuncType(r Reader, limit uint64) (FuncType, error) {
	form, err := decodeVarUint7(r)
	if err != nil {
		return FuncType{}, err
	}
	if form != funcTypeForm {
		return FuncType{}, &UnknownFunctionFormError{Byte: form}
	}
	params, err := decodeVector(r, limit, decodeValueType)
	if err != nil {
		return FuncType{}, err
	}
	results, err := decodeVector(r, limit, decodeValueType)
	if err != nil {
		return FuncType{}, err
	}
	if uint64(len(results)) > maxFunctionResults {
		return FuncType{}, &OtherError{Msg: fmt.Sprintf("function type declares %d results, limit is %d", len(results), maxFunctionResults)}
	}
	return FuncType{Params: params, Results: results}, nil
}
