// Copyright 2016 The wasm Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasmcore

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeExpressionBalancesNestedBlocks(t *testing.T) {
	// block (empty) / nop / end / end — one explicit block nested inside
	// the function's implicit outer block; both ends must be consumed.
	in := []byte{
		byte(OpBlock), 0x40,
		byte(OpNop),
		byte(OpEnd),
		byte(OpEnd),
	}
	ins, err := decodeExpression(bytes.NewReader(in), DefaultLimits.MaxDeclaredLength)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ins) != 4 {
		t.Fatalf("got %d instructions, want 4", len(ins))
	}
	if ins[len(ins)-1].Op != OpEnd {
		t.Fatalf("last instruction = %v, want end", ins[len(ins)-1].Op)
	}
}

func TestDecodeExpressionStopsAtOuterEnd(t *testing.T) {
	// A flat body with no nested blocks: i32.const 1 / end. Trailing bytes
	// after the terminating end must not be consumed.
	in := []byte{
		byte(OpI32Const), 0x01,
		byte(OpEnd),
		0xAA, 0xBB, // sentinel bytes that must remain unread
	}
	r := bytes.NewReader(in)
	ins, err := decodeExpression(r, DefaultLimits.MaxDeclaredLength)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ins) != 2 || ins[0].Op != OpI32Const || ins[0].I32 != 1 || ins[1].Op != OpEnd {
		t.Fatalf("unexpected instructions: %+v", ins)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 unread sentinel bytes, got %d", r.Len())
	}
}

func TestDecodeInitExprRetainsInstructions(t *testing.T) {
	// i32.const 42 / end — the fix for the historical bug where the
	// collected instructions were discarded instead of returned.
	in := []byte{byte(OpI32Const), 0x2a, byte(OpEnd)}
	ins, err := decodeInitExpr(bytes.NewReader(in), DefaultLimits.MaxDeclaredLength)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ins) != 2 {
		t.Fatalf("got %d instructions, want 2 (const, end)", len(ins))
	}
	if ins[0].Op != OpI32Const || ins[0].I32 != 42 {
		t.Fatalf("first instruction = %+v, want i32.const 42", ins[0])
	}
	if ins[1].Op != OpEnd {
		t.Fatalf("second instruction = %+v, want end", ins[1])
	}
}

func TestDecodeInitExprTerminatesAtFirstEnd(t *testing.T) {
	// Even a block-opening opcode inside an init expr does not nest — the
	// very first end closes the whole expression, unlike decodeExpression.
	in := []byte{
		byte(OpBlock), 0x40,
		byte(OpEnd),
		byte(OpEnd), // must remain unread
	}
	r := bytes.NewReader(in)
	ins, err := decodeInitExpr(r, DefaultLimits.MaxDeclaredLength)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ins) != 2 {
		t.Fatalf("got %d instructions, want 2", len(ins))
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 unread trailing byte, got %d", r.Len())
	}
}

func TestDecodeInstructionUnknownOpcode(t *testing.T) {
	_, err := decodeInstruction(bytes.NewReader([]byte{0xee}), DefaultLimits.MaxDeclaredLength)
	var target *UnknownOpcodeError
	if !errors.As(err, &target) {
		t.Fatalf("err = %v, want *UnknownOpcodeError", err)
	}
}

func TestDecodeInstructionMemoryOp(t *testing.T) {
	// i32.load align=2 offset=16
	in := []byte{byte(OpI32Load), 0x02, 0x10}
	ins, err := decodeInstruction(bytes.NewReader(in), DefaultLimits.MaxDeclaredLength)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ins.Align != 2 || ins.Offset != 16 {
		t.Fatalf("got align=%d offset=%d, want align=2 offset=16", ins.Align, ins.Offset)
	}
}

func TestDecodeInstructionCallIndirectRejectsNonzeroTableRef(t *testing.T) {
	in := []byte{byte(OpCallIndirect), 0x00, 0x01}
	_, err := decodeInstruction(bytes.NewReader(in), DefaultLimits.MaxDeclaredLength)
	var target *InvalidTableReferenceError
	if !errors.As(err, &target) {
		t.Fatalf("err = %v, want *InvalidTableReferenceError", err)
	}
}

func TestDecodeInstructionBrTable(t *testing.T) {
	// br_table with labels [1, 2] and default 3.
	in := []byte{byte(OpBrTable), 0x02, 0x01, 0x02, 0x03}
	ins, err := decodeInstruction(bytes.NewReader(in), DefaultLimits.MaxDeclaredLength)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ins.Labels) != 2 || ins.Labels[0] != 1 || ins.Labels[1] != 2 || ins.Default != 3 {
		t.Fatalf("unexpected br_table decode: %+v", ins)
	}
}
