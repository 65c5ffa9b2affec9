// Copyright 2016 The wasm Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasmcore

import "fmt"

// Limits bounds the resource consumption of a single decode: every
// length-prefixed allocation (a section's payload, a vector's backing
// slice, a string's bytes) is checked against MaxDeclaredLength before any
// memory for it is reserved.
type Limits struct {
	MaxDeclaredLength uint64
}

// DefaultLimits is used by Decode when the caller supplies none.
var DefaultLimits = Limits{MaxDeclaredLength: 1 << 30}

// ResizableLimits describes the initial and optional maximum size of a
// table or a linear memory.
type ResizableLimits struct {
	Initial uint32
	Maximum uint32
	HasMax  bool
}

const limitsFlagHasMax = 0x01

func decodeResizableLimits(r Reader) (ResizableLimits, error) {
	flags, err := mustByte(r)
	if err != nil {
		return ResizableLimits{}, err
	}
	if flags&^limitsFlagHasMax != 0 {
		return ResizableLimits{}, &InvalidLimitsFlagsError{Byte: flags}
	}
	initial, err := decodeVarUint32(r)
	if err != nil {
		return ResizableLimits{}, err
	}
	lim := ResizableLimits{Initial: initial}
	if flags&limitsFlagHasMax != 0 {
		max, err := decodeVarUint32(r)
		if err != nil {
			return ResizableLimits{}, err
		}
		lim.Maximum = max
		lim.HasMax = true
	}
	return lim, nil
}

// TableType describes a table import/definition: its element type (always
// anyfunc in 1.0) and its size limits.
type TableType struct {
	ElementType TableElementType
	Limits      ResizableLimits
}

func decodeTableType(r Reader) (TableType, error) {
	et, err := decodeTableElementType(r)
	if err != nil {
		return TableType{}, err
	}
	lim, err := decodeResizableLimits(r)
	if err != nil {
		return TableType{}, err
	}
	return TableType{ElementType: et, Limits: lim}, nil
}

// MemoryType describes a linear memory's size limits, in units of 64KiB
// pages.
type MemoryType struct {
	Limits ResizableLimits
}

func decodeMemoryType(r Reader) (MemoryType, error) {
	lim, err := decodeResizableLimits(r)
	if err != nil {
		return MemoryType{}, err
	}
	return MemoryType{Limits: lim}, nil
}

// GlobalType describes a global variable's value type and mutability.
type GlobalType struct {
	ContentType ValueType
	Mutable     bool
}

func decodeGlobalType(r Reader) (GlobalType, error) {
	ct, err := decodeValueType(r)
	if err != nil {
		return GlobalType{}, err
	}
	mut, err := decodeVarUint1(r)
	if err != nil {
		return GlobalType{}, err
	}
	return GlobalType{ContentType: ct, Mutable: mut}, nil
}

// ExternalKind discriminates the four kinds of importable/exportable
// entities.
type ExternalKind byte

const (
	ExternalFunction ExternalKind = 0
	ExternalTable    ExternalKind = 1
	ExternalMemory   ExternalKind = 2
	ExternalGlobal   ExternalKind = 3
)

func (k ExternalKind) String() string {
	switch k {
	case ExternalFunction:
		return "func"
	case ExternalTable:
		return "table"
	case ExternalMemory:
		return "memory"
	case ExternalGlobal:
		return "global"
	default:
		return fmt.Sprintf("ExternalKind(%d)", byte(k))
	}
}

// Import is the tagged payload of an import entry: exactly one of the
// fields below is meaningful, selected by Kind.
type Import struct {
	Kind ExternalKind

	FuncTypeIndex uint32
	Table         TableType
	Memory        MemoryType
	Global        GlobalType
}

func decodeImport(r Reader) (Import, error) {
	b, err := decodeVarUint7(r)
	if err != nil {
		return Import{}, err
	}
	switch ExternalKind(b) {
	case ExternalFunction:
		idx, err := decodeVarUint32(r)
		if err != nil {
			return Import{}, err
		}
		return Import{Kind: ExternalFunction, FuncTypeIndex: idx}, nil
	case ExternalTable:
		t, err := decodeTableType(r)
		if err != nil {
			return Import{}, err
		}
		return Import{Kind: ExternalTable, Table: t}, nil
	case ExternalMemory:
		m, err := decodeMemoryType(r)
		if err != nil {
			return Import{}, err
		}
		return Import{Kind: ExternalMemory, Memory: m}, nil
	case ExternalGlobal:
		g, err := decodeGlobalType(r)
		if err != nil {
			return Import{}, err
		}
		return Import{Kind: ExternalGlobal, Global: g}, nil
	default:
		return Import{}, &UnknownExternalKindError{Byte: b}
	}
}

// ImportEntry names the module/field an import binds to, plus its kind and
// type.
type ImportEntry struct {
	Module string
	Field  string
	Import Import
}

func decodeImportEntry(r Reader, limit uint64) (ImportEntry, error) {
	mod, err := decodeString(r, limit)
	if err != nil {
		return ImportEntry{}, err
	}
	field, err := decodeString(r, limit)
	if err != nil {
		return ImportEntry{}, err
	}
	imp, err := decodeImport(r)
	if err != nil {
		return ImportEntry{}, err
	}
	return ImportEntry{Module: mod, Field: field, Import: imp}, nil
}

// InternalKind discriminates the four kinds of exportable entities. It
// mirrors ExternalKind's values but is a distinct type: exports reference
// an index into one of this module's own index spaces, not an external
// type description.
type InternalKind byte

const (
	InternalFunction InternalKind = 0
	InternalTable    InternalKind = 1
	InternalMemory   InternalKind = 2
	InternalGlobal   InternalKind = 3
)

func (k InternalKind) String() string {
	switch k {
	case InternalFunction:
		return "func"
	case InternalTable:
		return "table"
	case InternalMemory:
		return "memory"
	case InternalGlobal:
		return "global"
	default:
		return fmt.Sprintf("InternalKind(%d)", byte(k))
	}
}

// Internal is the tagged payload of an export entry: Kind selects which
// index space Index refers into.
type Internal struct {
	Kind  InternalKind
	Index uint32
}

func decodeInternal(r Reader) (Internal, error) {
	b, err := decodeVarUint7(r)
	if err != nil {
		return Internal{}, err
	}
	switch InternalKind(b) {
	case InternalFunction, InternalTable, InternalMemory, InternalGlobal:
		idx, err := decodeVarUint32(r)
		if err != nil {
			return Internal{}, err
		}
		return Internal{Kind: InternalKind(b), Index: idx}, nil
	default:
		return Internal{}, &UnknownInternalKindError{Byte: b}
	}
}

// ExportEntry names a field exposed by this module and what it refers to.
type ExportEntry struct {
	Field    string
	Internal Internal
}

func decodeExportEntry(r Reader, limit uint64) (ExportEntry, error) {
	field, err := decodeString(r, limit)
	if err != nil {
		return ExportEntry{}, err
	}
	internal, err := decodeInternal(r)
	if err != nil {
		return ExportEntry{}, err
	}
	return ExportEntry{Field: field, Internal: internal}, nil
}

// GlobalEntry is a global variable definition: its type and the constant
// initializer expression that produces its starting value.
type GlobalEntry struct {
	Type GlobalType
	Init []Instruction
}

func decodeGlobalEntry(r Reader, limit uint64) (GlobalEntry, error) {
	gt, err := decodeGlobalType(r)
	if err != nil {
		return GlobalEntry{}, err
	}
	init, err := decodeInitExpr(r, limit)
	if err != nil {
		return GlobalEntry{}, err
	}
	return GlobalEntry{Type: gt, Init: init}, nil
}

func decodeIndex(r Reader) (uint32, error) { return decodeVarUint32(r) }

// ElementSegment initializes a slice of a table with a sequence of function
// indices, starting at a constant-expression offset.
type ElementSegment struct {
	TableIndex  uint32
	Offset      []Instruction
	FuncIndices []uint32
}

func decodeElementSegment(r Reader, limit uint64) (ElementSegment, error) {
	idx, err := decodeVarUint32(r)
	if err != nil {
		return ElementSegment{}, err
	}
	offset, err := decodeInitExpr(r, limit)
	if err != nil {
		return ElementSegment{}, err
	}
	funcs, err := decodeVector(r, limit, decodeIndex)
	if err != nil {
		return ElementSegment{}, err
	}
	return ElementSegment{TableIndex: idx, Offset: offset, FuncIndices: funcs}, nil
}

// DataSegment initializes a slice of linear memory with raw bytes, starting
// at a constant-expression offset.
type DataSegment struct {
	MemoryIndex uint32
	Offset      []Instruction
	Data        []byte
}

func decodeDataSegment(r Reader, limit uint64) (DataSegment, error) {
	idx, err := decodeVarUint32(r)
	if err != nil {
		return DataSegment{}, err
	}
	offset, err := decodeInitExpr(r, limit)
	if err != nil {
		return DataSegment{}, err
	}
	n, err := decodeVarUint32(r)
	if err != nil {
		return DataSegment{}, err
	}
	data, err := readRaw(r, uint64(n), limit)
	if err != nil {
		return DataSegment{}, err
	}
	return DataSegment{MemoryIndex: idx, Offset: offset, Data: data}, nil
}

// Local declares a run of Count local variables all of the same Type. A
// function body's locals are stored run-length encoded this way rather than
// one entry per local.
type Local struct {
	Count uint32
	Type  ValueType
}

func decodeLocal(r Reader) (Local, error) {
	count, err := decodeVarUint32(r)
	if err != nil {
		return Local{}, err
	}
	typ, err := decodeValueType(r)
	if err != nil {
		return Local{}, err
	}
	return Local{Count: count, Type: typ}, nil
}

// maxLocalCount is the width of the uint32 the sum of all Local.Count
// values must fit into; see ErrTooManyLocals.
const maxLocalCount = 1<<32 - 1

// FuncBody is a function's locals and instruction sequence, decoded from
// the bounded sub-reader its code-section entry is framed with. The caller
// (the code section decoder) is responsible for verifying the sub-reader's
// declared length was consumed exactly; this function only enforces the
// locals-count overflow invariant, since that can be checked the moment the
// locals vector finishes decoding.
type FuncBody struct {
	Locals       []Local
	Instructions []Instruction
}

func decodeFuncBody(r Reader, limit uint64) (FuncBody, error) {
	locals, err := decodeVector(r, limit, decodeLocal)
	if err != nil {
		return FuncBody{}, err
	}
	var sum uint64
	for _, l := range locals {
		sum += uint64(l.Count)
		if sum > maxLocalCount {
			return FuncBody{}, ErrTooManyLocals
		}
	}
	ins, err := decodeExpression(r, limit)
	if err != nil {
		return FuncBody{}, err
	}
	return FuncBody{Locals: locals, Instructions: ins}, nil
}
