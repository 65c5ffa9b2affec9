// Copyright 2016 The wasm Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasmcore

import (
	"fmt"
	"io"
)

// The decoder never retries or resynchronizes: the first failure aborts the
// whole decode, and every failure below is returned to its caller unchanged.
// io.EOF and io.ErrUnexpectedEOF round out the taxonomy: io.EOF is the
// normal top-level "no more sections" terminator, io.ErrUnexpectedEOF is
// fatal everywhere else.

// TransportError wraps a failure from the underlying byte source that is
// not itself an EOF condition.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("wasmcore: i/o error: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

var (
	// ErrInvalidMagic is returned when the first four bytes are not \0asm.
	ErrInvalidMagic = fmt.Errorf("wasmcore: invalid magic number")

	// ErrSectionsOutOfOrder is returned when a known section id appears out
	// of the WebAssembly canonical section order.
	ErrSectionsOutOfOrder = fmt.Errorf("wasmcore: sections out of order")

	// ErrInconsistentMetadata is reserved for cross-section consistency
	// checks beyond the single-section framing this decoder performs.
	ErrInconsistentMetadata = fmt.Errorf("wasmcore: inconsistent metadata")

	// ErrInconsistentCode is returned when the function and code sections
	// disagree on the number of function bodies.
	ErrInconsistentCode = fmt.Errorf("wasmcore: number of function bodies does not match function section")

	ErrInvalidVarInt32  = fmt.Errorf("wasmcore: not a valid signed 32-bit LEB128 integer")
	ErrInvalidVarUint32 = fmt.Errorf("wasmcore: not a valid unsigned 32-bit LEB128 integer")
	ErrInvalidVarInt64  = fmt.Errorf("wasmcore: not a valid signed 64-bit LEB128 integer")
	ErrInvalidVarUint64 = fmt.Errorf("wasmcore: not a valid unsigned 64-bit LEB128 integer")

	ErrNonUTF8String = fmt.Errorf("wasmcore: non-UTF-8 string")

	// ErrTooManyLocals is returned when a function body's local counts sum
	// to more than fits in a uint32.
	ErrTooManyLocals = fmt.Errorf("wasmcore: sum of local counts overflows uint32")
)

// UnsupportedVersionError is returned when the module header's version
// field is not 1.
type UnsupportedVersionError struct{ Version uint32 }

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("wasmcore: unsupported wasm version %d", e.Version)
}

// InvalidSectionIDError is reserved for a malformed section id; the
// section framer reads it as a raw byte, so this is not constructed today.
type InvalidSectionIDError struct{ ID byte }

func (e *InvalidSectionIDError) Error() string {
	return fmt.Sprintf("wasmcore: invalid section id %d", e.ID)
}

// DuplicatedSectionError is returned when a known section id (other than
// the repeatable custom section, id 0) appears more than once.
type DuplicatedSectionError struct{ ID byte }

func (e *DuplicatedSectionError) Error() string {
	return fmt.Sprintf("wasmcore: duplicated section %d", e.ID)
}

// InconsistentLengthError is returned when a bounded sub-reader is closed
// without having consumed exactly its declared length.
type InconsistentLengthError struct {
	Expected, Actual int64
}

func (e *InconsistentLengthError) Error() string {
	return fmt.Sprintf("wasmcore: expected to consume %d bytes, consumed %d", e.Expected, e.Actual)
}

// SectionTooLargeError is returned when a declared section or vector length
// exceeds the configured Limits.MaxDeclaredLength, before any allocation is
// attempted for it.
type SectionTooLargeError struct {
	Declared, Max uint64
}

func (e *SectionTooLargeError) Error() string {
	return fmt.Sprintf("wasmcore: declared length %d exceeds limit %d", e.Declared, e.Max)
}

type InvalidVarUint1Error struct{ Byte byte }

func (e *InvalidVarUint1Error) Error() string {
	return fmt.Sprintf("wasmcore: not an unsigned 1-bit integer: %#x", e.Byte)
}

type InvalidVarInt7Error struct{ Byte byte }

func (e *InvalidVarInt7Error) Error() string {
	return fmt.Sprintf("wasmcore: not a signed 7-bit integer: %#x", e.Byte)
}

type UnknownValueTypeError struct{ Value int8 }

func (e *UnknownValueTypeError) Error() string {
	return fmt.Sprintf("wasmcore: unknown value type %d", e.Value)
}

type UnknownTableElementTypeError struct{ Value int8 }

func (e *UnknownTableElementTypeError) Error() string {
	return fmt.Sprintf("wasmcore: unknown table element type %d", e.Value)
}

type UnknownFunctionFormError struct{ Byte byte }

func (e *UnknownFunctionFormError) Error() string {
	return fmt.Sprintf("wasmcore: unknown function form %#x, want 0x60", e.Byte)
}

type UnknownExternalKindError struct{ Byte byte }

func (e *UnknownExternalKindError) Error() string {
	return fmt.Sprintf("wasmcore: unknown import external kind %d", e.Byte)
}

type UnknownInternalKindError struct{ Byte byte }

func (e *UnknownInternalKindError) Error() string {
	return fmt.Sprintf("wasmcore: unknown export internal kind %d", e.Byte)
}

type InvalidLimitsFlagsError struct{ Byte byte }

func (e *InvalidLimitsFlagsError) Error() string {
	return fmt.Sprintf("wasmcore: invalid resizable-limits flags %#x", e.Byte)
}

type InvalidMemoryReferenceError struct{ Byte byte }

func (e *InvalidMemoryReferenceError) Error() string {
	return fmt.Sprintf("wasmcore: invalid memory reference %d, must be 0", e.Byte)
}

type InvalidTableReferenceError struct{ Byte byte }

func (e *InvalidTableReferenceError) Error() string {
	return fmt.Sprintf("wasmcore: invalid table reference %d, must be 0", e.Byte)
}

// InvalidSegmentFlagsError is reserved for the bulk-memory segment flags
// byte (active/passive/declared); MVP element and data segments carry no
// flags byte at all, so this is never constructed today.
type InvalidSegmentFlagsError struct{ Flags uint32 }

func (e *InvalidSegmentFlagsError) Error() string {
	return fmt.Sprintf("wasmcore: invalid segment flags %d", e.Flags)
}

type UnknownOpcodeError struct{ Byte byte }

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("wasmcore: unknown opcode %#x", e.Byte)
}

// UnknownSimdOpcodeError is constructed only in builds tagged "simd"; see
// simd_on.go / simd_off.go.
type UnknownSimdOpcodeError struct{ Opcode uint32 }

func (e *UnknownSimdOpcodeError) Error() string {
	return fmt.Sprintf("wasmcore: unknown SIMD opcode %#x", e.Opcode)
}

// OtherError carries a static, non-allocated diagnostic message.
type OtherError struct{ Msg string }

func (e *OtherError) Error() string { return "wasmcore: " + e.Msg }

// isEOFAtBoundary reports whether err is exactly io.EOF, the only failure
// the module section loop is permitted to swallow, and only when it occurs
// precisely at the start of a new section's id byte.
func isEOFAtBoundary(err error) bool {
	return err == io.EOF
}
