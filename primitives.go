// Copyright 2016 The wasm Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasmcore

import (
	"encoding/binary"
	"io"
	"unicode/utf8"
)

var order = binary.LittleEndian

// mustByte reads a single byte and upgrades a clean io.EOF into
// io.ErrUnexpectedEOF: every primitive codec below is called mid-value, so
// there is no such thing as a "normal" end of input once it has started.
func mustByte(r Reader) (byte, error) {
	b, err := readByte(r)
	if err == io.EOF {
		return 0, io.ErrUnexpectedEOF
	}
	return b, err
}

// decodeUint32 reads a fixed-width 4-byte little-endian unsigned integer.
func decodeUint32(r Reader) (uint32, error) {
	var buf [4]byte
	if err := fill(r, buf[:]); err != nil {
		return 0, err
	}
	return order.Uint32(buf[:]), nil
}

// decodeUint64 reads a fixed-width 8-byte little-endian unsigned integer.
func decodeUint64(r Reader) (uint64, error) {
	var buf [8]byte
	if err := fill(r, buf[:]); err != nil {
		return 0, err
	}
	return order.Uint64(buf[:]), nil
}

// decodeVarUint32 reads an unsigned LEB128 integer of at most 5 bytes.
// Needing a 6th byte fails with ErrInvalidVarUint32; a 5th byte whose value
// would shift bits past bit 31 fails with ErrInvalidVarInt32 (yes, that
// name, not Uint32 — the same error value the signed 32-bit decoder reports
// for an out-of-range terminal byte).
func decodeVarUint32(r Reader) (uint32, error) {
	var result uint32
	var shift uint
	for {
		if shift > 31 {
			return 0, ErrInvalidVarUint32
		}
		b, err := mustByte(r)
		if err != nil {
			return 0, err
		}
		cont := b&0x80 != 0
		if !cont && shift == 28 && b >= 0x10 {
			return 0, ErrInvalidVarInt32
		}
		result |= uint32(b&0x7f) << shift
		shift += 7
		if !cont {
			return result, nil
		}
	}
}

// decodeVarUint64 reads an unsigned LEB128 integer of at most 10 bytes. No
// field in the binary format uses a 64-bit unsigned value; kept for symmetry
// with decodeVarUint32 and the reserved ErrInvalidVarUint64.
func decodeVarUint64(r Reader) (uint64, error) {
	var result uint64
	var shift uint
	for {
		if shift > 63 {
			return 0, ErrInvalidVarUint64
		}
		b, err := mustByte(r)
		if err != nil {
			return 0, err
		}
		cont := b&0x80 != 0
		if !cont && shift == 63 && b > 0x01 {
			return 0, ErrInvalidVarUint64
		}
		result |= uint64(b&0x7f) << shift
		shift += 7
		if !cont {
			return result, nil
		}
	}
}

// decodeSignedLEB decodes a LEB128 signed integer into a 64-bit
// accumulator, sign-extending past the terminal byte. errTooLong is returned
// for an encoding longer than maxBytes, and for a 10-byte encoding whose
// terminal byte is not pure sign padding (0x00 or 0x7f). Narrower widths are
// validated by the caller, which narrows and re-widens the result.
func decodeSignedLEB(r Reader, maxBytes int, errTooLong error) (int64, error) {
	var result int64
	var shift uint
	var b byte
	var err error
	for i := 0; ; i++ {
		if i == maxBytes {
			return 0, errTooLong
		}
		b, err = mustByte(r)
		if err != nil {
			return 0, err
		}
		result |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	if shift >= 64 && b != 0x00 && b != 0x7f {
		return 0, errTooLong
	}
	if shift < 64 && b&0x40 != 0 {
		result |= -(int64(1) << shift)
	}
	return result, nil
}

// decodeVarInt32 reads a signed LEB128 integer of at most 5 bytes and
// verifies the decoded value actually fits in 32 bits, rejecting a terminal
// byte whose padding bits disagree with the sign as ErrInvalidVarInt32.
func decodeVarInt32(r Reader) (int32, error) {
	v, err := decodeSignedLEB(r, 5, ErrInvalidVarInt32)
	if err != nil {
		return 0, err
	}
	if int64(int32(v)) != v {
		return 0, ErrInvalidVarInt32
	}
	return int32(v), nil
}

// decodeVarInt64 reads a signed LEB128 integer of at most 10 bytes.
func decodeVarInt64(r Reader) (int64, error) {
	return decodeSignedLEB(r, 10, ErrInvalidVarInt64)
}

// decodeVarUint1 reads a single byte that must be exactly 0 or 1.
func decodeVarUint1(r Reader) (bool, error) {
	b, err := mustByte(r)
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, &InvalidVarUint1Error{Byte: b}
	}
}

// decodeVarUint7 reads a single raw byte with no continuation-bit check;
// the caller interprets its 7 meaningful bits (section ids, external/
// internal kind discriminators).
func decodeVarUint7(r Reader) (byte, error) {
	return mustByte(r)
}

// decodeVarInt7 reads a single byte, rejecting one with its continuation
// bit set, and sign-extends it into an int8 when bit 6 (the sign bit of a
// 7-bit group) is set. Used for ValueType, TableElementType, and BlockType.
func decodeVarInt7(r Reader) (int8, error) {
	b, err := mustByte(r)
	if err != nil {
		return 0, err
	}
	if b&0x80 != 0 {
		return 0, &InvalidVarInt7Error{Byte: b}
	}
	v := int8(b)
	if b&0x40 != 0 {
		v |= ^int8(0x7f)
	}
	return v, nil
}

// decodeString reads a VarUint32 length followed by that many bytes and
// validates them as UTF-8. A zero length yields "" without reading further.
func decodeString(r Reader, limit uint64) (string, error) {
	n, err := decodeVarUint32(r)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	buf, err := readRaw(r, uint64(n), limit)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", ErrNonUTF8String
	}
	return string(buf), nil
}

// decodeVector reads a VarUint32 count n followed by n decodings of T. It
// is the counted-sequence shape shared by every section that encodes a
// list: types, imports, functions, tables, memories, globals, exports,
// elements, code, data.
func decodeVector[T any](r Reader, limit uint64, decodeOne func(Reader) (T, error)) ([]T, error) {
	n, err := decodeVarUint32(r)
	if err != nil {
		return nil, err
	}
	if uint64(n) > limit {
		return nil, &SectionTooLargeError{Declared: uint64(n), Max: limit}
	}
	out := make([]T, n)
	for i := range out {
		if out[i], err = decodeOne(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}
