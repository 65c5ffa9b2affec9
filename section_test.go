// Copyright 2016 The wasm Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasmcore

import (
	"bytes"
	"errors"
	"testing"
)

// section builds a section's wire bytes: id, VarUint32 length, payload.
func section(id byte, payload []byte) []byte {
	buf := []byte{id}
	buf = append(buf, encodeVarUint32(uint32(len(payload)))...)
	return append(buf, payload...)
}

// encodeVarUint32 is a small test-only encoder, the mirror image of
// decodeVarUint32, used to build well-formed fixtures without hand-counting
// continuation bits for every length prefix.
func encodeVarUint32(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			return out
		}
	}
}

func TestDecodeSectionUnparsedCatchAll(t *testing.T) {
	buf := section(0x2f, []byte{0x01, 0x02, 0x03}) // 0x2f is not a known id
	sec, err := decodeSection(bytes.NewReader(buf), DefaultLimits.MaxDeclaredLength)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sec.ID != SectionID(0x2f) {
		t.Fatalf("got id %d, want 0x2f", sec.ID)
	}
	if !bytes.Equal(sec.UnparsedPayload, []byte{0x01, 0x02, 0x03}) {
		t.Fatalf("got payload %v, want [1 2 3]", sec.UnparsedPayload)
	}
}

func TestDecodeSectionDataCount(t *testing.T) {
	buf := section(byte(SectionDataCount), encodeVarUint32(7))
	sec, err := decodeSection(bytes.NewReader(buf), DefaultLimits.MaxDeclaredLength)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sec.HasDataCount || sec.DataCount != 7 {
		t.Fatalf("got %+v, want DataCount=7", sec)
	}
}

func TestDecodeSectionInconsistentLength(t *testing.T) {
	// Function section declares a length of 3 bytes but its single VarUint32
	// entry only consumes 1 (a vector of 1 element whose decoded index is
	// encoded in 1 byte), leaving 1 trailing byte unconsumed inside the
	// section's own declared bound.
	payload := append(encodeVarUint32(1), 0x00) // count=1, index=0
	buf := section(byte(SectionFunction), append(payload, 0xFF))
	_, err := decodeSection(bytes.NewReader(buf), DefaultLimits.MaxDeclaredLength)
	var target *InconsistentLengthError
	if !errors.As(err, &target) {
		t.Fatalf("err = %v, want *InconsistentLengthError", err)
	}
}

func TestDecodeSectionCustomAllowsOpaquePayload(t *testing.T) {
	name := append([]byte{0x04}, []byte("name")...)
	payload := append(name, 0xDE, 0xAD, 0xBE, 0xEF)
	buf := section(byte(SectionCustom), payload)
	sec, err := decodeSection(bytes.NewReader(buf), DefaultLimits.MaxDeclaredLength)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sec.CustomName != "name" {
		t.Fatalf("got name %q, want %q", sec.CustomName, "name")
	}
	if !bytes.Equal(sec.CustomPayload, []byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Fatalf("got payload %v", sec.CustomPayload)
	}
}

func TestDecodeSectionEOFAtBoundary(t *testing.T) {
	_, err := decodeSection(bytes.NewReader(nil), DefaultLimits.MaxDeclaredLength)
	if !isEOFAtBoundary(err) {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}

func TestDecodeSectionTruncatedHeaderIsFatal(t *testing.T) {
	// A single byte (the id) with nothing after it: this is not a clean
	// module boundary, it is a truncated section header, and must fail
	// rather than being swallowed as end-of-module.
	_, err := decodeSection(bytes.NewReader([]byte{byte(SectionType)}), DefaultLimits.MaxDeclaredLength)
	if err == nil || isEOFAtBoundary(err) {
		t.Fatalf("err = %v, want a fatal (non-EOF) error", err)
	}
}
