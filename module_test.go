// Copyright 2016 The wasm Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasmcore

import (
	"bytes"
	"errors"
	"testing"
)

func header() []byte {
	return []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
}

func TestDecodeEmptyModule(t *testing.T) {
	m, err := Decode(bytes.NewReader(header()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Version != 1 || len(m.Sections) != 0 {
		t.Fatalf("got %+v, want version 1 with no sections", m)
	}
}

func TestDecodeInvalidMagic(t *testing.T) {
	buf := append([]byte{0x00, 0x61, 0x73, 0x00}, header()[4:]...)
	_, err := Decode(bytes.NewReader(buf))
	if !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("err = %v, want ErrInvalidMagic", err)
	}
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	buf := append(append([]byte{}, header()[:4]...), 0x02, 0x00, 0x00, 0x00)
	_, err := Decode(bytes.NewReader(buf))
	var target *UnsupportedVersionError
	if !errors.As(err, &target) {
		t.Fatalf("err = %v, want *UnsupportedVersionError", err)
	}
}

func TestDecodeModuleWithOneFunction(t *testing.T) {
	// type section: one func type () -> ()
	typeSec := section(byte(SectionType), append(encodeVarUint32(1),
		append([]byte{funcTypeForm}, append(encodeVarUint32(0), encodeVarUint32(0)...)...)...))

	// function section: one function using type index 0
	funcSec := section(byte(SectionFunction), append(encodeVarUint32(1), encodeVarUint32(0)...))

	// code section: one body with no locals, single "end" instruction
	body := append(encodeVarUint32(0), byte(OpEnd)) // locals count=0, end
	bodyWithLen := append(encodeVarUint32(uint32(len(body))), body...)
	codeSec := section(byte(SectionCode), append(encodeVarUint32(1), bodyWithLen...))

	buf := append(header(), typeSec...)
	buf = append(buf, funcSec...)
	buf = append(buf, codeSec...)

	m, err := Decode(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(m.Sections))
	}
	if len(m.Sections[2].Code) != 1 || len(m.Sections[2].Code[0].Instructions) != 1 {
		t.Fatalf("got code section %+v, want one body with one instruction", m.Sections[2])
	}
}

func TestDecodeModuleSectionsOutOfOrder(t *testing.T) {
	funcSec := section(byte(SectionFunction), encodeVarUint32(0))
	typeSec := section(byte(SectionType), encodeVarUint32(0))
	buf := append(header(), funcSec...)
	buf = append(buf, typeSec...)

	_, err := Decode(bytes.NewReader(buf))
	if !errors.Is(err, ErrSectionsOutOfOrder) {
		t.Fatalf("err = %v, want ErrSectionsOutOfOrder", err)
	}
}

func TestDecodeModuleDuplicatedSection(t *testing.T) {
	typeSec := section(byte(SectionType), encodeVarUint32(0))
	buf := append(header(), typeSec...)
	buf = append(buf, typeSec...)

	_, err := Decode(bytes.NewReader(buf))
	var target *DuplicatedSectionError
	if !errors.As(err, &target) {
		t.Fatalf("err = %v, want *DuplicatedSectionError", err)
	}
}

func TestDecodeModuleCustomSectionsRepeatFreely(t *testing.T) {
	custom := section(byte(SectionCustom), append([]byte{0x00}))
	buf := append(header(), custom...)
	buf = append(buf, custom...)

	m, err := Decode(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Sections) != 2 {
		t.Fatalf("got %d sections, want 2 custom sections", len(m.Sections))
	}
}
