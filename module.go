// Copyright 2016 The wasm Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasmcore

import "io"

// wasmMagic is the four-byte preamble every WebAssembly binary module
// begins with: the bytes \0asm.
var wasmMagic = [4]byte{0x00, 0x61, 0x73, 0x6d}

// Module is a fully decoded WebAssembly 1.0 binary module: its version and
// the ordered sequence of sections it contained. No semantic validation
// (index bounds, type checking, start function signature) is performed —
// that is a separate concern layered on top of this package.
type Module struct {
	Version  uint32
	Sections []Section
}

// Decode reads and decodes a complete module from r using DefaultLimits.
func Decode(r Reader) (*Module, error) {
	return DecodeWithLimits(r, DefaultLimits)
}

// DecodeModule is Decode for callers holding a plain io.Reader rather than
// this package's Reader interface.
func DecodeModule(r io.Reader) (*Module, error) {
	return Decode(r)
}

// DecodeWithLimits reads and decodes a complete module from r, bounding
// every declared length against limits.MaxDeclaredLength.
//
// The header (magic + version) is checked first. Sections are then read
// one at a time until the module ends; end of input is only accepted right
// at the boundary between sections — a clean io.EOF reading the next
// section's id byte — never mid-header or mid-payload, where it has
// already been upgraded to io.ErrUnexpectedEOF by the primitive decoders
// (this is the fix for the historical bug where any EOF anywhere in a
// section was treated as a quiet successful close).
//
// Known sections (ids 1-12) must appear at most once each, in the
// WebAssembly canonical order; a repeat fails with DuplicatedSections, an
// out-of-order appearance fails with SectionsOutOfOrder. The custom
// section (id 0) is exempt from both checks and may appear any number of
// times, anywhere. Finally, the function section's entry count must equal
// the code section's body count (either section may be absent, counting as
// zero), else ErrInconsistentCode.
func DecodeWithLimits(r Reader, limits Limits) (*Module, error) {
	var magic [4]byte
	if err := fill(r, magic[:]); err != nil {
		return nil, err
	}
	if magic != wasmMagic {
		return nil, ErrInvalidMagic
	}

	version, err := decodeUint32(r)
	if err != nil {
		return nil, err
	}
	if version != 1 {
		return nil, &UnsupportedVersionError{Version: version}
	}

	m := &Module{Version: version}
	seen := make(map[SectionID]bool)
	lastRank := 0

	for {
		sec, err := decodeSection(r, limits.MaxDeclaredLength)
		if err != nil {
			if isEOFAtBoundary(err) {
				break
			}
			return nil, err
		}

		if rank, ok := sectionOrder[sec.ID]; ok {
			if seen[sec.ID] {
				return nil, &DuplicatedSectionError{ID: byte(sec.ID)}
			}
			if rank < lastRank {
				return nil, ErrSectionsOutOfOrder
			}
			lastRank = rank
			seen[sec.ID] = true
		}

		m.Sections = append(m.Sections, sec)
	}

	var numFuncs, numBodies int
	for _, sec := range m.Sections {
		switch sec.ID {
		case SectionFunction:
			numFuncs = len(sec.FunctionTypeIndices)
		case SectionCode:
			numBodies = len(sec.Code)
		}
	}
	if numFuncs != numBodies {
		return nil, ErrInconsistentCode
	}

	return m, nil
}
