// Copyright 2016 The wasm Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasmcore

import "io"

// Reader is the byte-source abstraction every decoder in this package pulls
// from. Any io.Reader satisfies it already.
type Reader interface {
	Read(buf []byte) (int, error)
}

// fill reads exactly len(buf) bytes from r. A short read at end of stream
// surfaces as io.ErrUnexpectedEOF; a clean end exactly at the requested
// boundary surfaces as nil. A reader that reports (0, nil) — legal under
// io.Reader but fatal for every decoder here — is treated the same as a
// truncated stream rather than retried.
func fill(r Reader, buf []byte) error {
	for read := 0; read < len(buf); {
		n, err := r.Read(buf[read:])
		read += n
		if n == 0 && err == nil {
			return io.ErrUnexpectedEOF
		}
		if err != nil {
			if err == io.EOF {
				if read == len(buf) {
					return nil
				}
				return io.ErrUnexpectedEOF
			}
			return &TransportError{Err: err}
		}
	}
	return nil
}

// readByte reads a single byte without upgrading a clean io.EOF, so callers
// sitting at a section boundary can tell "no more sections" (io.EOF) apart
// from every other failure.
func readByte(r Reader) (byte, error) {
	var buf [1]byte
	n, err := r.Read(buf[:])
	if n == 1 {
		return buf[0], nil
	}
	if err == nil {
		return 0, io.ErrUnexpectedEOF
	}
	if err == io.EOF {
		return 0, io.EOF
	}
	return 0, &TransportError{Err: err}
}

// readRaw reads exactly n bytes into a freshly allocated slice, in chunks of
// at most readBufferSize so a large declared length cannot force one huge
// up-front allocation. The declared length is checked against limit first.
func readRaw(r Reader, n uint64, limit uint64) ([]byte, error) {
	if n > limit {
		return nil, &SectionTooLargeError{Declared: n, Max: limit}
	}
	out := make([]byte, 0, min(n, readBufferSize))
	var buf [readBufferSize]byte
	for remaining := n; remaining > 0; {
		chunk := uint64(readBufferSize)
		if chunk > remaining {
			chunk = remaining
		}
		if err := fill(r, buf[:chunk]); err != nil {
			return nil, err
		}
		out = append(out, buf[:chunk]...)
		remaining -= chunk
	}
	return out, nil
}
