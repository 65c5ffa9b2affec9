//go:build !reducedstack

// Copyright 2016 The wasm Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasmcore

// readBufferSize is the transient chunk size used to stream a declared-length
// payload into a growable buffer. 1024 bytes is the default; build with the
// "reducedstack" tag to drop it to 256 on stack-constrained targets.
const readBufferSize = 1024
