//go:build reducedstack

// Copyright 2016 The wasm Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasmcore

// readBufferSize is lowered to 256 bytes under the "reducedstack" build tag;
// see buffer_default.go for the normal 1024-byte value.
const readBufferSize = 256
