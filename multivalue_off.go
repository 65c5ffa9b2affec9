//go:build !multivalue

// Copyright 2016 The wasm Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasmcore

// maxFunctionResults is the MVP limit of one result value per function
// signature. Build with the "multivalue" tag to relax it; see
// multivalue_on.go.
const maxFunctionResults = 1
