//go:build multivalue

// Copyright 2016 The wasm Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasmcore

// maxFunctionResults is relaxed to the maximum a result-count VarUint32 can
// carry under the "multivalue" build tag; actual allocation still goes
// through the same Limits.MaxDeclaredLength bound as every other vector.
const maxFunctionResults = 1<<32 - 1
