// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kir implements the two wire encodings of §6: the canonical
// KIR JSON document (json.go) and the KRY\0-prefixed binary IR
// (binary.go). Both encode the same envelope: a Component subtree, its
// ReactiveManifest, its BytecodeMetadata, and round-trip sidecars
// (stylesheet, sources, free-form metadata).
package kir
