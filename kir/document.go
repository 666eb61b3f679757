// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kir

import "github.com/kryonlabs/kryon-sub005/ir"

// Document is the in-memory form of the full KIR envelope (§6 "Top
// level keys"): a Component tree plus every round-trip sidecar. Both
// the JSON and binary encoders/decoders operate on this shape.
type Document struct {
	Metadata  map[string]string
	App       map[string]string
	Manifest  *ir.ReactiveManifest
	Bytecode  *ir.BytecodeMetadata
	Stylesheet *ir.Stylesheet
	SourceStructures map[string]string
	CMetadata map[string]string
	Root      *ir.Component
	Sources   []SourceEntry
}

// SourceEntry is one {lang, code} pair of the top-level "sources" array.
type SourceEntry struct {
	Lang string
	Code string
}
