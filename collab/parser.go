// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collab

import "github.com/kryonlabs/kryon-sub005/ir"

// Parser turns one surface syntax (the DSL, Markdown, or any of the
// Hare/Limbo/Nim-like authoring languages named in §1) into an IR tree
// plus the reactive manifest its bindings/state declarations produce.
// Source is source text, not a path: the caller owns file I/O. A
// concrete Parser is expected per surface language; this module ships
// none, since lexing/parsing a surface language is outside IR-core
// scope.
type Parser interface {
	Parse(source string) (*ir.Component, *ir.ReactiveManifest, error)
}
