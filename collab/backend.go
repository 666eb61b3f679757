// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collab

import "github.com/kryonlabs/kryon-sub005/ir"

// Backend emits an IR tree and its reactive manifest as HTML and CSS
// (§6). The element/attribute mapping a Backend must honor:
//
//   - one HTML element per Component, tag chosen from
//     Variant.DefaultHTMLElement() unless Component.Tag overrides it
//   - Style fields become inline style declarations or class rules at
//     the Backend's discretion; Color/Dimension/Spacing serialize
//     through their own String()/CSS forms
//   - EventBinding entries become addEventListener-equivalent wiring
//     (inline handler attributes for InlineHandler, otherwise a
//     delegated listener keyed by Component.ID())
//   - ForEach/Conditional bindings from the ReactiveManifest become
//     the hydration data a client-side runtime re-expands; a Backend
//     is not required to pre-render every iteration server-side
//
// No concrete Backend lives in this module: rasterizing CSS and
// wiring a client runtime is a rendering concern, not an IR concern.
type Backend interface {
	Emit(root *ir.Component, manifest *ir.ReactiveManifest) (html, css string, err error)
}
