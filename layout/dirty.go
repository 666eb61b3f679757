// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout implements the intrinsic-size cache, dirty
// propagation, and the flexbox/grid solvers that annotate an ir.Component
// tree with pixel geometry (§4.2 of the specification).
package layout

import "github.com/kryonlabs/kryon-sub005/ir"

// MarkDirty sets LAYOUT on c and walks its ancestors, setting SUBTREE on
// each and invalidating each ancestor's layout cache (§4.2.2). This is
// the routine that establishes §8 invariant 3.
func MarkDirty(c *ir.Component) {
	if c == nil {
		return
	}
	c.DirtyFlags |= ir.DirtyLayout
	c.LayoutCache.Dirty = true
	for p := c.Parent; p != nil; p = p.Parent {
		p.DirtyFlags |= ir.DirtySubtree
		p.LayoutCache.Invalidate()
	}
}

// MarkRenderDirty sets RENDER only; it does not propagate, because
// visual-only changes don't invalidate parent geometry (§4.2.2).
func MarkRenderDirty(c *ir.Component) {
	if c == nil {
		return
	}
	c.DirtyFlags |= ir.DirtyRender
}

// InvalidateSubtree recursively sets LAYOUT|SUBTREE and dirties the
// cache on every descendant of c, inclusive (§4.2.2).
func InvalidateSubtree(c *ir.Component) {
	if c == nil {
		return
	}
	c.DirtyFlags |= ir.DirtyLayout | ir.DirtySubtree
	c.LayoutCache.Dirty = true
	for _, child := range c.Children {
		InvalidateSubtree(child)
	}
}

// InvalidateCache dirties c's layout cache, bumps its generation
// counter, and calls MarkDirty (§4.2.2 invalidate_cache).
func InvalidateCache(c *ir.Component) {
	if c == nil {
		return
	}
	c.LayoutCache.Generation++
	c.LayoutCache.Invalidate()
	MarkDirty(c)
}
