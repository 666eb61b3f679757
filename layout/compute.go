// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "github.com/kryonlabs/kryon-sub005/ir"

// clampMin clamps v to be at least 0.
func clampMin(v float32) float32 {
	if v < 0 {
		return 0
	}
	return v
}

// Compute runs the layout pass over c given the available width/height
// from its containing context (§4.2.3). Clean subtrees (no LAYOUT or
// SUBTREE dirty bit) are skipped entirely, per step 1.
func (e *Engine) Compute(c *ir.Component, availW, availH float32) {
	if c == nil {
		return
	}
	if !c.DirtyFlags.Any(ir.DirtyLayout | ir.DirtySubtree) {
		return // clean subtree: step 1
	}

	c.EnsureStyle()
	c.EnsureLayout()
	style := c.Style
	lay := c.Layout

	// Step 3: resolve width/height from Dimension.
	width := style.Width.Resolve(availW)
	height := style.Height.Resolve(availH)

	// Step 4: width==0 -> available if positive, else intrinsic.
	if width == 0 {
		if availW > 0 {
			width = availW
		} else {
			width = e.IntrinsicWidth(c)
		}
	}

	// Step 5: height: AUTO always uses intrinsic; unset uses available
	// else intrinsic.
	if style.Height.IsAuto() {
		height = e.IntrinsicHeight(c)
	} else if height == 0 {
		if availH > 0 {
			height = availH
		} else {
			height = e.IntrinsicHeight(c)
		}
	}

	// Step 6: aspect ratio, applied only when exactly one of width/height
	// is AUTO.
	if lay.AspectRatio > 0 {
		widthAuto := style.Width.IsAuto()
		heightAuto := style.Height.IsAuto()
		if widthAuto && !heightAuto {
			width = height * lay.AspectRatio
		} else if heightAuto && !widthAuto {
			height = width / lay.AspectRatio
		}
	}

	// Step 7: position. A non-absolute component's offset was already
	// written onto c.RenderedBounds by its parent (setChildBounds in
	// flex.go/grid.go) before this call; preserve it here instead of
	// resetting to the origin, or every nested container below the root
	// would have its assigned offset discarded on its own Compute pass.
	x, y := c.RenderedBounds.X, c.RenderedBounds.Y
	if style.Position == ir.PositionAbsolute {
		x, y = style.AbsoluteX, style.AbsoluteY
	}

	// Step 8: set bounds.
	c.RenderedBounds = ir.RenderedBounds{X: x, Y: y, W: width, H: height, Valid: true}

	// Step 9: inner size, subtracting padding, clamped >= 0.
	innerW := clampMin(width - lay.Padding.Horizontal())
	innerH := clampMin(height - lay.Padding.Vertical())

	// Step 10-11: dispatch by mode and recurse.
	switch lay.Mode {
	case ir.LayoutGrid:
		e.layoutGrid(c, innerW, innerH)
	default:
		e.layoutFlex(c, innerW, innerH)
	}

	// Step 12: clear dirty flags and mark the cache clean. Ensuring the
	// intrinsic cache itself holds a non-negative pair here (rather than
	// just flipping Dirty) is what keeps §3.1 invariant 2 ("dirty==false
	// implies both cached dimensions are >= 0") true even when this pass
	// resolved width/height from an explicit Dimension instead of ever
	// calling IntrinsicWidth/IntrinsicHeight.
	c.DirtyFlags &^= ir.DirtyLayout | ir.DirtySubtree
	if c.LayoutCache.Dirty {
		e.IntrinsicWidth(c)
		e.IntrinsicHeight(c)
	}
}
