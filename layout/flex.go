// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "github.com/kryonlabs/kryon-sub005/ir"

// childMargins returns a child's main-axis start margin and its
// main/cross-axis margin sums in the given direction (§4.2.4 "inclusive
// of main-axis margins").
func childMargins(child *ir.Component, direction ir.FlexDirection) (mainStart, mainTotal, crossTotal float32) {
	if child.Layout == nil {
		return 0, 0, 0
	}
	m := child.Layout.Margin
	if direction == ir.DirectionColumn {
		return m.Top, m.Vertical(), m.Horizontal()
	}
	return m.Left, m.Horizontal(), m.Vertical()
}

// childGrow returns the child's flex grow factor, defaulting to 0.
func childGrow(child *ir.Component) float32 {
	if child.Layout != nil && child.Layout.Flex != nil {
		return child.Layout.Flex.Grow
	}
	return 0
}

// layoutFlex implements the two-pass flex solver of §4.2.4. innerW and
// innerH are the inner (post-padding) available width and height
// computed by §4.2.3 step 9; direction and gap come from
// c.Layout.Flex (defaulted to column, 0 gap if unset).
func (e *Engine) layoutFlex(c *ir.Component, innerW, innerH float32) {
	direction := ir.DirectionColumn
	gap := float32(0)
	cross := ir.AlignStart
	if c.Layout.Flex != nil {
		direction = c.Layout.Flex.Direction
		gap = c.Layout.Flex.Gap
		cross = c.Layout.Flex.CrossAxis
	}

	var availableMain, availableCross float32
	if direction == ir.DirectionColumn {
		availableMain, availableCross = innerH, innerW
	} else {
		availableMain, availableCross = innerW, innerH
	}

	visible := make([]*ir.Component, 0, len(c.Children))
	for _, child := range c.Children {
		if child.Visible() {
			visible = append(visible, child)
		}
	}

	// Pass 1: sum main-axis extents (resolved-or-intrinsic + margins),
	// sum grow, add inter-child gaps.
	var total, totalGrow float32
	mainExtents := make([]float32, len(visible))
	for i, child := range visible {
		extent := resolvedOrIntrinsic(e, child, direction, availableMain)
		_, mainMargin, _ := childMargins(child, direction)
		mainExtents[i] = extent
		total += extent + mainMargin
		totalGrow += childGrow(child)
	}
	if len(visible) > 1 {
		total += float32(len(visible)-1) * gap
	}

	// Pass 2: distribute remaining space, position children.
	remaining := availableMain - total
	current := float32(0)
	if direction == ir.DirectionColumn {
		current = paddingStart(c, true)
	} else {
		current = paddingStart(c, false)
	}

	for i, child := range visible {
		extent := mainExtents[i]
		if remaining > 0 && totalGrow > 0 {
			g := childGrow(child)
			if g > 0 {
				extent += remaining * g / totalGrow
			}
		}

		crossExtent := resolvedOrIntrinsicCross(e, child, direction, availableCross)
		mainStart, mainMargin, crossMargin := childMargins(child, direction)

		var crossPos float32
		switch cross {
		case ir.AlignCenter:
			crossPos = (availableCross - crossExtent) / 2
		case ir.AlignEnd:
			crossPos = availableCross - crossExtent
		case ir.AlignStretch:
			crossExtent = clampMin(availableCross - crossMargin)
			crossPos = 0
		default: // AlignStart: at the parent's cross-axis padding
			crossPos = paddingStart(c, direction != ir.DirectionColumn)
		}

		mainPos := current + mainStart

		var x, y, w, h float32
		if direction == ir.DirectionColumn {
			x, y = crossPos, mainPos
			w, h = crossExtent, extent
		} else {
			x, y = mainPos, crossPos
			w, h = extent, crossExtent
		}
		e.setChildBounds(child, x, y, w, h)

		current += extent + mainMargin + gap
	}
}

func paddingStart(c *ir.Component, column bool) float32 {
	if c.Layout == nil {
		return 0
	}
	if column {
		return c.Layout.Padding.Top
	}
	return c.Layout.Padding.Left
}

// resolvedOrIntrinsic returns the child's main-axis extent: its style
// Dimension resolved against availableMain if set, else its intrinsic
// size for that axis (§4.2.4 pass 1/2).
func resolvedOrIntrinsic(e *Engine, child *ir.Component, direction ir.FlexDirection, availableMain float32) float32 {
	if direction == ir.DirectionColumn {
		return resolvedDim(e, child, false, availableMain)
	}
	return resolvedDim(e, child, true, availableMain)
}

// resolvedOrIntrinsicCross mirrors resolvedOrIntrinsic for the cross
// axis.
func resolvedOrIntrinsicCross(e *Engine, child *ir.Component, direction ir.FlexDirection, availableCross float32) float32 {
	if direction == ir.DirectionColumn {
		return resolvedDim(e, child, true, availableCross)
	}
	return resolvedDim(e, child, false, availableCross)
}

// resolvedDim resolves a child's width (widthAxis=true) or height
// Dimension against the given available size, falling back to the
// intrinsic size when the Dimension is unset/AUTO/FLEX.
func resolvedDim(e *Engine, child *ir.Component, widthAxis bool, available float32) float32 {
	child.EnsureStyle()
	var dim ir.Dimension
	if widthAxis {
		dim = child.Style.Width
	} else {
		dim = child.Style.Height
	}
	if dim.Unit == ir.UnitAuto || dim.Unit == ir.UnitFlex || dim.IsUnset() {
		if widthAxis {
			return e.IntrinsicWidth(child)
		}
		return e.IntrinsicHeight(child)
	}
	return dim.Resolve(available)
}

// setChildBounds writes a child's final bounds and recurses the layout
// pass into it using its own computed size as its new available space
// (§4.2.4 last bullet, §4.2.3 step 11).
func (e *Engine) setChildBounds(child *ir.Component, x, y, w, h float32) {
	child.RenderedBounds = ir.RenderedBounds{X: x, Y: y, W: w, H: h, Valid: true}
	e.Compute(child, w, h)
}
