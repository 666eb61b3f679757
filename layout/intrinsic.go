// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "github.com/kryonlabs/kryon-sub005/ir"

// Measurer is the narrow capability a handlers.Registry entry may
// supply to override per-variant intrinsic measurement (§4.7 "measure").
// layout depends only on this interface, not on the handlers package
// itself, to avoid a cycle between the two: an Engine is given a
// Measurer (such as a *handlers.Registry) through its Handlers field,
// and the handlers package does not import layout.
type Measurer interface {
	Measure(c *ir.Component) (width, height float32, ok bool)
}

// Engine runs the layout pass over an ir.Component tree (§4.2). The
// zero Engine is usable; Handlers may be set to let the handler
// registry override default per-variant measurement.
type Engine struct {
	Handlers Measurer
}

// NewEngine returns a ready-to-use Engine with no handler overrides.
func NewEngine() *Engine { return &Engine{} }

// IntrinsicWidth returns c's intrinsic width, using the cached value
// when valid (§4.2.1 step 1) and the cached *children* getter when
// recursing into Container/Row/Column content (memoization, not the
// _impl routine, is what keeps this linear).
func (e *Engine) IntrinsicWidth(c *ir.Component) float32 {
	if c.LayoutCache.HasCachedSize() {
		return c.LayoutCache.Width
	}
	w, h := e.computeIntrinsic(c)
	c.LayoutCache.Width = w
	c.LayoutCache.Height = h
	c.LayoutCache.Dirty = false
	return w
}

// IntrinsicHeight returns c's intrinsic height, using the cached value
// when valid (§4.2.1 step 1).
func (e *Engine) IntrinsicHeight(c *ir.Component) float32 {
	if c.LayoutCache.HasCachedSize() {
		return c.LayoutCache.Height
	}
	w, h := e.computeIntrinsic(c)
	c.LayoutCache.Width = w
	c.LayoutCache.Height = h
	c.LayoutCache.Dirty = false
	return h
}

// computeIntrinsic computes both dimensions together so the cache is
// always written as a pair (§4.2.1 step 2-3). It is the "_impl" routine:
// callers must go through IntrinsicWidth/IntrinsicHeight, never this
// directly, so recursive children lookups hit the memoized getters.
func (e *Engine) computeIntrinsic(c *ir.Component) (width, height float32) {
	if e.Handlers != nil {
		if w, h, ok := e.Handlers.Measure(c); ok {
			return w, h
		}
	}

	switch c.Variant {
	case ir.VariantText, ir.VariantSpan, ir.VariantStrong, ir.VariantEm,
		ir.VariantCodeInline, ir.VariantSmall, ir.VariantMark,
		ir.VariantParagraph, ir.VariantLink:
		fontSize := float32(16)
		if c.Style != nil && c.Style.Font.Size > 0 {
			fontSize = c.Style.Font.Size
		}
		width = float32(len(c.TextContent)) * fontSize * 0.5
		if fontSize > 0 {
			height = fontSize + 4
		} else {
			height = 20
		}
		return width, height

	case ir.VariantButton:
		fontSize := float32(16)
		var padH, padV float32
		if c.Style != nil {
			if c.Style.Font.Size > 0 {
				fontSize = c.Style.Font.Size
			}
			padH = c.Style.Padding.Horizontal()
			padV = c.Style.Padding.Vertical()
		}
		textW := float32(len(c.TextContent)) * fontSize * 0.5
		width = textW + padH + 20
		height = fontSize + padV + 12
		return width, height

	case ir.VariantInput, ir.VariantTextArea, ir.VariantDropdown:
		return 200, 30

	case ir.VariantCheckbox:
		return 20, 20

	case ir.VariantContainer, ir.VariantRow, ir.VariantColumn, ir.VariantCenter,
		ir.VariantTabGroup, ir.VariantTabBar, ir.VariantTabContent, ir.VariantTabPanel,
		ir.VariantModal, ir.VariantList, ir.VariantListItem, ir.VariantBlockquote,
		ir.VariantTable, ir.VariantTableRow, ir.VariantTableCell, ir.VariantTableHeaderCell,
		ir.VariantForEach, ir.VariantForLoop, ir.VariantStaticBlock:
		return e.containerIntrinsic(c)

	default:
		return 100, 50
	}
}

// containerIntrinsic implements §4.2.1 step 2 "Container/Row/Column":
// sum along the main axis (plus gaps between visible children and
// padding), max along the cross axis. The main axis is determined by
// layout.flex.direction (0=column -> height is main, width is max).
func (e *Engine) containerIntrinsic(c *ir.Component) (width, height float32) {
	direction := ir.DirectionColumn
	var gap, padH, padV float32
	if c.Layout != nil {
		padH = c.Layout.Padding.Horizontal()
		padV = c.Layout.Padding.Vertical()
		if c.Layout.Flex != nil {
			direction = c.Layout.Flex.Direction
			gap = c.Layout.Flex.Gap
		}
	}

	visible := 0
	var mainSum, crossMax float32
	for _, child := range c.Children {
		if !child.Visible() {
			continue
		}
		visible++
		cw := e.IntrinsicWidth(child)
		ch := e.IntrinsicHeight(child)
		if direction == ir.DirectionColumn {
			mainSum += ch
			if cw > crossMax {
				crossMax = cw
			}
		} else {
			mainSum += cw
			if ch > crossMax {
				crossMax = ch
			}
		}
	}
	if visible > 1 {
		mainSum += float32(visible-1) * gap
	}

	if direction == ir.DirectionColumn {
		width = crossMax + padH
		height = mainSum + padV
	} else {
		width = mainSum + padH
		height = crossMax + padV
	}
	return width, height
}
