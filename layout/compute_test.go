// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryonlabs/kryon-sub005/ir"
)

// TestComputeFlexRowPositionsChildren covers scenario S4: a Row
// container with gap=10 and three fixed-size 80x30 children lays them
// out at x=0,90,180, all sharing y=0.
func TestComputeFlexRowPositionsChildren(t *testing.T) {
	ctx := ir.NewContext()
	row := ctx.Create(ir.VariantRow)
	ctx.SetRoot(row)
	row.Layout = &ir.LayoutSpec{
		Mode: ir.LayoutFlex,
		Flex: &ir.Flexbox{Direction: ir.DirectionRow, Gap: 10},
	}

	var children []*ir.Component
	for i := 0; i < 3; i++ {
		c := ctx.Create(ir.VariantButton)
		c.Style = &ir.Style{Width: ir.PX(80), Height: ir.PX(30), Visible: true, Opacity: 1}
		row.AddChild(c)
		children = append(children, c)
	}

	e := NewEngine()
	e.Compute(row, 500, 100)

	wantX := []float32{0, 90, 180}
	for i, c := range children {
		assert.Equal(t, wantX[i], c.RenderedBounds.X, "child %d x", i)
		assert.Equal(t, float32(0), c.RenderedBounds.Y, "child %d y", i)
		assert.Equal(t, float32(80), c.RenderedBounds.W, "child %d w", i)
		assert.Equal(t, float32(30), c.RenderedBounds.H, "child %d h", i)
		assert.True(t, c.RenderedBounds.Valid)
	}
}

// TestIntrinsicHeightColumnOfText covers scenario S5: a Column of three
// Text children with font_size=16 has intrinsic height (16+4)*3=60, the
// cache is idempotent across calls, and mark_dirty invalidates it.
func TestIntrinsicHeightColumnOfText(t *testing.T) {
	ctx := ir.NewContext()
	col := ctx.Create(ir.VariantColumn)
	ctx.SetRoot(col)

	var texts []*ir.Component
	for i := 0; i < 3; i++ {
		c := ctx.Create(ir.VariantText)
		c.TextContent = "0123456789"
		c.Style = &ir.Style{Font: ir.Typography{Size: 16}, Visible: true, Opacity: 1}
		col.AddChild(c)
		texts = append(texts, c)
	}

	e := NewEngine()
	height := e.IntrinsicHeight(col)
	assert.Equal(t, float32(60), height)

	// Idempotent: second call hits the cache and returns the same value.
	height2 := e.IntrinsicHeight(col)
	assert.Equal(t, height, height2)
	assert.True(t, col.LayoutCache.HasCachedSize())

	// mark_dirty on a descendant invalidates the ancestor's cache (§4.2.2).
	MarkDirty(texts[0])
	assert.False(t, col.LayoutCache.HasCachedSize())
	assert.Equal(t, float32(-1), col.LayoutCache.Height)
}

// TestComputeNestedContainersPositioned is the regression case for the
// position-reset bug: a Row containing a Column (itself non-leaf, so it
// carries its own DirtyLayout from AddChild) must retain the offset its
// parent assigned rather than collapsing back to the origin.
func TestComputeNestedContainersPositioned(t *testing.T) {
	ctx := ir.NewContext()
	root := ctx.Create(ir.VariantRow)
	ctx.SetRoot(root)
	root.Layout = &ir.LayoutSpec{
		Mode: ir.LayoutFlex,
		Flex: &ir.Flexbox{Direction: ir.DirectionRow, Gap: 10},
	}

	leading := ctx.Create(ir.VariantButton)
	leading.Style = &ir.Style{Width: ir.PX(50), Height: ir.PX(30), Visible: true, Opacity: 1}
	root.AddChild(leading)

	nested := ctx.Create(ir.VariantColumn)
	nested.Style = &ir.Style{Width: ir.PX(120), Height: ir.PX(80), Visible: true, Opacity: 1}
	nested.Layout = &ir.LayoutSpec{
		Mode: ir.LayoutFlex,
		Flex: &ir.Flexbox{Direction: ir.DirectionColumn},
	}
	root.AddChild(nested)

	leaf := ctx.Create(ir.VariantText)
	leaf.TextContent = "hi"
	leaf.Style = &ir.Style{Visible: true, Opacity: 1}
	nested.AddChild(leaf)

	require.True(t, nested.DirtyFlags.Has(ir.DirtyLayout))

	e := NewEngine()
	e.Compute(root, 500, 200)

	// leading occupies x=0..50, so nested (the second flex child) starts
	// at x = 50 + gap(10) = 60. Before the fix this collapsed to 0.
	assert.Equal(t, float32(60), nested.RenderedBounds.X)
	assert.Equal(t, float32(0), nested.RenderedBounds.Y)
	assert.True(t, nested.RenderedBounds.Valid)
}

// TestComputeSkipsCleanSubtree covers §4.2.3 step 1: a component with
// no DirtyLayout/DirtySubtree bit set is left untouched.
func TestComputeSkipsCleanSubtree(t *testing.T) {
	ctx := ir.NewContext()
	c := ctx.Create(ir.VariantContainer)
	c.DirtyFlags = 0
	c.RenderedBounds = ir.RenderedBounds{X: 5, Y: 5, W: 5, H: 5, Valid: true}

	e := NewEngine()
	e.Compute(c, 100, 100)

	assert.Equal(t, ir.RenderedBounds{X: 5, Y: 5, W: 5, H: 5, Valid: true}, c.RenderedBounds)
}

// TestComputeAbsolutePositionIgnoresParentOffset covers §4.2.3 step 7:
// an absolutely positioned component uses style.AbsoluteX/Y regardless
// of whatever offset its parent previously wrote onto its bounds.
func TestComputeAbsolutePositionIgnoresParentOffset(t *testing.T) {
	ctx := ir.NewContext()
	c := ctx.Create(ir.VariantContainer)
	c.Style = &ir.Style{
		Position:  ir.PositionAbsolute,
		AbsoluteX: 42,
		AbsoluteY: 7,
		Width:     ir.PX(10),
		Height:    ir.PX(10),
		Visible:   true,
		Opacity:   1,
	}
	c.DirtyFlags = ir.DirtyLayout
	c.RenderedBounds = ir.RenderedBounds{X: 999, Y: 999}

	e := NewEngine()
	e.Compute(c, 100, 100)

	assert.Equal(t, float32(42), c.RenderedBounds.X)
	assert.Equal(t, float32(7), c.RenderedBounds.Y)
}

// TestLayoutGridOffsetsByParentPadding covers §4.2.5 step 4: track
// positions are offset by the parent's content-box padding rather than
// starting at the component's own origin.
func TestLayoutGridOffsetsByParentPadding(t *testing.T) {
	ctx := ir.NewContext()
	grid := ctx.Create(ir.VariantContainer)
	ctx.SetRoot(grid)
	grid.Layout = &ir.LayoutSpec{
		Mode:    ir.LayoutGrid,
		Padding: ir.Spacing{Top: 5, Left: 8},
		Grid: &ir.Grid{
			Columns: []ir.GridTrack{{Kind: ir.TrackPX, Value: 50}},
			Rows:    []ir.GridTrack{{Kind: ir.TrackPX, Value: 50}},
		},
	}

	cell := ctx.Create(ir.VariantContainer)
	cell.Style = &ir.Style{Width: ir.PX(50), Height: ir.PX(50), Visible: true, Opacity: 1}
	grid.AddChild(cell)

	e := NewEngine()
	e.Compute(grid, 200, 200)

	assert.Equal(t, float32(8), cell.RenderedBounds.X)
	assert.Equal(t, float32(5), cell.RenderedBounds.Y)
}
