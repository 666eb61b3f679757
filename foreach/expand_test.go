// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package foreach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryonlabs/kryon-sub005/ir"
)

// TestExpandInlineJSON covers scenario S7: a root-level ForEach over an
// inline JSON array expands into one ListItem per element, with
// per-element text binding applied, and the ForEach node itself
// survives as a transparent wrapper retaining the expanded children.
func TestExpandInlineJSON(t *testing.T) {
	ctx := ir.NewContext()
	forEach := ctx.Create(ir.VariantForEach)
	ctx.SetRoot(forEach)

	template := ctx.Create(ir.VariantListItem)
	forEach.AddChild(template)

	instances, err := Expand(ctx, forEach, Source{InlineJSON: `["a","b","c"]`}, template, []Binding{
		StringPath(""),
	})
	require.NoError(t, err)
	require.Len(t, instances, 3)

	assert.Same(t, forEach, ctx.Root())
	require.Len(t, forEach.Children, 3)
	assert.Equal(t, "a", forEach.Children[0].TextContent)
	assert.Equal(t, "b", forEach.Children[1].TextContent)
	assert.Equal(t, "c", forEach.Children[2].TextContent)

	for _, inst := range forEach.Children {
		assert.Equal(t, forEach, inst.Parent)
		assert.NotZero(t, inst.ID())
		assert.Same(t, inst, ctx.FindByID(inst.ID()))
	}

	assert.Equal(t, 0, forEach.Children[0].IterationIndex)
	assert.Equal(t, 2, forEach.Children[2].IterationIndex)
}

// TestExpandNonRootReplacesInPlace covers in-place replacement when the
// ForEach node has a parent: the parent's children list keeps its
// surrounding siblings and the ForEach node itself is destroyed.
func TestExpandNonRootReplacesInPlace(t *testing.T) {
	ctx := ir.NewContext()
	root := ctx.Create(ir.VariantContainer)
	ctx.SetRoot(root)

	before := ctx.Create(ir.VariantText)
	before.TextContent = "before"
	root.AddChild(before)

	forEach := ctx.Create(ir.VariantForEach)
	root.AddChild(forEach)
	template := ctx.Create(ir.VariantListItem)
	forEach.AddChild(template)

	after := ctx.Create(ir.VariantText)
	after.TextContent = "after"
	root.AddChild(after)

	instances, err := Expand(ctx, forEach, Source{InlineJSON: `[1,2]`}, template, nil)
	require.NoError(t, err)
	require.Len(t, instances, 2)

	require.Len(t, root.Children, 4)
	assert.Equal(t, "before", root.Children[0].TextContent)
	assert.Same(t, instances[0], root.Children[1])
	assert.Same(t, instances[1], root.Children[2])
	assert.Equal(t, "after", root.Children[3].TextContent)

	assert.Nil(t, ctx.FindByID(forEach.ID()))
}

func TestExpandNestedForEach(t *testing.T) {
	ctx := ir.NewContext()
	outer := ctx.Create(ir.VariantForEach)
	ctx.SetRoot(outer)

	outerTemplate := ctx.Create(ir.VariantRow)
	outer.AddChild(outerTemplate)

	innerForEach := ctx.Create(ir.VariantForEach)
	innerForEach.CustomData = ir.CustomData{"foreach_source": `["x","y"]`}
	outerTemplate.AddChild(innerForEach)
	innerTemplate := ctx.Create(ir.VariantSpan)
	innerForEach.AddChild(innerTemplate)

	instances, err := Expand(ctx, outer, Source{InlineJSON: `[1]`}, outerTemplate, nil)
	require.NoError(t, err)
	require.Len(t, instances, 1)

	// The nested ForEach has a parent (the row copy), so its expansion
	// replaces it in that parent with one Span per element.
	row := instances[0]
	require.Len(t, row.Children, 2)
	assert.Equal(t, ir.VariantSpan, row.Children[0].Variant)
	assert.Equal(t, ir.VariantSpan, row.Children[1].Variant)
}
