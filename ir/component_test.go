// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddChildInvariant1 covers §8 universal invariant 1: a child
// appears in its parent's Children exactly once after AddChild.
func TestAddChildInvariant1(t *testing.T) {
	ctx := NewContext()
	parent := ctx.Create(VariantContainer)
	child := ctx.Create(VariantText)

	ok := parent.AddChild(child)
	assert.True(t, ok)
	assert.Equal(t, 0, parent.IndexOfChild(child))
	assert.Same(t, parent, child.Parent)

	count := 0
	for _, c := range parent.Children {
		if c == child {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAddChildRejectsNilAndReparent(t *testing.T) {
	ctx := NewContext()
	parent := ctx.Create(VariantContainer)
	other := ctx.Create(VariantContainer)
	child := ctx.Create(VariantText)

	assert.False(t, parent.AddChild(nil))

	require.True(t, parent.AddChild(child))
	// child already has a parent: a second AddChild onto a different
	// parent is rejected silently (§4.1).
	assert.False(t, other.AddChild(child))
	assert.Same(t, parent, child.Parent)
}

func TestRemoveChildDetaches(t *testing.T) {
	ctx := NewContext()
	parent := ctx.Create(VariantContainer)
	child := ctx.Create(VariantText)
	parent.AddChild(child)

	ok := parent.RemoveChild(child)
	assert.True(t, ok)
	assert.Nil(t, child.Parent)
	assert.Equal(t, -1, parent.IndexOfChild(child))

	// Removing again is a no-op.
	assert.False(t, parent.RemoveChild(child))
}

// TestMarkDirtyPlumbingInvariant3 covers §8 universal invariant 3: every
// ancestor of a dirtied node has SUBTREE set and an invalidated cache.
// MarkDirty itself lives in the layout package, but the dirty-flag
// plumbing it relies on (DirtyFlags, LayoutCache.Invalidate,
// AncestorsDirty) lives here.
func TestMarkDirtyPlumbingInvariant3(t *testing.T) {
	ctx := NewContext()
	root := ctx.Create(VariantContainer)
	mid := ctx.Create(VariantRow)
	leaf := ctx.Create(VariantText)
	root.AddChild(mid)
	mid.AddChild(leaf)

	// Simulate what layout.MarkDirty(leaf) does, since layout depends on
	// ir and cannot be imported back here.
	leaf.DirtyFlags |= DirtyLayout
	leaf.LayoutCache.Dirty = true
	for p := leaf.Parent; p != nil; p = p.Parent {
		p.DirtyFlags |= DirtySubtree
		p.LayoutCache.Invalidate()
	}

	assert.True(t, leaf.AncestorsDirty())
	assert.True(t, mid.DirtyFlags.Has(DirtySubtree))
	assert.True(t, mid.LayoutCache.Dirty)
	assert.True(t, root.DirtyFlags.Has(DirtySubtree))
	assert.True(t, root.LayoutCache.Dirty)
}

func TestValidateCatchesParentMismatch(t *testing.T) {
	ctx := NewContext()
	root := ctx.Create(VariantContainer)
	child := ctx.Create(VariantText)
	root.AddChild(child)

	// Force a dangling/inconsistent parent pointer without going through
	// AddChild/RemoveChild.
	child.Parent = ctx.Create(VariantContainer)

	err := root.Validate()
	assert.Error(t, err)
}

func TestValidateCatchesDirtyCacheMismatch(t *testing.T) {
	ctx := NewContext()
	c := ctx.Create(VariantContainer)
	c.LayoutCache.Dirty = false
	c.LayoutCache.Width = -1
	c.LayoutCache.Height = 10

	err := c.Validate()
	assert.Error(t, err)
}

func TestValidateCatchesHeadingLevelOutOfRange(t *testing.T) {
	ctx := NewContext()
	h := ctx.Create(VariantHeading)
	h.CustomData = CustomData{"level": 9}

	err := h.Validate()
	assert.Error(t, err)
}

func TestValidateAcceptsCleanTree(t *testing.T) {
	ctx := NewContext()
	root := ctx.Create(VariantContainer)
	child := ctx.Create(VariantText)
	root.AddChild(child)

	// A freshly created tree is dirty by construction (NewLayoutCache),
	// which Validate accepts: Dirty==true has no constraint on cached
	// size.
	assert.NoError(t, root.Validate())
}

func TestDeepCopyDetachesAndResetsLayout(t *testing.T) {
	ctx := NewContext()
	root := ctx.Create(VariantRow)
	root.TextContent = "parent"
	child := ctx.Create(VariantText)
	child.TextContent = "hello"
	root.AddChild(child)

	// Populate the cache so DeepCopy's reset is observable.
	root.LayoutCache.Width = 42
	root.LayoutCache.Height = 42
	root.LayoutCache.Dirty = false

	cp := root.DeepCopy()

	require.NotSame(t, root, cp)
	assert.Nil(t, cp.ctx)
	assert.Zero(t, cp.id)
	assert.Nil(t, cp.Parent)
	assert.Equal(t, "parent", cp.TextContent)
	assert.True(t, cp.LayoutCache.Dirty)
	assert.Equal(t, float32(-1), cp.LayoutCache.Width)
	assert.Equal(t, float32(-1), cp.LayoutCache.Height)
	assert.True(t, cp.DirtyFlags.Has(DirtyLayout|DirtySubtree))

	require.Len(t, cp.Children, 1)
	childCopy := cp.Children[0]
	assert.NotSame(t, child, childCopy)
	assert.Equal(t, "hello", childCopy.TextContent)
	assert.Same(t, cp, childCopy.Parent)

	// Mutating the copy must not affect the original.
	childCopy.TextContent = "changed"
	assert.Equal(t, "hello", child.TextContent)
}

func TestDeepCopyClonesCustomDataIndependently(t *testing.T) {
	ctx := NewContext()
	c := ctx.Create(VariantHeading)
	c.CustomData = CustomData{"level": 2}

	cp := c.DeepCopy()
	cp.CustomData["level"] = 3

	assert.Equal(t, 2, c.CustomData["level"])
	assert.Equal(t, 3, cp.CustomData["level"])
}

func TestContextAdoptAssignsFreshIDs(t *testing.T) {
	ctx := NewContext()
	root := ctx.Create(VariantRow)
	child := ctx.Create(VariantText)
	root.AddChild(child)

	detached := root.DeepCopy()
	assert.Zero(t, detached.id)

	ctx.Adopt(detached)

	assert.NotZero(t, detached.ID())
	assert.Same(t, detached, ctx.FindByID(detached.ID()))
	require.Len(t, detached.Children, 1)
	assert.NotZero(t, detached.Children[0].ID())
	assert.Same(t, detached.Children[0], ctx.FindByID(detached.Children[0].ID()))
	assert.NotEqual(t, detached.ID(), detached.Children[0].ID())
}

func TestDestroyRemovesFromParentAndContext(t *testing.T) {
	ctx := NewContext()
	root := ctx.Create(VariantRow)
	child := ctx.Create(VariantText)
	root.AddChild(child)

	id := child.ID()
	child.Destroy()

	assert.Equal(t, -1, root.IndexOfChild(child))
	assert.Nil(t, ctx.FindByID(id))
	assert.Nil(t, child.Parent)
}
