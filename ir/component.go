// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

// DirtyFlags is a bitmask over the recomputation phases a Component may
// require (§3.1, GLOSSARY "Dirty flag").
type DirtyFlags uint8

const (
	DirtyStyle DirtyFlags = 1 << iota
	DirtyLayout
	DirtyChildren
	DirtyContent
	DirtySubtree
	DirtyRender
)

// Has reports whether all bits of mask are set in f.
func (f DirtyFlags) Has(mask DirtyFlags) bool { return f&mask == mask }

// Any reports whether any bit of mask is set in f.
func (f DirtyFlags) Any(mask DirtyFlags) bool { return f&mask != 0 }

// RenderedBounds is the layout engine's pixel output for a Component
// (§3.1). Valid is false until a layout pass has written to X/Y/W/H.
type RenderedBounds struct {
	X, Y, W, H float32
	Valid      bool
}

// uncachedSize is the sentinel distinguishing "not cached" from "cached
// zero" for intrinsic sizes (§4.2.1).
const uncachedSize float32 = -1.0

// LayoutCache holds the per-Component intrinsic-size memoization state
// (§3.1, §4.2.1).
type LayoutCache struct {
	Width      float32 // cached intrinsic width;  < 0 means not cached
	Height     float32 // cached intrinsic height; < 0 means not cached
	Dirty      bool
	Generation uint64
}

// NewLayoutCache returns a cache in the "not yet laid out" state.
func NewLayoutCache() LayoutCache {
	return LayoutCache{Width: uncachedSize, Height: uncachedSize, Dirty: true}
}

// Invalidate clears any cached intrinsic sizes and marks the cache dirty
// (§4.2.2 invalidate_cache, sans the generation bump and mark_dirty call
// which the layout package composes on top of this).
func (c *LayoutCache) Invalidate() {
	c.Width = uncachedSize
	c.Height = uncachedSize
	c.Dirty = true
}

// HasCachedSize reports whether both intrinsic dimensions are cached
// (§3.1 invariant 2).
func (c LayoutCache) HasCachedSize() bool {
	return !c.Dirty && c.Width >= 0 && c.Height >= 0
}

// CustomData is the variant-specific payload a Component carries
// (§3.1). It is a loosely-typed map so that every variant's bespoke
// fields (Heading.level/anchor, CodeBlock.language/source, Link.url/
// title, TableCell.colspan/rowspan/alignment, Dropdown.options, ...)
// round-trip through KIR without the core needing a per-variant Go
// struct for each one — exactly the role custom_data plays in the wire
// format itself (§3.1, §6).
type CustomData map[string]any

// Clone deep-copies a CustomData map. Nested maps/slices are copied
// shallowly beyond one level, which is sufficient for the JSON-shaped
// scalars and small collections custom_data carries in practice.
func (c CustomData) Clone() CustomData {
	if c == nil {
		return nil
	}
	cp := make(CustomData, len(c))
	for k, v := range c {
		switch vv := v.(type) {
		case []any:
			cp[k] = append([]any(nil), vv...)
		case map[string]any:
			nm := make(map[string]any, len(vv))
			for k2, v2 := range vv {
				nm[k2] = v2
			}
			cp[k] = nm
		default:
			cp[k] = v
		}
	}
	return cp
}

// Component is a node in the UI tree (§3.1). Every field it owns
// exclusively (Style, Layout, Events, CustomData, TextContent, Children)
// is destroyed recursively, depth-first, with the Component itself.
//
// Parent is a weak back-reference: lookup and traversal only, never
// ownership (§9 "Parent back-references"). It is implemented as a plain
// pointer rather than a handle/id because this module, unlike languages
// with strict ownership, has a garbage collector — but Destroy still
// nils it out on removal so a dangling Component cannot be mistaken for
// a live tree member.
type Component struct {
	id      uint32
	ctx     *Context
	Variant Variant

	Tag         string
	TextContent string
	CustomData  CustomData

	Style  *Style
	Layout *LayoutSpec
	Grid   GridItem

	Events []EventBinding

	Children []*Component
	Parent   *Component

	RenderedBounds RenderedBounds
	LayoutCache    LayoutCache
	DirtyFlags     DirtyFlags

	HasActiveAnimations bool

	// IterationIndex is set by ForEach expansion (§4.6 step 2) on each
	// materialized copy; -1 means "not a ForEach instance".
	IterationIndex int
}

// ID returns the Component's unique, context-assigned id (§3.1).
func (c *Component) ID() uint32 { return c.id }

// Context returns the Context that allocated c, or nil for a detached
// Component not (yet) owned by one.
func (c *Component) Context() *Context { return c.ctx }

// newComponent constructs a bare Component with default caches/grid
// item and no id (the caller assigns one via Context.create).
func newComponent(variant Variant) *Component {
	return &Component{
		Variant:        variant,
		Grid:           DefaultGridItem(),
		LayoutCache:    NewLayoutCache(),
		IterationIndex: -1,
	}
}

// AddChild appends child to c.Children and sets child.Parent = c,
// invalidating c's layout cache (§4.1). A nil child, or a child that
// already has a different parent, is rejected silently (no-op) per the
// §4.1 "invalid parent/child relationships are rejected silently" rule.
func (c *Component) AddChild(child *Component) bool {
	if c == nil || child == nil || child.Parent != nil {
		return false
	}
	child.Parent = c
	c.Children = append(c.Children, child)
	c.LayoutCache.Invalidate()
	c.DirtyFlags |= DirtyChildren | DirtyLayout
	return true
}

// RemoveChild detaches child from c.Children if present, clearing its
// Parent. Returns false (no-op) if child is not a direct child of c.
func (c *Component) RemoveChild(child *Component) bool {
	if c == nil || child == nil {
		return false
	}
	for i, k := range c.Children {
		if k == child {
			c.Children = append(c.Children[:i], c.Children[i+1:]...)
			child.Parent = nil
			c.LayoutCache.Invalidate()
			c.DirtyFlags |= DirtyChildren | DirtyLayout
			return true
		}
	}
	return false
}

// IndexOfChild returns the index of child within c.Children, or -1.
func (c *Component) IndexOfChild(child *Component) int {
	for i, k := range c.Children {
		if k == child {
			return i
		}
	}
	return -1
}

// Destroy recursively frees c's subtree, depth-first (§4.1). If c is
// registered with a Context (i.e. was created via Context.Create), it is
// removed from the id map and, if it has a parent, detached from it.
func (c *Component) Destroy() {
	if c == nil {
		return
	}
	// Iterate over a copy: each child.Destroy detaches itself from
	// c.Children through RemoveChild.
	for _, child := range append([]*Component(nil), c.Children...) {
		child.Destroy()
	}
	c.Children = nil
	if c.ctx != nil {
		c.ctx.forget(c)
	}
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	c.Parent = nil
}

// DeepCopy clones all data c owns (Style, Layout, Events, CustomData,
// TextContent, Children), resetting layout state to "not yet laid out"
// and clearing the cached identity (id, Context membership, Parent) so
// the copy is a free-standing detached tree (§4.1). This is the routine
// ForEach expansion (§4.6) uses so that expanded instances receive
// fresh layout rather than sharing the template's cache.
func (c *Component) DeepCopy() *Component {
	if c == nil {
		return nil
	}
	cp := &Component{
		Variant:             c.Variant,
		Tag:                 c.Tag,
		TextContent:         c.TextContent,
		CustomData:          c.CustomData.Clone(),
		Style:               c.Style.Clone(),
		Layout:              c.Layout.Clone(),
		Grid:                c.Grid,
		RenderedBounds:      RenderedBounds{}, // not yet laid out
		LayoutCache:         NewLayoutCache(),
		DirtyFlags:          DirtyLayout | DirtySubtree,
		HasActiveAnimations: c.HasActiveAnimations,
		IterationIndex:      c.IterationIndex,
	}
	if c.Events != nil {
		cp.Events = make([]EventBinding, len(c.Events))
		for i, e := range c.Events {
			cp.Events[i] = e.Clone()
		}
	}
	for _, child := range c.Children {
		childCopy := child.DeepCopy()
		cp.AddChild(childCopy)
	}
	return cp
}

// EnsureStyle default-constructs c.Style if absent (§4.2.3 step 2).
func (c *Component) EnsureStyle() *Style {
	if c.Style == nil {
		c.Style = DefaultStyle()
	}
	return c.Style
}

// EnsureLayout default-constructs c.Layout if absent (§4.2.3 step 2).
func (c *Component) EnsureLayout() *LayoutSpec {
	if c.Layout == nil {
		c.Layout = DefaultLayoutSpec()
	}
	return c.Layout
}

// Visible reports whether c participates in layout/rendering: a
// Component is invisible if its Style explicitly sets Visible = false.
// Absent Style defaults to visible (§3.1).
func (c *Component) Visible() bool {
	return c.Style == nil || c.Style.Visible
}
