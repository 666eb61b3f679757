// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import "sync"

// Stylesheet is an opaque handle resolved by style-variable Color
// references (§3.2, §9). Its contents are out of core scope; only the
// lookup contract is specified.
type Stylesheet struct {
	Variables map[uint16]Color
}

// Lookup resolves a style-variable id to a Color. A miss returns
// Transparent and false (warning-class per §7; callers log through the
// owning Context).
func (s *Stylesheet) Lookup(id uint16) (Color, bool) {
	if s == nil {
		return Transparent(), false
	}
	c, ok := s.Variables[id]
	if !ok {
		return Transparent(), false
	}
	return c, true
}

// Context is the process-wide IR context (§5 "Shared resources"): the
// current root, the id allocator, a component pool, and an id->Component
// map. There is exactly one active Context per caller at a time; it is
// installed explicitly (there is no ambient global in this module, per
// §9's "carry it as an explicit argument" recommendation — the only
// concession to the "optional convenience singleton" is the package
// level SetCurrent/Current pair below).
//
// Scheduling is single-threaded and cooperative (§5): Context does not
// synchronize its own mutation and holds no lock. The only mutex is the
// package-level currentMu, which guards the SetCurrent/Current
// convenience pointer against being read mid-install from a different
// goroutine; it does not make concurrent tree mutation safe.
type Context struct {
	root *Component

	nextID uint32
	byID   map[uint32]*Component

	pool []*Component // free-list of recycled Component allocations

	Stylesheet *Stylesheet
}

// NewContext allocates a fresh, empty Context (§5 "init").
func NewContext() *Context {
	return &Context{
		nextID: 1,
		byID:   make(map[uint32]*Component),
	}
}

// Root returns the current root Component, or nil.
func (ctx *Context) Root() *Component { return ctx.root }

// SetRoot installs root as the Context's current root (§5 "set").
func (ctx *Context) SetRoot(root *Component) { ctx.root = root }

// Create allocates a new Component of the given variant, assigns it the
// next monotonic id, registers it in the id map, and returns it (§4.1
// create). A pooled, previously-destroyed allocation is reused when
// available (§2 row 1 "Arena allocators").
func (ctx *Context) Create(variant Variant) *Component {
	var c *Component
	if n := len(ctx.pool); n > 0 {
		c = ctx.pool[n-1]
		ctx.pool = ctx.pool[:n-1]
		*c = *newComponent(variant)
	} else {
		c = newComponent(variant)
	}
	c.ctx = ctx
	c.id = ctx.nextID
	ctx.nextID++
	ctx.byID[c.id] = c
	return c
}

// FindByID looks up a Component by id using the Context's hash map
// (§4.1 find_by_id).
func (ctx *Context) FindByID(id uint32) *Component {
	return ctx.byID[id]
}

// Adopt registers a detached subtree (as produced by Component.DeepCopy)
// with ctx, assigning each node a fresh monotonic id depth-first. Nodes
// already owned by a Context are left untouched. This is how ForEach
// expansion (§4.6) turns a freshly-copied template instance into a
// first-class, id-addressable member of the tree.
func (ctx *Context) Adopt(root *Component) {
	if root == nil || root.ctx != nil {
		return
	}
	root.ctx = ctx
	root.id = ctx.nextID
	ctx.nextID++
	ctx.byID[root.id] = root
	for _, child := range root.Children {
		ctx.Adopt(child)
	}
}

// forget removes c from the id map and returns its allocation to the
// pool for reuse, called from Component.Destroy.
func (ctx *Context) forget(c *Component) {
	delete(ctx.byID, c.id)
	ctx.pool = append(ctx.pool, c)
}

// Teardown destroys the current tree, drains the pool, and clears the
// id map (§5 "teardown").
func (ctx *Context) Teardown() {
	if ctx.root != nil {
		ctx.root.Destroy()
		ctx.root = nil
	}
	ctx.byID = make(map[uint32]*Component)
	ctx.pool = nil
}

var (
	currentMu sync.Mutex
	current   *Context
)

// SetCurrent installs ctx as the package-level convenience context
// (§9 "the singleton only as an optional convenience"). Passing an
// explicit *Context to every call remains the primary, required pattern;
// this exists only for callers (CLI tools, tests) that want a default.
func SetCurrent(ctx *Context) {
	currentMu.Lock()
	current = ctx
	currentMu.Unlock()
}

// Current returns the package-level convenience context installed by
// SetCurrent, or nil if none has been installed.
func Current() *Context {
	currentMu.Lock()
	defer currentMu.Unlock()
	return current
}
