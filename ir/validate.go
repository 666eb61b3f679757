// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import "fmt"

// Validate walks the subtree rooted at c and checks the universal
// invariants of §3.1/§8 that do not require the layout or reactive
// subsystems to evaluate: parent/child consistency, the layout-cache/
// dirty-flag relationship, Heading level bounds, and List type bounds.
// It returns the first violation found, or nil.
func (c *Component) Validate() error {
	return c.validate(nil)
}

func (c *Component) validate(parent *Component) error {
	if parent != nil {
		if c.Parent != parent {
			return fmt.Errorf("component %d: parent pointer does not match tree position", c.id)
		}
		if parent.IndexOfChild(c) < 0 {
			return fmt.Errorf("component %d: not found in parent %d's children", c.id, parent.id)
		}
	}
	if !c.LayoutCache.Dirty {
		if c.LayoutCache.Width < 0 || c.LayoutCache.Height < 0 {
			return fmt.Errorf("component %d: cache clean but has negative cached size", c.id)
		}
	}
	if c.DirtyFlags.Has(DirtyLayout) && !c.LayoutCache.Dirty {
		return fmt.Errorf("component %d: DirtyLayout set but layout_cache.dirty is false", c.id)
	}
	if c.Variant == VariantHeading {
		if lvl, ok := c.CustomData["level"]; ok {
			level, _ := toInt(lvl)
			if level < 1 || level > 6 {
				return fmt.Errorf("component %d: Heading level %v out of [1,6]", c.id, lvl)
			}
		}
	}
	if c.Variant == VariantList {
		if t, ok := c.CustomData["type"]; ok {
			switch t {
			case "ordered", "unordered":
			default:
				return fmt.Errorf("component %d: List type %v not in {ordered, unordered}", c.id, t)
			}
		}
	}
	if parent != nil && parent.Layout != nil && parent.Layout.Mode == LayoutGrid && parent.Layout.Grid != nil {
		g := parent.Layout.Grid
		if (c.Grid.RowStart >= 0 && int(c.Grid.RowStart) > len(g.Rows)) ||
			(c.Grid.ColumnStart >= 0 && int(c.Grid.ColumnStart) > len(g.Columns)) {
			return fmt.Errorf("component %d: grid item placement out of track range", c.id)
		}
	}
	for _, child := range c.Children {
		if err := child.validate(c); err != nil {
			return err
		}
	}
	return nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case float32:
		return int(n), true
	default:
		return 0, false
	}
}

// AncestorsDirty reports whether every ancestor of c has DirtySubtree set
// and an invalidated layout cache, the postcondition mark_dirty (§4.2.2)
// establishes and §8 invariant 3 tests.
func (c *Component) AncestorsDirty() bool {
	for p := c.Parent; p != nil; p = p.Parent {
		if !p.DirtyFlags.Has(DirtySubtree) || !p.LayoutCache.Dirty {
			return false
		}
	}
	return true
}
