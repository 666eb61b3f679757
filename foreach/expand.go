// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package foreach implements ForEach expansion (§4.6): materializing a
// VariantForEach Component's item template into one concrete copy per
// element of its source collection, with per-element binding resolution
// and property-path application.
package foreach

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/kryonlabs/kryon-sub005/ir"
	"github.com/kryonlabs/kryon-sub005/layout"
)

// Source supplies the collection a ForEach expands over. InlineJSON
// covers §4.6's literal-JSON-array scenario (S7); a bound collection
// driven by a reactive variable is a ForLoop manifest entry instead
// (§3.4 ForLoop) and is out of this package's scope.
type Source struct {
	InlineJSON string
}

// Item is one element of an expanded collection, already decoded.
type Item struct {
	Index int
	Value any
}

// items decodes the source's JSON array into a slice of loosely-typed
// values, one per element (§4.6 step 1). An empty source and the
// deferred-collection marker "__runtime__" both yield no items.
func (s Source) items() ([]Item, error) {
	trimmed := strings.TrimSpace(s.InlineJSON)
	if trimmed == "" || trimmed == "__runtime__" {
		return nil, nil
	}
	var raw []any
	if err := json.Unmarshal([]byte(s.InlineJSON), &raw); err != nil {
		return nil, err
	}
	out := make([]Item, len(raw))
	for i, v := range raw {
		out[i] = Item{Index: i, Value: v}
	}
	return out, nil
}

// Binding describes one property-path write to apply to each
// materialized copy, resolved against the item value (§4.6 step 3
// "per-element binding resolution and property-path application").
// Path is a dot-separated walk into a JSON-object item (e.g. "name" or
// "address.city"); an empty Path means "the whole item".
type Binding struct {
	Path   string
	Target func(copy *ir.Component, value any)
}

// Expand materializes template once per element of source (§4.6). It
// rebuilds parent's Children, removing the original ForEach node and
// replacing it in place with the expanded instances — except at the
// tree root, where the ForEach node's own Children are replaced with
// the expansion and the node itself survives as a transparent wrapper
// (§4.6 "root-level ForEach retains its own identity"). Nested ForEach
// templates are expanded recursively before being attached. Returns the
// materialized component pointers, in source order.
func Expand(ctx *ir.Context, node *ir.Component, source Source, template *ir.Component, bindings []Binding) ([]*ir.Component, error) {
	items, err := source.items()
	if err != nil {
		return nil, err
	}

	instances := make([]*ir.Component, 0, len(items))
	for _, item := range items {
		cp := template.DeepCopy()
		cp.IterationIndex = item.Index
		applyBindings(cp, item.Value, bindings)
		expandNested(ctx, cp)
		ctx.Adopt(cp)
		layout.MarkDirty(cp)
		instances = append(instances, cp)
	}

	parent := node.Parent
	if parent == nil {
		// Root-level ForEach: keep node's identity, replace its children.
		for _, old := range append([]*ir.Component(nil), node.Children...) {
			node.RemoveChild(old)
			old.Destroy()
		}
		for _, inst := range instances {
			node.AddChild(inst)
		}
		layout.MarkDirty(node)
		return instances, nil
	}

	idx := parent.IndexOfChild(node)
	parent.RemoveChild(node)
	node.Destroy()
	insertChildrenAt(parent, idx, instances)
	layout.MarkDirty(parent)
	return instances, nil
}

// insertChildrenAt splices instances into parent.Children at position
// idx (idx is the original ForEach node's position; RemoveChild has
// already closed the gap it left), preserving sibling order. It bypasses
// AddChild's append-only behavior but reproduces its side effects
// (Parent assignment, cache invalidation, dirty flags).
func insertChildrenAt(parent *ir.Component, idx int, instances []*ir.Component) {
	if idx < 0 || idx > len(parent.Children) {
		idx = len(parent.Children)
	}
	for _, inst := range instances {
		inst.Parent = parent
	}
	rebuilt := make([]*ir.Component, 0, len(parent.Children)+len(instances))
	rebuilt = append(rebuilt, parent.Children[:idx]...)
	rebuilt = append(rebuilt, instances...)
	rebuilt = append(rebuilt, parent.Children[idx:]...)
	parent.Children = rebuilt
	parent.LayoutCache.Invalidate()
	parent.DirtyFlags |= ir.DirtyChildren | ir.DirtyLayout
}

// applyBindings writes each binding's resolved value from item into the
// materialized copy (§4.6 step 3).
func applyBindings(cp *ir.Component, item any, bindings []Binding) {
	for _, b := range bindings {
		v := resolvePath(item, b.Path)
		if v == nil && b.Path != "" {
			slog.Warn("foreach: binding path did not resolve against item, skipping", "path", b.Path, "component", cp.ID())
			continue
		}
		if b.Target != nil {
			b.Target(cp, v)
		}
	}
}

// resolvePath walks a dot-separated path into a decoded JSON value.
// An empty path returns item unchanged.
func resolvePath(item any, path string) any {
	if path == "" {
		return item
	}
	cur := item
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[seg]
		if !ok {
			return nil
		}
	}
	return cur
}

// expandNested recursively expands any VariantForEach descendants of cp
// that carry an inline-JSON source stashed in CustomData under the
// "foreach_source" key by the parser (§4.6 "nested ForEach recursive
// expansion"). A template with no such descendants is a no-op.
func expandNested(ctx *ir.Context, cp *ir.Component) {
	for _, child := range append([]*ir.Component(nil), cp.Children...) {
		if child.Variant != ir.VariantForEach {
			expandNested(ctx, child)
			continue
		}
		raw, ok := child.CustomData["foreach_source"]
		if !ok {
			continue
		}
		src, ok := raw.(string)
		if !ok {
			continue
		}
		if len(child.Children) == 0 {
			continue
		}
		nestedTemplate := child.Children[0]
		_, _ = Expand(ctx, child, Source{InlineJSON: src}, nestedTemplate, nil)
	}
}

// StringPath is a convenience Binding.Target for setting TextContent
// from a resolved path value.
func StringPath(path string) Binding {
	return Binding{Path: path, Target: func(cp *ir.Component, v any) {
		cp.TextContent = stringify(v)
	}}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}
