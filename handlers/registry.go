// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package handlers implements the closed, per-variant dispatch table of
// §4.7: a registry of optional capability functions keyed by
// ir.Variant. Absence of an entry, or of a given capability within an
// entry, is a valid state — callers fall back to variant-generic
// behavior (the layout package's own intrinsic-size table, ir's default
// styling, etc).
package handlers

import (
	"fmt"

	"github.com/kryonlabs/kryon-sub005/ir"
)

// SerializeFunc, DeserializeFunc, MeasureFunc, DefaultStyleFunc,
// ApplyStyleFunc, ValidateFunc, ToStringFunc, and LayoutFunc are the
// eight capabilities an Entry may provide (§4.7).
type (
	SerializeFunc   func(c *ir.Component) (map[string]any, bool)
	DeserializeFunc func(data map[string]any, c *ir.Component) bool
	MeasureFunc     func(c *ir.Component) (width, height float32, ok bool)
	DefaultStyleFunc func() *ir.Style
	ApplyStyleFunc  func(c *ir.Component) bool
	ValidateFunc    func(c *ir.Component) (msg string, ok bool)
	ToStringFunc    func(c *ir.Component) string
	LayoutFunc      func(c *ir.Component, availW, availH, parentX, parentY float32)
)

// Entry bundles the capability functions registered for one variant.
// Every field is optional.
type Entry struct {
	Serialize       SerializeFunc
	Deserialize     DeserializeFunc
	Measure         MeasureFunc
	GetDefaultStyle DefaultStyleFunc
	ApplyStyle      ApplyStyleFunc
	Validate        ValidateFunc
	ToString        ToStringFunc
	LayoutComponent LayoutFunc
}

// Registry is the closed-set table of §4.7, populated once during core
// initialization (NewRegistry/DefaultRegistry) and read thereafter.
type Registry struct {
	entries map[ir.Variant]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[ir.Variant]Entry)}
}

// Register installs (or replaces) the entry for variant.
func (r *Registry) Register(variant ir.Variant, entry Entry) {
	r.entries[variant] = entry
}

// Get returns the entry registered for variant, and whether one exists.
func (r *Registry) Get(variant ir.Variant) (Entry, bool) {
	e, ok := r.entries[variant]
	return e, ok
}

// Measure implements layout.Measurer, letting a *Registry be plugged
// directly into a layout.Engine (§4.7 "measure", §4.2.1 step "handler
// override"). A variant with no entry, or an entry with no Measure
// capability, reports ok=false so the layout engine falls back to its
// own per-variant table.
func (r *Registry) Measure(c *ir.Component) (width, height float32, ok bool) {
	e, found := r.entries[c.Variant]
	if !found || e.Measure == nil {
		return 0, 0, false
	}
	return e.Measure(c)
}

// ApplyStyle runs the registered ApplyStyle capability for c, reporting
// true (handled) only if an entry and capability exist and returned
// true (§4.7 "apply_style(component) -> bool").
func (r *Registry) ApplyStyle(c *ir.Component) bool {
	e, found := r.entries[c.Variant]
	if !found || e.ApplyStyle == nil {
		return false
	}
	return e.ApplyStyle(c)
}

// Validate runs the registered Validate capability for c, falling back
// to ir.Component.Validate's variant-generic checks when absent.
func (r *Registry) Validate(c *ir.Component) (string, bool) {
	e, found := r.entries[c.Variant]
	if found && e.Validate != nil {
		return e.Validate(c)
	}
	if err := c.Validate(); err != nil {
		return err.Error(), false
	}
	return "", true
}

// ToString runs the registered ToString capability, falling back to a
// generic "<Variant>#<id>" description when absent.
func (r *Registry) ToString(c *ir.Component) string {
	e, found := r.entries[c.Variant]
	if found && e.ToString != nil {
		return e.ToString(c)
	}
	return fmt.Sprintf("%s#%d", c.Variant, c.ID())
}

// DefaultRegistry returns a Registry pre-populated with the handful of
// variant-specific capabilities this module implements directly: the
// custom_data-bearing variants the HTML/CSS backend collaborator needs
// semantic overrides for (§6), built on top of ir.Component.Validate's
// existing custom_data range checks.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(ir.VariantHeading, Entry{
		ToString: func(c *ir.Component) string {
			level := 1
			if v, ok := c.CustomData["level"]; ok {
				if f, ok := v.(float64); ok {
					level = int(f)
				}
			}
			return fmt.Sprintf("Heading(level=%d)#%d", level, c.ID())
		},
	})

	r.Register(ir.VariantList, Entry{
		ToString: func(c *ir.Component) string {
			kind := "unordered"
			if v, ok := c.CustomData["type"]; ok {
				if s, ok := v.(string); ok {
					kind = s
				}
			}
			return fmt.Sprintf("List(%s)#%d", kind, c.ID())
		},
	})

	r.Register(ir.VariantCodeBlock, Entry{
		ToString: func(c *ir.Component) string {
			lang := ""
			if v, ok := c.CustomData["language"]; ok {
				if s, ok := v.(string); ok {
					lang = s
				}
			}
			return fmt.Sprintf("CodeBlock(%s)#%d", lang, c.ID())
		},
	})

	r.Register(ir.VariantLink, Entry{
		ToString: func(c *ir.Component) string {
			url := ""
			if v, ok := c.CustomData["url"]; ok {
				if s, ok := v.(string); ok {
					url = s
				}
			}
			return fmt.Sprintf("Link(%s)#%d", url, c.ID())
		},
	})

	return r
}
