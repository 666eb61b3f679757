// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import (
	"log/slog"
	"math"
)

// maxGrowCapacity guards vector growth against overflow (§3.4
// "overflow-guarded growth predicate", §5 "Arrays grow by
// capacity-doubling guarded by an overflow check that refuses growth if
// capacity > MAX/2").
const maxGrowCapacity = math.MaxInt32 / 2

// VarType is the closed type tag of a reactive Variable's value (§3.4).
type VarType int8

const (
	VarInt VarType = iota
	VarFloat
	VarString
	VarBool
	VarCustom
)

// VarValue is a tagged value carried by a Variable, mirroring the
// tagged-value shape BytecodeMetadata.States and the VM's own stack
// values use (§3.4, §3.5, §4.4).
type VarValue struct {
	Type   VarType
	Int    int64
	Float  float64
	String string
	Bool   bool
}

// IntValue, FloatValue, StringValue, and BoolValue build tagged values.
func IntValue(v int64) VarValue      { return VarValue{Type: VarInt, Int: v} }
func FloatValue(v float64) VarValue  { return VarValue{Type: VarFloat, Float: v} }
func StringValue(v string) VarValue  { return VarValue{Type: VarString, String: v} }
func BoolValue(v bool) VarValue      { return VarValue{Type: VarBool, Bool: v} }

// Variable is one reactive-state slot (§3.4).
type Variable struct {
	ID      uint32
	Name    string
	Type    VarType
	Value   VarValue
	Version uint64

	TypeString        string `json:"type_string,omitempty"`
	InitialValueJSON  string `json:"initial_value_json,omitempty"`
	Scope             string `json:"scope,omitempty"`
}

// BindingType is the closed set of binding kinds (§3.4).
type BindingType int8

const (
	BindingText BindingType = iota
	BindingConditional
	BindingAttribute
	BindingForLoop
	BindingCustom
)

// Binding links a reactive variable to a component property (§3.4,
// GLOSSARY "Binding").
type Binding struct {
	ComponentID   uint32
	ReactiveVarID uint32
	Type          BindingType
	Expression    string
}

// Conditional is a show/hide branch keyed on an expression over
// dependent variables (§3.4).
type Conditional struct {
	ComponentID      uint32
	Condition        string
	DependentVarIDs  []uint32
	LastEvalResult   bool
	Suspended        bool
	ThenChildrenIDs  []uint32
	ElseChildrenIDs  []uint32
}

// ForLoop is a reactive for-loop binding over a collection (§3.4). This
// is the manifest-level record only; no package in this module
// materializes ForLoop entries into Component instances. The foreach
// package expands literal inline arrays directly on a ForEach Component,
// without a manifest ForLoop entry.
type ForLoop struct {
	ParentComponentID uint32
	CollectionExpr    string
	CollectionVarID   uint32
	ItemTemplateID    uint32
	ChildComponentIDs []uint32
}

// ComponentProp is one prop declaration of a ComponentDef (§3.4).
type ComponentProp struct {
	Name    string
	Type    VarType
	Default VarValue
}

// ComponentStateVar is one state-variable declaration of a ComponentDef
// (§3.4).
type ComponentStateVar struct {
	Name        string
	Type        VarType
	InitialExpr string
}

// ComponentDef is a named, reusable template: props, local state
// variables, and a template root Component (§3.4). KIR decoding restores
// definitions into the manifest before the root tree; references to a
// definition inside the tree are not expanded.
type ComponentDef struct {
	Name         string
	Props        []ComponentProp
	StateVars    []ComponentStateVar
	TemplateRoot *Component
}

// ReactiveManifest is the side structure accompanying a Component tree
// (§3.4): variables, bindings, conditionals, for-loops, component
// definitions, and a source archive for round-trip preservation.
type ReactiveManifest struct {
	Variables         []Variable
	Bindings          []Binding
	Conditionals      []Conditional
	ForLoops          []ForLoop
	ComponentDefs     []ComponentDef
	Sources           map[string]string // language -> code

	nextVarID uint32
}

// NewReactiveManifest returns an empty manifest, ready for the parser to
// populate while walking a source AST (§3.4 "Lifecycle").
func NewReactiveManifest() *ReactiveManifest {
	return &ReactiveManifest{
		Sources:   make(map[string]string),
		nextVarID: 1,
	}
}

// growOK reports whether a vector of the given current capacity may grow
// by doubling without overflowing (§3.4, §5).
func growOK(capacity int) bool {
	return capacity <= maxGrowCapacity
}

// AddVar appends a new reactive variable, returning its monotonically
// assigned id (§4.3 add_var). String-typed values are deep-copied (a
// no-op in Go's value semantics, but documented here because the
// equivalent C/Nim implementation must copy the backing buffer).
func (m *ReactiveManifest) AddVar(name string, typ VarType, value VarValue) uint32 {
	if !growOK(cap(m.Variables)) {
		slog.Warn("ir: refusing to grow manifest variables, capacity would overflow", "name", name, "capacity", cap(m.Variables))
		return 0 // warning-class: overflow would prevent array growth (§7)
	}
	id := m.nextVarID
	m.nextVarID++
	m.Variables = append(m.Variables, Variable{
		ID:    id,
		Name:  name,
		Type:  typ,
		Value: value,
	})
	return id
}

// SetVarMetadata replaces the three optional descriptive strings on the
// variable with the given id (§4.3 set_var_metadata). Returns false if
// the id is unknown.
func (m *ReactiveManifest) SetVarMetadata(id uint32, typeString, initialValueJSON, scope string) bool {
	for i := range m.Variables {
		if m.Variables[i].ID == id {
			m.Variables[i].TypeString = typeString
			m.Variables[i].InitialValueJSON = initialValueJSON
			m.Variables[i].Scope = scope
			return true
		}
	}
	return false
}

// FindVar performs a linear scan for a variable by name (§4.3 find_var:
// "adequate for expected sizes").
func (m *ReactiveManifest) FindVar(name string) (*Variable, bool) {
	for i := range m.Variables {
		if m.Variables[i].Name == name {
			return &m.Variables[i], true
		}
	}
	return nil, false
}

// GetVar performs a linear scan for a variable by id (§4.3 get_var).
func (m *ReactiveManifest) GetVar(id uint32) (*Variable, bool) {
	for i := range m.Variables {
		if m.Variables[i].ID == id {
			return &m.Variables[i], true
		}
	}
	return nil, false
}

// UpdateVar overwrites the value of the variable with the given id and
// bumps its Version (§4.3 update_var, §8 invariant 7 "monotonicity").
// Returns false if id is unknown.
func (m *ReactiveManifest) UpdateVar(id uint32, value VarValue) bool {
	for i := range m.Variables {
		if m.Variables[i].ID == id {
			m.Variables[i].Value = value
			m.Variables[i].Version++
			return true
		}
	}
	return false
}

// AddBinding appends a binding (§4.3 add_binding).
func (m *ReactiveManifest) AddBinding(componentID, varID uint32, typ BindingType, expression string) bool {
	if !growOK(cap(m.Bindings)) {
		return false
	}
	m.Bindings = append(m.Bindings, Binding{
		ComponentID:   componentID,
		ReactiveVarID: varID,
		Type:          typ,
		Expression:    expression,
	})
	return true
}

// AddConditional appends a conditional with LastEvalResult initialized
// to false (§4.3 add_conditional).
func (m *ReactiveManifest) AddConditional(componentID uint32, condition string, dependentVarIDs []uint32) bool {
	if !growOK(cap(m.Conditionals)) {
		return false
	}
	m.Conditionals = append(m.Conditionals, Conditional{
		ComponentID:     componentID,
		Condition:       condition,
		DependentVarIDs: append([]uint32(nil), dependentVarIDs...),
	})
	return true
}

// SetConditionalBranches updates the then/else child id lists of the
// first conditional matching componentID (§4.3
// set_conditional_branches). Returns false if no conditional matches.
func (m *ReactiveManifest) SetConditionalBranches(componentID uint32, thenIDs, elseIDs []uint32) bool {
	for i := range m.Conditionals {
		if m.Conditionals[i].ComponentID == componentID {
			m.Conditionals[i].ThenChildrenIDs = append([]uint32(nil), thenIDs...)
			m.Conditionals[i].ElseChildrenIDs = append([]uint32(nil), elseIDs...)
			return true
		}
	}
	return false
}

// AddForLoop appends a for-loop binding (§4.3 add_for_loop).
func (m *ReactiveManifest) AddForLoop(parentID uint32, collectionExpr string, collectionVarID uint32) bool {
	if !growOK(cap(m.ForLoops)) {
		return false
	}
	m.ForLoops = append(m.ForLoops, ForLoop{
		ParentComponentID: parentID,
		CollectionExpr:    collectionExpr,
		CollectionVarID:   collectionVarID,
	})
	return true
}

// AddComponentDef appends a new component definition, or updates the
// template root of an existing one with the same name (§4.3
// add_component_def).
func (m *ReactiveManifest) AddComponentDef(name string, props []ComponentProp, stateVars []ComponentStateVar, templateRoot *Component) {
	for i := range m.ComponentDefs {
		if m.ComponentDefs[i].Name == name {
			m.ComponentDefs[i].TemplateRoot = templateRoot
			return
		}
	}
	m.ComponentDefs = append(m.ComponentDefs, ComponentDef{
		Name:         name,
		Props:        append([]ComponentProp(nil), props...),
		StateVars:    append([]ComponentStateVar(nil), stateVars...),
		TemplateRoot: templateRoot,
	})
}

// FindComponentDef performs a linear scan for a component definition by
// name (§4.3 find_component_def).
func (m *ReactiveManifest) FindComponentDef(name string) (*ComponentDef, bool) {
	for i := range m.ComponentDefs {
		if m.ComponentDefs[i].Name == name {
			return &m.ComponentDefs[i], true
		}
	}
	return nil, false
}

// AddSource upserts the source text for a language, replacing it if
// already present (§4.3 add_source, §3.4 "Sources").
func (m *ReactiveManifest) AddSource(lang, code string) {
	if m.Sources == nil {
		m.Sources = make(map[string]string)
	}
	m.Sources[lang] = code
}
