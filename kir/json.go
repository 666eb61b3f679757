// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kir

import (
	"encoding/json"
	"fmt"

	"github.com/kryonlabs/kryon-sub005/ir"
)

// componentJSON is the wire shape of one Component node (§6 "Component
// object"). ir.Style, ir.LayoutSpec, and ir.EventBinding already carry
// their own json tags and marshal/unmarshal through encoding/json
// unaided.
type componentJSON struct {
	Type        string             `json:"type"`
	ID          uint32             `json:"id"`
	Tag         string             `json:"tag,omitempty"`
	TextContent string             `json:"text_content,omitempty"`
	CustomData  map[string]any     `json:"custom_data,omitempty"`
	Style       *ir.Style          `json:"style,omitempty"`
	Layout      *ir.LayoutSpec     `json:"layout,omitempty"`
	Grid        *ir.GridItem       `json:"grid,omitempty"`
	Events      []ir.EventBinding  `json:"events,omitempty"`
	Children    []*componentJSON   `json:"children,omitempty"`
}

// componentToJSON walks c and produces its wire form (§4.8 "Emit path").
func componentToJSON(c *ir.Component) *componentJSON {
	if c == nil {
		return nil
	}
	j := &componentJSON{
		Type:        c.Variant.String(),
		ID:          c.ID(),
		Tag:         c.Tag,
		TextContent: c.TextContent,
		Style:       c.Style,
		Layout:      c.Layout,
		Events:      c.Events,
	}
	if c.CustomData != nil {
		j.CustomData = map[string]any(c.CustomData)
	}
	if g := c.Grid; g != ir.DefaultGridItem() {
		gg := g
		j.Grid = &gg
	}
	for _, child := range c.Children {
		j.Children = append(j.Children, componentToJSON(child))
	}
	return j
}

// componentFromJSON constructs a Component in ctx from its wire form
// (§4.8 "Parse path"). Unknown variants deserialize as Container, per
// ir.VariantFromName.
func componentFromJSON(ctx *ir.Context, j *componentJSON) *ir.Component {
	if j == nil {
		return nil
	}
	c := ctx.Create(ir.VariantFromName(j.Type))
	c.Tag = j.Tag
	c.TextContent = j.TextContent
	if j.CustomData != nil {
		c.CustomData = ir.CustomData(j.CustomData)
	}
	c.Style = j.Style
	c.Layout = j.Layout
	if j.Grid != nil {
		c.Grid = *j.Grid
	}
	c.Events = j.Events
	for _, childJSON := range j.Children {
		child := componentFromJSON(ctx, childJSON)
		c.AddChild(child)
	}
	return c
}

// varValueJSON is the tagged-union wire form of an ir.VarValue.
type varValueJSON struct {
	Type   string  `json:"type"`
	Int    int64   `json:"int,omitempty"`
	Float  float64 `json:"float,omitempty"`
	String string  `json:"string,omitempty"`
	Bool   bool    `json:"bool,omitempty"`
}

func varTypeName(t ir.VarType) string {
	switch t {
	case ir.VarFloat:
		return "float"
	case ir.VarString:
		return "string"
	case ir.VarBool:
		return "bool"
	case ir.VarCustom:
		return "custom"
	default:
		return "int"
	}
}

func varTypeFromName(name string) ir.VarType {
	switch name {
	case "float":
		return ir.VarFloat
	case "string":
		return ir.VarString
	case "bool":
		return ir.VarBool
	case "custom":
		return ir.VarCustom
	default:
		return ir.VarInt
	}
}

func varValueToJSON(v ir.VarValue) varValueJSON {
	return varValueJSON{
		Type:   varTypeName(v.Type),
		Int:    v.Int,
		Float:  v.Float,
		String: v.String,
		Bool:   v.Bool,
	}
}

func varValueFromJSON(j varValueJSON) ir.VarValue {
	return ir.VarValue{
		Type:   varTypeFromName(j.Type),
		Int:    j.Int,
		Float:  j.Float,
		String: j.String,
		Bool:   j.Bool,
	}
}

type variableJSON struct {
	ID               uint32       `json:"id"`
	Name             string       `json:"name"`
	Value            varValueJSON `json:"value"`
	Version          uint64       `json:"version"`
	TypeString       string       `json:"type_string,omitempty"`
	InitialValueJSON string       `json:"initial_value_json,omitempty"`
	Scope            string       `json:"scope,omitempty"`
}

type bindingJSON struct {
	ComponentID   uint32 `json:"component_id"`
	ReactiveVarID uint32 `json:"reactive_var_id"`
	Type          string `json:"type"`
	Expression    string `json:"expression,omitempty"`
}

func bindingTypeName(t ir.BindingType) string {
	switch t {
	case ir.BindingConditional:
		return "conditional"
	case ir.BindingAttribute:
		return "attribute"
	case ir.BindingForLoop:
		return "for_loop"
	case ir.BindingCustom:
		return "custom"
	default:
		return "text"
	}
}

func bindingTypeFromName(name string) ir.BindingType {
	switch name {
	case "conditional":
		return ir.BindingConditional
	case "attribute":
		return ir.BindingAttribute
	case "for_loop":
		return ir.BindingForLoop
	case "custom":
		return ir.BindingCustom
	default:
		return ir.BindingText
	}
}

type conditionalJSON struct {
	ComponentID     uint32   `json:"component_id"`
	Condition       string   `json:"condition"`
	DependentVarIDs []uint32 `json:"dependent_var_ids,omitempty"`
	LastEvalResult  bool     `json:"last_eval_result"`
	Suspended       bool     `json:"suspended"`
	ThenChildrenIDs []uint32 `json:"then_children_ids,omitempty"`
	ElseChildrenIDs []uint32 `json:"else_children_ids,omitempty"`
}

type forLoopJSON struct {
	ParentComponentID uint32   `json:"parent_component_id"`
	CollectionExpr    string   `json:"collection_expr"`
	CollectionVarID   uint32   `json:"collection_var_id"`
	ItemTemplateID    uint32   `json:"item_template_id"`
	ChildComponentIDs []uint32 `json:"child_component_ids,omitempty"`
}

type componentPropJSON struct {
	Name    string       `json:"name"`
	Type    string       `json:"type"`
	Default varValueJSON `json:"default"`
}

type componentStateVarJSON struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	InitialExpr string `json:"initial_expr,omitempty"`
}

type componentDefJSON struct {
	Name      string                  `json:"name"`
	Props     []componentPropJSON     `json:"props,omitempty"`
	StateVars []componentStateVarJSON `json:"state_vars,omitempty"`
	Template  *componentJSON          `json:"template,omitempty"`
}

type reactiveManifestJSON struct {
	Variables     []variableJSON    `json:"variables,omitempty"`
	Bindings      []bindingJSON     `json:"bindings,omitempty"`
	Conditionals  []conditionalJSON `json:"conditionals,omitempty"`
	ForLoops      []forLoopJSON     `json:"for_loops,omitempty"`
	Sources       map[string]string `json:"sources,omitempty"`
}

func manifestToJSON(m *ir.ReactiveManifest) *reactiveManifestJSON {
	if m == nil {
		return nil
	}
	j := &reactiveManifestJSON{Sources: m.Sources}
	for _, v := range m.Variables {
		j.Variables = append(j.Variables, variableJSON{
			ID:               v.ID,
			Name:             v.Name,
			Value:            varValueToJSON(v.Value),
			Version:          v.Version,
			TypeString:       v.TypeString,
			InitialValueJSON: v.InitialValueJSON,
			Scope:            v.Scope,
		})
	}
	for _, b := range m.Bindings {
		j.Bindings = append(j.Bindings, bindingJSON{
			ComponentID:   b.ComponentID,
			ReactiveVarID: b.ReactiveVarID,
			Type:          bindingTypeName(b.Type),
			Expression:    b.Expression,
		})
	}
	for _, c := range m.Conditionals {
		j.Conditionals = append(j.Conditionals, conditionalJSON{
			ComponentID:     c.ComponentID,
			Condition:       c.Condition,
			DependentVarIDs: c.DependentVarIDs,
			LastEvalResult:  c.LastEvalResult,
			Suspended:       c.Suspended,
			ThenChildrenIDs: c.ThenChildrenIDs,
			ElseChildrenIDs: c.ElseChildrenIDs,
		})
	}
	for _, f := range m.ForLoops {
		j.ForLoops = append(j.ForLoops, forLoopJSON{
			ParentComponentID: f.ParentComponentID,
			CollectionExpr:    f.CollectionExpr,
			CollectionVarID:   f.CollectionVarID,
			ItemTemplateID:    f.ItemTemplateID,
			ChildComponentIDs: f.ChildComponentIDs,
		})
	}
	return j
}

// manifestFromJSON reconstructs a ReactiveManifest, preserving variable
// ids exactly (it does not re-derive them from AddVar's counter, since
// the wire form's ids are authoritative on round-trip).
func manifestFromJSON(j *reactiveManifestJSON) *ir.ReactiveManifest {
	m := ir.NewReactiveManifest()
	if j == nil {
		return m
	}
	for _, v := range j.Variables {
		m.Variables = append(m.Variables, ir.Variable{
			ID:               v.ID,
			Name:             v.Name,
			Type:             varTypeFromName(v.Value.Type),
			Value:            varValueFromJSON(v.Value),
			Version:          v.Version,
			TypeString:       v.TypeString,
			InitialValueJSON: v.InitialValueJSON,
			Scope:            v.Scope,
		})
	}
	for _, b := range j.Bindings {
		m.Bindings = append(m.Bindings, ir.Binding{
			ComponentID:   b.ComponentID,
			ReactiveVarID: b.ReactiveVarID,
			Type:          bindingTypeFromName(b.Type),
			Expression:    b.Expression,
		})
	}
	for _, c := range j.Conditionals {
		m.Conditionals = append(m.Conditionals, ir.Conditional{
			ComponentID:     c.ComponentID,
			Condition:       c.Condition,
			DependentVarIDs: c.DependentVarIDs,
			LastEvalResult:  c.LastEvalResult,
			Suspended:       c.Suspended,
			ThenChildrenIDs: c.ThenChildrenIDs,
			ElseChildrenIDs: c.ElseChildrenIDs,
		})
	}
	for _, f := range j.ForLoops {
		m.ForLoops = append(m.ForLoops, ir.ForLoop{
			ParentComponentID: f.ParentComponentID,
			CollectionExpr:    f.CollectionExpr,
			CollectionVarID:   f.CollectionVarID,
			ItemTemplateID:    f.ItemTemplateID,
			ChildComponentIDs: f.ChildComponentIDs,
		})
	}
	if j.Sources != nil {
		m.Sources = j.Sources
	}
	return m
}

type argJSON struct {
	Kind   string  `json:"kind"`
	Int    int64   `json:"int,omitempty"`
	Float  float64 `json:"float,omitempty"`
	String string  `json:"string,omitempty"`
	Bool   bool    `json:"bool,omitempty"`
	ID     uint32  `json:"id,omitempty"`
	Offset int32   `json:"offset,omitempty"`
}

func argKindName(k ir.ArgKind) string {
	switch k {
	case ir.ArgInt64:
		return "int"
	case ir.ArgFloat64:
		return "float"
	case ir.ArgString:
		return "string"
	case ir.ArgBool:
		return "bool"
	case ir.ArgID:
		return "id"
	case ir.ArgOffset:
		return "offset"
	default:
		return "none"
	}
}

func argKindFromName(name string) ir.ArgKind {
	switch name {
	case "int":
		return ir.ArgInt64
	case "float":
		return ir.ArgFloat64
	case "string":
		return ir.ArgString
	case "bool":
		return ir.ArgBool
	case "id":
		return ir.ArgID
	case "offset":
		return ir.ArgOffset
	default:
		return ir.ArgNone
	}
}

func argToJSON(a ir.Arg) argJSON {
	return argJSON{
		Kind: argKindName(a.Kind), Int: a.Int, Float: a.Float,
		String: a.String, Bool: a.Bool, ID: a.ID, Offset: a.Offset,
	}
}

func argFromJSON(j argJSON) ir.Arg {
	return ir.Arg{
		Kind: argKindFromName(j.Kind), Int: j.Int, Float: j.Float,
		String: j.String, Bool: j.Bool, ID: j.ID, Offset: j.Offset,
	}
}

type instructionJSON struct {
	Op  string  `json:"op"`
	Arg argJSON `json:"arg"`
}

type functionJSON struct {
	ID           uint32            `json:"id"`
	Name         string            `json:"name"`
	Instructions []instructionJSON `json:"instructions,omitempty"`
}

type stateJSON struct {
	ID      uint32       `json:"id"`
	Name    string       `json:"name"`
	Initial varValueJSON `json:"initial"`
}

type hostFunctionJSON struct {
	ID        uint32 `json:"id"`
	Name      string `json:"name"`
	Signature string `json:"signature,omitempty"`
	Required  bool   `json:"required"`
}

type bytecodeJSON struct {
	Functions     []functionJSON     `json:"functions,omitempty"`
	States        []stateJSON        `json:"states,omitempty"`
	HostFunctions []hostFunctionJSON `json:"host_functions,omitempty"`
}

func bytecodeToJSON(b *ir.BytecodeMetadata) *bytecodeJSON {
	if b == nil {
		return nil
	}
	j := &bytecodeJSON{}
	for _, f := range b.Functions {
		fj := functionJSON{ID: f.ID, Name: f.Name}
		for _, instr := range f.Instructions {
			fj.Instructions = append(fj.Instructions, instructionJSON{
				Op: instr.Op.String(), Arg: argToJSON(instr.Arg),
			})
		}
		j.Functions = append(j.Functions, fj)
	}
	for _, s := range b.States {
		j.States = append(j.States, stateJSON{ID: s.ID, Name: s.Name, Initial: varValueToJSON(s.Initial)})
	}
	for _, h := range b.HostFunctions {
		j.HostFunctions = append(j.HostFunctions, hostFunctionJSON{
			ID: h.ID, Name: h.Name, Signature: h.Signature, Required: h.Required,
		})
	}
	return j
}

var opcodeByName = map[string]ir.Opcode{
	"PUSH_INT": ir.OpPushInt, "PUSH_FLOAT": ir.OpPushFloat,
	"PUSH_STRING": ir.OpPushString, "PUSH_BOOL": ir.OpPushBool,
	"GET_STATE": ir.OpGetState, "SET_STATE": ir.OpSetState,
	"ADD": ir.OpAdd, "SUB": ir.OpSub, "MUL": ir.OpMul, "DIV": ir.OpDiv,
	"GT": ir.OpGT, "LT": ir.OpLT, "EQ": ir.OpEQ, "NE": ir.OpNE,
	"GE": ir.OpGE, "LE": ir.OpLE,
	"JUMP": ir.OpJump, "JUMP_IF_FALSE": ir.OpJumpIfFalse,
	"CALL_HOST": ir.OpCallHost, "RETURN": ir.OpReturn, "HALT": ir.OpHalt,
}

func bytecodeFromJSON(j *bytecodeJSON) *ir.BytecodeMetadata {
	b := &ir.BytecodeMetadata{}
	if j == nil {
		return b
	}
	for _, fj := range j.Functions {
		f := ir.Function{ID: fj.ID, Name: fj.Name}
		for _, ij := range fj.Instructions {
			f.Instructions = append(f.Instructions, ir.Instruction{
				Op: opcodeByName[ij.Op], Arg: argFromJSON(ij.Arg),
			})
		}
		b.Functions = append(b.Functions, f)
	}
	for _, sj := range j.States {
		b.States = append(b.States, ir.State{ID: sj.ID, Name: sj.Name, Initial: varValueFromJSON(sj.Initial)})
	}
	for _, hj := range j.HostFunctions {
		b.HostFunctions = append(b.HostFunctions, ir.HostFunction{
			ID: hj.ID, Name: hj.Name, Signature: hj.Signature, Required: hj.Required,
		})
	}
	return b
}

type stylesheetJSON struct {
	Variables map[string]ir.Color `json:"variables,omitempty"`
}

func stylesheetToJSON(s *ir.Stylesheet) *stylesheetJSON {
	if s == nil || len(s.Variables) == 0 {
		return nil
	}
	j := &stylesheetJSON{Variables: make(map[string]ir.Color, len(s.Variables))}
	for id, c := range s.Variables {
		j.Variables[fmt.Sprintf("%d", id)] = c
	}
	return j
}

func stylesheetFromJSON(j *stylesheetJSON) *ir.Stylesheet {
	if j == nil {
		return nil
	}
	s := &ir.Stylesheet{Variables: make(map[uint16]ir.Color, len(j.Variables))}
	for k, c := range j.Variables {
		var id uint16
		fmt.Sscanf(k, "%d", &id)
		s.Variables[id] = c
	}
	return s
}

type sourceJSON struct {
	Lang string `json:"lang"`
	Code string `json:"code"`
}

// envelope is the top-level KIR JSON document shape (§6 "Top level
// keys").
type envelope struct {
	Format               string                `json:"format"`
	Metadata             map[string]string     `json:"metadata,omitempty"`
	App                  map[string]string     `json:"app,omitempty"`
	ComponentDefinitions []componentDefJSON    `json:"component_definitions,omitempty"`
	ReactiveManifest     *reactiveManifestJSON `json:"reactive_manifest,omitempty"`
	Stylesheet           *stylesheetJSON       `json:"stylesheet,omitempty"`
	SourceStructures     map[string]string     `json:"source_structures,omitempty"`
	CMetadata            map[string]string     `json:"c_metadata,omitempty"`
	LogicBlock           *bytecodeJSON         `json:"logic_block,omitempty"`
	Root                 *componentJSON        `json:"root,omitempty"`
	Sources              []sourceJSON          `json:"sources,omitempty"`
}

// Marshal serializes doc to canonical KIR JSON (§4.8 "Emit path").
func Marshal(doc *Document) ([]byte, error) {
	env := envelope{
		Format:           "kir",
		Metadata:         doc.Metadata,
		App:              doc.App,
		ReactiveManifest: manifestToJSON(doc.Manifest),
		Stylesheet:       stylesheetToJSON(doc.Stylesheet),
		SourceStructures: doc.SourceStructures,
		CMetadata:        doc.CMetadata,
		LogicBlock:       bytecodeToJSON(doc.Bytecode),
		Root:             componentToJSON(doc.Root),
	}
	if doc.Manifest != nil {
		for _, def := range doc.Manifest.ComponentDefs {
			dj := componentDefJSON{Name: def.Name, Template: componentToJSON(def.TemplateRoot)}
			for _, p := range def.Props {
				dj.Props = append(dj.Props, componentPropJSON{
					Name: p.Name, Type: varTypeName(p.Type), Default: varValueToJSON(p.Default),
				})
			}
			for _, sv := range def.StateVars {
				dj.StateVars = append(dj.StateVars, componentStateVarJSON{
					Name: sv.Name, Type: varTypeName(sv.Type), InitialExpr: sv.InitialExpr,
				})
			}
			env.ComponentDefinitions = append(env.ComponentDefinitions, dj)
		}
	}
	for _, s := range doc.Sources {
		env.Sources = append(env.Sources, sourceJSON{Lang: s.Lang, Code: s.Code})
	}
	return json.Marshal(env)
}

// Unmarshal parses KIR JSON into a fresh Document (§4.8 "Parse path").
// component_definitions are decoded into the manifest before the root
// tree is built; references to them inside the tree are not expanded.
// Unknown top-level keys are ignored.
func Unmarshal(data []byte, ctx *ir.Context) (*Document, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("kir: invalid JSON: %w", err)
	}

	manifest := manifestFromJSON(env.ReactiveManifest)
	for _, dj := range env.ComponentDefinitions {
		var props []ir.ComponentProp
		for _, p := range dj.Props {
			props = append(props, ir.ComponentProp{
				Name: p.Name, Type: varTypeFromName(p.Type), Default: varValueFromJSON(p.Default),
			})
		}
		var stateVars []ir.ComponentStateVar
		for _, sv := range dj.StateVars {
			stateVars = append(stateVars, ir.ComponentStateVar{
				Name: sv.Name, Type: varTypeFromName(sv.Type), InitialExpr: sv.InitialExpr,
			})
		}
		template := componentFromJSON(ctx, dj.Template)
		manifest.AddComponentDef(dj.Name, props, stateVars, template)
	}

	doc := &Document{
		Metadata:         env.Metadata,
		App:              env.App,
		Manifest:         manifest,
		Bytecode:         bytecodeFromJSON(env.LogicBlock),
		Stylesheet:       stylesheetFromJSON(env.Stylesheet),
		SourceStructures: env.SourceStructures,
		CMetadata:        env.CMetadata,
		Root:             componentFromJSON(ctx, env.Root),
	}
	for _, s := range env.Sources {
		doc.Sources = append(doc.Sources, SourceEntry{Lang: s.Lang, Code: s.Code})
	}
	if doc.Root != nil {
		ctx.SetRoot(doc.Root)
	}
	return doc, nil
}
