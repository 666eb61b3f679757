// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryonlabs/kryon-sub005/ir"
)

// buildScenario builds the S6 fixture: a Container#1 "app" wrapping a
// Button#2 "Increment", with a four-variable reactive manifest and two
// bytecode functions plus two host-function declarations.
func buildScenario() (*ir.Context, *Document) {
	ctx := ir.NewContext()
	app := ctx.Create(ir.VariantContainer)
	app.Tag = "app"
	btn := ctx.Create(ir.VariantButton)
	btn.TextContent = "Increment"
	app.AddChild(btn)
	ctx.SetRoot(app)

	manifest := ir.NewReactiveManifest()
	manifest.AddVar("counter", ir.VarInt, ir.VarValue{Type: ir.VarInt, Int: 0})
	manifest.AddVar("message", ir.VarString, ir.VarValue{Type: ir.VarString, String: "Hello"})
	manifest.AddVar("enabled", ir.VarBool, ir.VarValue{Type: ir.VarBool, Bool: true})
	manifest.AddVar("progress", ir.VarFloat, ir.VarValue{Type: ir.VarFloat, Float: 0.5})

	bytecode := &ir.BytecodeMetadata{
		Functions: []ir.Function{
			{
				ID:   1,
				Name: "increment",
				Instructions: []ir.Instruction{
					{Op: ir.OpGetState, Arg: ir.Arg{Kind: ir.ArgID, ID: 0}},
					{Op: ir.OpPushInt, Arg: ir.Arg{Kind: ir.ArgInt64, Int: 1}},
					{Op: ir.OpAdd},
					{Op: ir.OpSetState, Arg: ir.Arg{Kind: ir.ArgID, ID: 0}},
					{Op: ir.OpReturn},
				},
			},
			{
				ID:   2,
				Name: "reset",
				Instructions: []ir.Instruction{
					{Op: ir.OpPushInt, Arg: ir.Arg{Kind: ir.ArgInt64, Int: 0}},
					{Op: ir.OpSetState, Arg: ir.Arg{Kind: ir.ArgID, ID: 0}},
					{Op: ir.OpReturn},
				},
			},
		},
		States: []ir.State{
			{ID: 0, Name: "counter", Initial: ir.VarValue{Type: ir.VarInt, Int: 0}},
		},
		HostFunctions: []ir.HostFunction{
			{ID: 0, Name: "log", Signature: "(string) -> void", Required: false},
			{ID: 1, Name: "navigate", Signature: "(string) -> bool", Required: true},
		},
	}

	doc := &Document{
		Metadata: map[string]string{"title": "Counter"},
		App:      map[string]string{"version": "1.0"},
		Manifest: manifest,
		Bytecode: bytecode,
		Root:     app,
	}
	return ctx, doc
}

func TestJSONRoundTripScenario(t *testing.T) {
	_, doc := buildScenario()

	data, err := Marshal(doc)
	require.NoError(t, err)

	ctx2 := ir.NewContext()
	got, err := Unmarshal(data, ctx2)
	require.NoError(t, err)

	assert.Equal(t, doc.Metadata, got.Metadata)
	assert.Equal(t, doc.App, got.App)

	require.NotNil(t, got.Root)
	assert.Equal(t, ir.VariantContainer, got.Root.Variant)
	assert.Equal(t, "app", got.Root.Tag)
	require.Len(t, got.Root.Children, 1)
	assert.Equal(t, ir.VariantButton, got.Root.Children[0].Variant)
	assert.Equal(t, "Increment", got.Root.Children[0].TextContent)

	require.Len(t, got.Manifest.Variables, 4)
	byName := map[string]ir.Variable{}
	for _, v := range got.Manifest.Variables {
		byName[v.Name] = v
	}
	assert.Equal(t, int64(0), byName["counter"].Value.Int)
	assert.Equal(t, "Hello", byName["message"].Value.String)
	assert.Equal(t, true, byName["enabled"].Value.Bool)
	assert.Equal(t, 0.5, byName["progress"].Value.Float)

	require.Len(t, got.Bytecode.Functions, 2)
	assert.Equal(t, "increment", got.Bytecode.Functions[0].Name)
	assert.Equal(t, 5, len(got.Bytecode.Functions[0].Instructions))
	assert.Equal(t, ir.OpAdd, got.Bytecode.Functions[0].Instructions[2].Op)
	assert.Equal(t, "reset", got.Bytecode.Functions[1].Name)

	require.Len(t, got.Bytecode.HostFunctions, 2)
	assert.Equal(t, "log", got.Bytecode.HostFunctions[0].Name)
	assert.False(t, got.Bytecode.HostFunctions[0].Required)
	assert.Equal(t, "navigate", got.Bytecode.HostFunctions[1].Name)
	assert.True(t, got.Bytecode.HostFunctions[1].Required)
}

func TestJSONRoundTripIsByteStable(t *testing.T) {
	_, doc := buildScenario()

	data1, err := Marshal(doc)
	require.NoError(t, err)

	ctx2 := ir.NewContext()
	redecoded, err := Unmarshal(data1, ctx2)
	require.NoError(t, err)

	data2, err := Marshal(redecoded)
	require.NoError(t, err)

	assert.JSONEq(t, string(data1), string(data2))
}

func TestUnmarshalRejectsInvalidJSON(t *testing.T) {
	ctx := ir.NewContext()
	_, err := Unmarshal([]byte("{not json"), ctx)
	assert.Error(t, err)
}

func TestUnknownVariantBecomesContainer(t *testing.T) {
	ctx := ir.NewContext()
	j := &componentJSON{Type: "SomeFutureWidget", ID: 7}
	c := componentFromJSON(ctx, j)
	assert.Equal(t, ir.VariantContainer, c.Variant)
}
