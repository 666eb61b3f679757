// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryonlabs/kryon-sub005/ir"
)

// TestArithmetic covers scenario S1: PUSH_INT 5; PUSH_INT 3; ADD; HALT
// leaves an int 8 on top of the stack.
func TestArithmetic(t *testing.T) {
	fn := &ir.Function{Name: "add", Instructions: []ir.Instruction{
		{Op: ir.OpPushInt, Arg: ir.IntArg(5)},
		{Op: ir.OpPushInt, Arg: ir.IntArg(3)},
		{Op: ir.OpAdd},
		{Op: ir.OpHalt},
	}}

	m := New(&ir.BytecodeMetadata{})
	res := m.Execute(fn)

	require.True(t, res.Executed)
	require.True(t, res.Halted)
	top, ok := res.Top()
	require.True(t, ok)
	assert.Equal(t, ir.VarInt, top.Type)
	assert.Equal(t, int64(8), top.Int)
}

// TestStateIncrement covers scenario S2: GET_STATE; PUSH_INT 1; ADD;
// SET_STATE increments a state slot, and repeated execution against
// varying initial states always adds exactly one.
func TestStateIncrement(t *testing.T) {
	const stateID = uint32(1)
	meta := &ir.BytecodeMetadata{States: []ir.State{
		{ID: stateID, Name: "count", Initial: ir.IntValue(0)},
	}}
	fn := &ir.Function{Name: "increment", Instructions: []ir.Instruction{
		{Op: ir.OpGetState, Arg: ir.IDArg(stateID)},
		{Op: ir.OpPushInt, Arg: ir.IntArg(1)},
		{Op: ir.OpAdd},
		{Op: ir.OpSetState, Arg: ir.IDArg(stateID)},
		{Op: ir.OpHalt},
	}}

	m := New(meta)
	for i, start := range []int64{0, 10, -5, 41} {
		m.SetState(stateID, IntValue(start))
		res := m.Execute(fn)
		require.True(t, res.Executed, "run %d", i)
		v, ok := m.State(stateID)
		require.True(t, ok)
		assert.Equal(t, start+1, v.Int, "run %d", i)
	}
}

// TestStackUnderflow covers scenario S3: an ADD against an empty stack
// is a recoverable failure, not a panic.
func TestStackUnderflow(t *testing.T) {
	fn := &ir.Function{Name: "bad", Instructions: []ir.Instruction{
		{Op: ir.OpAdd},
		{Op: ir.OpHalt},
	}}

	m := New(&ir.BytecodeMetadata{})
	res := m.Execute(fn)

	assert.False(t, res.Executed)
	assert.True(t, res.Halted)
	assert.NotEmpty(t, res.Errors)
}

func TestDivisionByZero(t *testing.T) {
	fn := &ir.Function{Instructions: []ir.Instruction{
		{Op: ir.OpPushInt, Arg: ir.IntArg(1)},
		{Op: ir.OpPushInt, Arg: ir.IntArg(0)},
		{Op: ir.OpDiv},
		{Op: ir.OpHalt},
	}}
	res := New(&ir.BytecodeMetadata{}).Execute(fn)
	assert.False(t, res.Executed)
	assert.NotEmpty(t, res.Errors)
}

func TestFloatPromotion(t *testing.T) {
	fn := &ir.Function{Instructions: []ir.Instruction{
		{Op: ir.OpPushInt, Arg: ir.IntArg(2)},
		{Op: ir.OpPushFloat, Arg: ir.FloatArg(0.5)},
		{Op: ir.OpMul},
		{Op: ir.OpHalt},
	}}
	res := New(&ir.BytecodeMetadata{}).Execute(fn)
	top, ok := res.Top()
	require.True(t, ok)
	assert.Equal(t, ir.VarFloat, top.Type)
	assert.InDelta(t, 1.0, top.Float, 1e-9)
}

func TestJumpIfFalse(t *testing.T) {
	// if (0) PUSH_INT 1 else PUSH_INT 2
	fn := &ir.Function{Instructions: []ir.Instruction{
		{Op: ir.OpPushBool, Arg: ir.BoolArg(false)},
		{Op: ir.OpJumpIfFalse, Arg: ir.OffsetArg(2)},
		{Op: ir.OpPushInt, Arg: ir.IntArg(1)},
		{Op: ir.OpJump, Arg: ir.OffsetArg(1)},
		{Op: ir.OpPushInt, Arg: ir.IntArg(2)},
		{Op: ir.OpHalt},
	}}
	res := New(&ir.BytecodeMetadata{}).Execute(fn)
	top, ok := res.Top()
	require.True(t, ok)
	assert.Equal(t, int64(2), top.Int)
}

func TestCallHostRequiredMissing(t *testing.T) {
	meta := &ir.BytecodeMetadata{HostFunctions: []ir.HostFunction{
		{ID: 7, Name: "log", Required: true},
	}}
	fn := &ir.Function{Instructions: []ir.Instruction{
		{Op: ir.OpCallHost, Arg: ir.IDArg(7)},
		{Op: ir.OpHalt},
	}}
	res := New(meta).Execute(fn)
	assert.False(t, res.Executed)
	assert.NotEmpty(t, res.Errors)
}

func TestCallHostOptionalMissingIsNoop(t *testing.T) {
	meta := &ir.BytecodeMetadata{HostFunctions: []ir.HostFunction{
		{ID: 7, Name: "log", Required: false},
	}}
	fn := &ir.Function{Instructions: []ir.Instruction{
		{Op: ir.OpCallHost, Arg: ir.IDArg(7)},
		{Op: ir.OpHalt},
	}}
	res := New(meta).Execute(fn)
	assert.True(t, res.Executed)
}

func TestCallHostRegistered(t *testing.T) {
	m := New(&ir.BytecodeMetadata{})
	m.RegisterHost(3, func(args []Value) (Value, error) {
		return IntValue(42), nil
	})
	fn := &ir.Function{Instructions: []ir.Instruction{
		{Op: ir.OpCallHost, Arg: ir.IDArg(3)},
		{Op: ir.OpHalt},
	}}
	res := m.Execute(fn)
	top, ok := res.Top()
	require.True(t, ok)
	assert.Equal(t, int64(42), top.Int)
}
