// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import "github.com/kryonlabs/kryon-sub005/ir"

// Value is a tagged stack slot (§3.5, §4.4). Only Int, Float, String, and
// Bool are reachable from bytecode; Custom values never appear on the
// VM stack.
type Value struct {
	Type   ir.VarType
	Int    int64
	Float  float64
	String string
	Bool   bool
}

// IntValue, FloatValue, StringValue, and BoolValue construct tagged
// stack values.
func IntValue(v int64) Value      { return Value{Type: ir.VarInt, Int: v} }
func FloatValue(v float64) Value  { return Value{Type: ir.VarFloat, Float: v} }
func StringValue(v string) Value  { return Value{Type: ir.VarString, String: v} }
func BoolValue(v bool) Value      { return Value{Type: ir.VarBool, Bool: v} }

// FromVarValue converts a reactive-manifest VarValue into a VM Value.
func FromVarValue(v ir.VarValue) Value {
	switch v.Type {
	case ir.VarFloat:
		return FloatValue(v.Float)
	case ir.VarString:
		return StringValue(v.String)
	case ir.VarBool:
		return BoolValue(v.Bool)
	default:
		return IntValue(v.Int)
	}
}

// ToVarValue converts a VM Value back into a reactive-manifest VarValue.
func (v Value) ToVarValue() ir.VarValue {
	switch v.Type {
	case ir.VarFloat:
		return ir.FloatValue(v.Float)
	case ir.VarString:
		return ir.StringValue(v.String)
	case ir.VarBool:
		return ir.BoolValue(v.Bool)
	default:
		return ir.IntValue(v.Int)
	}
}

// asFloat widens an Int value to float64 for mixed-type arithmetic
// (§4.4 "any float operand promotes the result to float").
func (v Value) asFloat() float64 {
	if v.Type == ir.VarFloat {
		return v.Float
	}
	return float64(v.Int)
}

// truthy implements the VM's boolean-coercion rule for JUMP_IF_FALSE:
// bool values are used directly, numeric zero is false,
// a non-empty string is true.
func (v Value) truthy() bool {
	switch v.Type {
	case ir.VarBool:
		return v.Bool
	case ir.VarFloat:
		return v.Float != 0
	case ir.VarString:
		return v.String != ""
	default:
		return v.Int != 0
	}
}
