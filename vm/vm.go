// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"fmt"

	"github.com/kryonlabs/kryon-sub005/ir"
)

// MaxStackDepth bounds the VM's operand stack (§4.4 "a fixed-depth stack,
// overflow is a recoverable failure").
const MaxStackDepth = 256

// HostFunc is a host-callable function bound by id via RegisterHost
// (§3.5 HostFunction, §4.4 CALL_HOST).
type HostFunc func(args []Value) (Value, error)

// Machine executes one ir.Function's instruction stream against a
// caller-owned state map and host-function table (§4.4). The zero
// Machine is not usable; construct with New.
type Machine struct {
	meta   *ir.BytecodeMetadata
	states map[uint32]Value
	hosts  map[uint32]HostFunc

	stack []Value
	pc    int
}

// New returns a Machine bound to the given bytecode metadata. State
// slots declared in meta.States are seeded from their initial values.
func New(meta *ir.BytecodeMetadata) *Machine {
	m := &Machine{
		meta:   meta,
		states: make(map[uint32]Value),
		hosts:  make(map[uint32]HostFunc),
	}
	if meta != nil {
		for _, s := range meta.States {
			m.states[s.ID] = FromVarValue(s.Initial)
		}
	}
	return m
}

// RegisterHost binds a host implementation to a declared host-function
// id (§4.4 CALL_HOST).
func (m *Machine) RegisterHost(id uint32, fn HostFunc) {
	m.hosts[id] = fn
}

// State returns the current value of a state slot.
func (m *Machine) State(id uint32) (Value, bool) {
	v, ok := m.states[id]
	return v, ok
}

// SetState overwrites a state slot directly, bypassing bytecode. Useful
// for seeding §4.4 scenario S2's varying initial states between runs.
func (m *Machine) SetState(id uint32, v Value) {
	m.states[id] = v
}

// Result is the outcome of one Execute call (§4.4, §7).
type Result struct {
	Stack   []Value  // the operand stack at halt, top last
	Halted  bool     // true once HALT executes or execution stops abnormally
	Errors  []string // non-empty on any recoverable failure
	Executed bool    // false if execution stopped before a normal HALT
}

// Top returns the top-of-stack value and true, or the zero Value and
// false if the stack is empty.
func (r Result) Top() (Value, bool) {
	if len(r.Stack) == 0 {
		return Value{}, false
	}
	return r.Stack[len(r.Stack)-1], true
}

// Execute runs fn's instructions to completion, a HALT, or a
// recoverable failure (§4.4). On failure, Result.Executed is false,
// Result.Halted is true (the machine does not continue), and
// Result.Errors carries at least one message (§7 "recoverable failures
// surface as diagnostics, never a crash").
func (m *Machine) Execute(fn *ir.Function) Result {
	m.stack = m.stack[:0]
	m.pc = 0

	if fn == nil {
		return Result{Halted: true, Errors: []string{"vm: nil function"}}
	}

	var errs []string
	fail := func(format string, args ...any) Result {
		errs = append(errs, fmt.Sprintf(format, args...))
		return Result{Stack: append([]Value(nil), m.stack...), Halted: true, Errors: errs}
	}

	for m.pc < len(fn.Instructions) {
		instr := fn.Instructions[m.pc]
		switch instr.Op {
		case ir.OpPushInt:
			if !m.push(IntValue(instr.Arg.Int)) {
				return fail("vm: stack overflow")
			}
		case ir.OpPushFloat:
			if !m.push(FloatValue(instr.Arg.Float)) {
				return fail("vm: stack overflow")
			}
		case ir.OpPushString:
			if !m.push(StringValue(instr.Arg.String)) {
				return fail("vm: stack overflow")
			}
		case ir.OpPushBool:
			if !m.push(BoolValue(instr.Arg.Bool)) {
				return fail("vm: stack overflow")
			}

		case ir.OpGetState:
			v, ok := m.states[instr.Arg.ID]
			if !ok {
				return fail("vm: GET_STATE unknown state id %d", instr.Arg.ID)
			}
			if !m.push(v) {
				return fail("vm: stack overflow")
			}

		case ir.OpSetState:
			v, ok := m.pop()
			if !ok {
				return fail("vm: SET_STATE stack underflow")
			}
			m.states[instr.Arg.ID] = v

		case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv:
			b, okB := m.pop()
			a, okA := m.pop()
			if !okA || !okB {
				return fail("vm: %s stack underflow", instr.Op)
			}
			v, err := arith(instr.Op, a, b)
			if err != nil {
				return fail("vm: %v", err)
			}
			if !m.push(v) {
				return fail("vm: stack overflow")
			}

		case ir.OpGT, ir.OpLT, ir.OpEQ, ir.OpNE, ir.OpGE, ir.OpLE:
			b, okB := m.pop()
			a, okA := m.pop()
			if !okA || !okB {
				return fail("vm: %s stack underflow", instr.Op)
			}
			if !m.push(BoolValue(compare(instr.Op, a, b))) {
				return fail("vm: stack overflow")
			}

		case ir.OpJump:
			// The offset is applied after the jump itself is consumed, so
			// it counts from the next instruction (pc++ below).
			m.pc += int(instr.Arg.Offset)

		case ir.OpJumpIfFalse:
			v, ok := m.pop()
			if !ok {
				return fail("vm: JUMP_IF_FALSE stack underflow")
			}
			if !v.truthy() {
				m.pc += int(instr.Arg.Offset)
			}

		case ir.OpCallHost:
			res, err := m.callHost(instr.Arg.ID)
			if err != nil {
				return fail("vm: %v", err)
			}
			if !m.push(res) {
				return fail("vm: stack overflow")
			}

		case ir.OpReturn:
			return Result{Stack: append([]Value(nil), m.stack...), Halted: true, Executed: true}

		case ir.OpHalt:
			return Result{Stack: append([]Value(nil), m.stack...), Halted: true, Executed: true}

		default:
			return fail("vm: unknown opcode %d", instr.Op)
		}

		m.pc++
	}

	// Ran off the end of the instruction stream without HALT/RETURN: the
	// spec treats this as an implicit halt, not a failure.
	return Result{Stack: append([]Value(nil), m.stack...), Halted: true, Executed: true}
}

func (m *Machine) push(v Value) bool {
	if len(m.stack) >= MaxStackDepth {
		return false
	}
	m.stack = append(m.stack, v)
	return true
}

func (m *Machine) pop() (Value, bool) {
	if len(m.stack) == 0 {
		return Value{}, false
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, true
}

func (m *Machine) callHost(id uint32) (Value, error) {
	fn, ok := m.hosts[id]
	if !ok {
		if hf, declared := m.meta.FindHostFunction(id); declared && hf.Required {
			return Value{}, fmt.Errorf("required host function %q (id %d) not registered", hf.Name, id)
		}
		return Value{}, nil // optional, unregistered: no-op zero value
	}
	v, err := fn(nil)
	if err != nil {
		return Value{}, fmt.Errorf("host function id %d: %w", id, err)
	}
	return v, nil
}

// arith applies numeric promotion (§4.4 "any float operand promotes the
// result to float") and rejects division by zero and string or bool
// operands as recoverable failures rather than producing Inf/NaN or a
// coerced value.
func arith(op ir.Opcode, a, b Value) (Value, error) {
	if a.Type == ir.VarString || a.Type == ir.VarBool || b.Type == ir.VarString || b.Type == ir.VarBool {
		return Value{}, fmt.Errorf("%s type mismatch", op)
	}
	if a.Type == ir.VarFloat || b.Type == ir.VarFloat {
		x, y := a.asFloat(), b.asFloat()
		switch op {
		case ir.OpAdd:
			return FloatValue(x + y), nil
		case ir.OpSub:
			return FloatValue(x - y), nil
		case ir.OpMul:
			return FloatValue(x * y), nil
		case ir.OpDiv:
			if y == 0 {
				return Value{}, fmt.Errorf("division by zero")
			}
			return FloatValue(x / y), nil
		}
	}
	x, y := a.Int, b.Int
	switch op {
	case ir.OpAdd:
		return IntValue(x + y), nil
	case ir.OpSub:
		return IntValue(x - y), nil
	case ir.OpMul:
		return IntValue(x * y), nil
	case ir.OpDiv:
		if y == 0 {
			return Value{}, fmt.Errorf("division by zero")
		}
		return IntValue(x / y), nil
	}
	return Value{}, fmt.Errorf("unreachable arithmetic opcode %v", op)
}

// compare implements the six relational opcodes. Numeric operands
// compare numerically (with float promotion); string operands compare
// lexically; mismatched non-numeric types are unequal for EQ/NE and
// false for ordering comparisons.
func compare(op ir.Opcode, a, b Value) bool {
	if a.Type == ir.VarString && b.Type == ir.VarString {
		switch op {
		case ir.OpEQ:
			return a.String == b.String
		case ir.OpNE:
			return a.String != b.String
		case ir.OpGT:
			return a.String > b.String
		case ir.OpLT:
			return a.String < b.String
		case ir.OpGE:
			return a.String >= b.String
		case ir.OpLE:
			return a.String <= b.String
		}
	}
	if a.Type == ir.VarBool && b.Type == ir.VarBool {
		switch op {
		case ir.OpEQ:
			return a.Bool == b.Bool
		case ir.OpNE:
			return a.Bool != b.Bool
		default:
			return false
		}
	}
	x, y := a.asFloat(), b.asFloat()
	switch op {
	case ir.OpGT:
		return x > y
	case ir.OpLT:
		return x < y
	case ir.OpEQ:
		return x == y
	case ir.OpNE:
		return x != y
	case ir.OpGE:
		return x >= y
	case ir.OpLE:
		return x <= y
	}
	return false
}
