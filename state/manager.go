// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import (
	"sync"
	"time"

	"github.com/kryonlabs/kryon-sub005/ir"
	"github.com/kryonlabs/kryon-sub005/layout"
)

// DefaultFlushTimeout is the §4.5 default: a flush is due at least this
// often even if nothing new has been queued, so timer-driven handlers
// still make progress.
const DefaultFlushTimeout = 16 * time.Millisecond

// UpdateKind is the closed set of queued update operations (§4.5).
type UpdateKind int8

const (
	UpdateSetVar UpdateKind = iota
	UpdateMarkDirty
	UpdateCallHandler
	UpdateSyncInput
	UpdateEvalExpression
	UpdateRenderLoop
	UpdateConditional
)

// Update is one FIFO queue entry. Only the fields relevant to Kind are
// populated; the rest are zero.
type Update struct {
	Kind        UpdateKind
	VarID       uint32
	Value       ir.VarValue
	ComponentID uint32
	HandlerID   string
	Expression  string
}

// ChangeCallback is notified, after a flush, of every reactive variable
// that was written during that flush (§4.5 "change callback fanout").
type ChangeCallback func(varID uint32, value ir.VarValue)

// Evaluator is the pluggable hook a host embeds to evaluate expression
// strings (EVAL_EXPRESSION updates and Conditional re-evaluation). The
// state manager only ever calls through this interface: no expression
// language is wired into the module itself.
type Evaluator interface {
	Eval(expression string, m *Manager) (ir.VarValue, error)
}

// HandlerInvoker is the pluggable hook for CALL_HANDLER updates,
// typically backed by a vm.Machine running the bound ir.Function.
type HandlerInvoker interface {
	InvokeHandler(componentID uint32, handlerID string, m *Manager)
}

// Manager owns the reactive variable manifest for one Component tree,
// a FIFO update queue, and the bookkeeping needed to decide when a
// flush is due (§4.5).
type Manager struct {
	Manifest *ir.ReactiveManifest
	Context  *ir.Context

	Evaluator Evaluator
	Handlers  HandlerInvoker

	FlushTimeout time.Duration

	mu        sync.Mutex
	queue     []Update
	lastFlush time.Time

	generation     uint64
	processedTotal uint64
	flushesTotal   uint64
	queueHighWater int

	subscribers []ChangeCallback
}

// NewManager returns a ready Manager over the given manifest and
// component context, with the default flush timeout.
func NewManager(manifest *ir.ReactiveManifest, ctx *ir.Context) *Manager {
	return &Manager{
		Manifest:     manifest,
		Context:      ctx,
		FlushTimeout: DefaultFlushTimeout,
		lastFlush:    time.Now(),
	}
}

// Subscribe registers cb to be called with every variable written by a
// future flush.
func (m *Manager) Subscribe(cb ChangeCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, cb)
}

func (m *Manager) enqueue(u Update) {
	m.mu.Lock()
	m.queue = append(m.queue, u)
	if len(m.queue) > m.queueHighWater {
		m.queueHighWater = len(m.queue)
	}
	m.mu.Unlock()
}

// QueueSetVar queues a variable write (§4.5 queue_set_var). Non-blocking.
func (m *Manager) QueueSetVar(varID uint32, value ir.VarValue) {
	m.enqueue(Update{Kind: UpdateSetVar, VarID: varID, Value: value})
}

// QueueMarkDirty queues a layout-dirty request for a component (§4.5
// queue_mark_dirty).
func (m *Manager) QueueMarkDirty(componentID uint32) {
	m.enqueue(Update{Kind: UpdateMarkDirty, ComponentID: componentID})
}

// QueueCallHandler queues an event-handler invocation (§4.5
// queue_call_handler).
func (m *Manager) QueueCallHandler(componentID uint32, handlerID string) {
	m.enqueue(Update{Kind: UpdateCallHandler, ComponentID: componentID, HandlerID: handlerID})
}

// QueueSyncInput queues a two-way input-binding sync (§4.5
// queue_sync_input).
func (m *Manager) QueueSyncInput(componentID, varID uint32, value ir.VarValue) {
	m.enqueue(Update{Kind: UpdateSyncInput, ComponentID: componentID, VarID: varID, Value: value})
}

// QueueEvalExpression queues a binding expression for re-evaluation
// (§4.5 queue_eval_expression).
func (m *Manager) QueueEvalExpression(componentID uint32, expression string) {
	m.enqueue(Update{Kind: UpdateEvalExpression, ComponentID: componentID, Expression: expression})
}

// QueueRenderLoop queues a per-frame tick marker (§4.5
// queue_render_loop).
func (m *Manager) QueueRenderLoop() {
	m.enqueue(Update{Kind: UpdateRenderLoop})
}

// QueueConditional queues re-evaluation of a conditional's branch
// (§4.5 queue_conditional).
func (m *Manager) QueueConditional(componentID uint32) {
	m.enqueue(Update{Kind: UpdateConditional, ComponentID: componentID})
}

// FlushNeeded reports whether a flush is due: the queue is non-empty,
// or the timeout has elapsed since the last flush (§4.5 flush_needed).
func (m *Manager) FlushNeeded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) > 0 {
		return true
	}
	timeout := m.FlushTimeout
	if timeout <= 0 {
		timeout = DefaultFlushTimeout
	}
	return time.Since(m.lastFlush) >= timeout
}

// FlushResult summarizes one flush (§4.5 "result record").
type FlushResult struct {
	Processed  int
	Generation uint64
	Duration   time.Duration
	Changed    []uint32 // reactive variable ids written during this flush
}

// Flush drains the queue in FIFO order, applying each update in turn.
// A SET_VAR entry always propagates to MARK_DIRTY for every component
// bound to that variable before the next queued entry runs, so SET_VAR
// always precedes its own MARK_DIRTY consequence within the flush
// (§4.5 ordering guarantee).
func (m *Manager) Flush() FlushResult {
	m.mu.Lock()
	local := m.queue
	m.queue = nil
	m.mu.Unlock()

	start := time.Now()
	var changed []uint32

	for _, u := range local {
		switch u.Kind {
		case UpdateSetVar:
			if m.Manifest != nil && m.Manifest.UpdateVar(u.VarID, u.Value) {
				changed = append(changed, u.VarID)
				m.markDependentsDirty(u.VarID)
			}

		case UpdateSyncInput:
			if m.Manifest != nil && m.Manifest.UpdateVar(u.VarID, u.Value) {
				changed = append(changed, u.VarID)
				m.markDependentsDirty(u.VarID)
			}

		case UpdateMarkDirty:
			m.markComponentDirty(u.ComponentID)

		case UpdateCallHandler:
			if m.Handlers != nil {
				m.Handlers.InvokeHandler(u.ComponentID, u.HandlerID, m)
			}

		case UpdateEvalExpression:
			if m.Evaluator != nil {
				if v, err := m.Evaluator.Eval(u.Expression, m); err == nil {
					m.markComponentDirty(u.ComponentID)
					_ = v
				}
			}

		case UpdateConditional:
			m.reevaluateConditional(u.ComponentID)

		case UpdateRenderLoop:
			// tick marker only; no state effect beyond bumping generation.
		}
	}

	m.mu.Lock()
	m.generation++
	m.processedTotal += uint64(len(local))
	m.flushesTotal++
	gen := m.generation
	m.lastFlush = time.Now()
	subs := append([]ChangeCallback(nil), m.subscribers...)
	m.mu.Unlock()

	for _, varID := range changed {
		v, ok := m.Manifest.GetVar(varID)
		if !ok {
			continue
		}
		for _, cb := range subs {
			cb(varID, v.Value)
		}
	}

	return FlushResult{
		Processed:  len(local),
		Generation: gen,
		Duration:   time.Since(start),
		Changed:    changed,
	}
}

// markDependentsDirty marks every component with a binding of any type
// on varID as layout-dirty.
func (m *Manager) markDependentsDirty(varID uint32) {
	if m.Manifest == nil {
		return
	}
	for _, b := range m.Manifest.Bindings {
		if b.ReactiveVarID == varID {
			m.markComponentDirty(b.ComponentID)
		}
	}
}

func (m *Manager) markComponentDirty(componentID uint32) {
	if m.Context == nil {
		return
	}
	if c := m.Context.FindByID(componentID); c != nil {
		layout.MarkDirty(c)
	}
}

// reevaluateConditional asks the Evaluator for the conditional's
// current truth value and updates LastEvalResult, marking the owning
// component dirty on change (§4.3 "suspended" conditionals skip
// re-evaluation).
func (m *Manager) reevaluateConditional(componentID uint32) {
	if m.Manifest == nil {
		return
	}
	for i := range m.Manifest.Conditionals {
		cond := &m.Manifest.Conditionals[i]
		if cond.ComponentID != componentID || cond.Suspended {
			continue
		}
		if m.Evaluator == nil {
			return
		}
		v, err := m.Evaluator.Eval(cond.Condition, m)
		if err != nil {
			return
		}
		result := v.Bool
		if result != cond.LastEvalResult {
			cond.LastEvalResult = result
			m.markComponentDirty(componentID)
		}
		return
	}
}

// Stats is a snapshot of the manager's profiling counters (§4.5
// "profiling counters").
type Stats struct {
	Generation     uint64
	ProcessedTotal uint64
	FlushesTotal   uint64
	QueueHighWater int
	QueueDepth     int
}

// Stats returns the current profiling snapshot.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		Generation:     m.generation,
		ProcessedTotal: m.processedTotal,
		FlushesTotal:   m.flushesTotal,
		QueueHighWater: m.queueHighWater,
		QueueDepth:     len(m.queue),
	}
}
