// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryonlabs/kryon-sub005/ir"
)

func setupManager(t *testing.T) (*Manager, *ir.Component, uint32) {
	t.Helper()
	ctx := ir.NewContext()
	root := ctx.Create(ir.VariantText)
	ctx.SetRoot(root)

	manifest := ir.NewReactiveManifest()
	varID := manifest.AddVar("count", ir.VarInt, ir.IntValue(0))
	require.NotZero(t, varID)
	require.True(t, manifest.AddBinding(root.ID(), varID, ir.BindingText, "count"))

	return NewManager(manifest, ctx), root, varID
}

func TestFlushNeededOnQueue(t *testing.T) {
	m, _, varID := setupManager(t)
	m.FlushTimeout = time.Hour
	assert.False(t, m.FlushNeeded())
	m.QueueSetVar(varID, ir.IntValue(1))
	assert.True(t, m.FlushNeeded())
}

func TestFlushNeededOnTimeout(t *testing.T) {
	m, _, _ := setupManager(t)
	m.FlushTimeout = time.Millisecond
	time.Sleep(2 * time.Millisecond)
	assert.True(t, m.FlushNeeded())
}

func TestSetVarPrecedesMarkDirty(t *testing.T) {
	m, root, varID := setupManager(t)
	root.DirtyFlags = 0
	root.LayoutCache.Dirty = false

	m.QueueSetVar(varID, ir.IntValue(5))
	res := m.Flush()

	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, []uint32{varID}, res.Changed)
	assert.True(t, root.DirtyFlags.Has(ir.DirtyLayout))
	assert.True(t, root.LayoutCache.Dirty)

	v, ok := m.Manifest.GetVar(varID)
	require.True(t, ok)
	assert.Equal(t, int64(5), v.Value.Int)
	assert.Equal(t, uint64(1), v.Version)
}

func TestFlushFanoutAndStats(t *testing.T) {
	m, _, varID := setupManager(t)

	var got []uint32
	m.Subscribe(func(id uint32, v ir.VarValue) {
		got = append(got, id)
	})

	m.QueueSetVar(varID, ir.IntValue(7))
	res := m.Flush()

	assert.Equal(t, []uint32{varID}, got)
	assert.Equal(t, uint64(1), res.Generation)

	stats := m.Stats()
	assert.Equal(t, uint64(1), stats.FlushesTotal)
	assert.Equal(t, uint64(1), stats.ProcessedTotal)
	assert.Equal(t, 0, stats.QueueDepth)
}

func TestFlushOrderingFIFO(t *testing.T) {
	m, _, varID := setupManager(t)

	m.QueueSetVar(varID, ir.IntValue(1))
	m.QueueSetVar(varID, ir.IntValue(2))
	m.QueueSetVar(varID, ir.IntValue(3))

	res := m.Flush()
	assert.Equal(t, 3, res.Processed)

	v, ok := m.Manifest.GetVar(varID)
	require.True(t, ok)
	assert.Equal(t, int64(3), v.Value.Int) // last write wins, in queued order
}
