// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kryonlabs/kryon-sub005/ir"
	"github.com/kryonlabs/kryon-sub005/layout"
)

func TestMeasureFallsBackWhenAbsent(t *testing.T) {
	r := NewRegistry()
	c := ir.NewContext().Create(ir.VariantButton)
	_, _, ok := r.Measure(c)
	assert.False(t, ok)
}

func TestMeasureOverride(t *testing.T) {
	r := NewRegistry()
	r.Register(ir.VariantSprite, Entry{
		Measure: func(c *ir.Component) (float32, float32, bool) {
			return 64, 64, true
		},
	})
	ctx := ir.NewContext()
	c := ctx.Create(ir.VariantSprite)

	w, h, ok := r.Measure(c)
	assert.True(t, ok)
	assert.Equal(t, float32(64), w)
	assert.Equal(t, float32(64), h)

	// A Registry implements layout.Measurer and plugs directly into an
	// Engine.
	engine := &layout.Engine{Handlers: r}
	assert.Equal(t, float32(64), engine.IntrinsicWidth(c))
}

func TestDefaultRegistryToString(t *testing.T) {
	r := DefaultRegistry()
	ctx := ir.NewContext()
	h := ctx.Create(ir.VariantHeading)
	h.CustomData = ir.CustomData{"level": float64(2)}
	assert.Equal(t, "Heading(level=2)#1", r.ToString(h))
}

func TestValidateFallsBackToComponentValidate(t *testing.T) {
	r := NewRegistry()
	ctx := ir.NewContext()
	h := ctx.Create(ir.VariantHeading)
	h.CustomData = ir.CustomData{"level": float64(9)}
	msg, ok := r.Validate(h)
	assert.False(t, ok)
	assert.NotEmpty(t, msg)
}
