// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBIsFullyOpaque(t *testing.T) {
	c := RGB(10, 20, 30)
	assert.Equal(t, ColorSolid, c.Kind)
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, c.Solid)
}

func TestRGBAPreservesAlpha(t *testing.T) {
	c := RGBA(10, 20, 30, 128)
	assert.Equal(t, ColorSolid, c.Kind)
	assert.Equal(t, uint8(128), c.Solid.A)
}

func TestNamedLooksUpCSSColor(t *testing.T) {
	c, ok := Named("white")
	assert.True(t, ok)
	assert.Equal(t, ColorSolid, c.Kind)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, c.Solid)
}

func TestNamedRejectsUnknownName(t *testing.T) {
	_, ok := Named("not-a-real-color")
	assert.False(t, ok)
}

func TestTransparentIsZeroAlpha(t *testing.T) {
	c := Transparent()
	assert.Equal(t, ColorTransparent, c.Kind)
	assert.Equal(t, uint8(0), c.Solid.A)
}
