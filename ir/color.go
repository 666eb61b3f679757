// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import (
	"image/color"

	"cogentcore.org/core/colors"
)

// ColorKind is the closed tag of a Color union (§3.2).
type ColorKind int8

const (
	ColorSolid ColorKind = iota
	ColorTransparent
	ColorGradient
	ColorVarRef
)

// GradientKind is the closed tag of a Gradient's shape.
type GradientKind int8

const (
	GradientLinear GradientKind = iota
	GradientRadial
	GradientConic
)

// MaxGradientStops bounds Gradient.Stops per §3.2.
const MaxGradientStops = 8

// GradientStop is one color/offset pair in a Gradient.
type GradientStop struct {
	Offset float32    `json:"offset"`
	Color  color.RGBA `json:"color"`
}

// Gradient is a value type (no heap cycle possible, per §9) describing a
// linear/radial/conic color ramp of at most MaxGradientStops stops.
type Gradient struct {
	Kind    GradientKind   `json:"kind"`
	Stops   []GradientStop `json:"stops"`
	Angle   float32        `json:"angle"`
	CenterX float32        `json:"center_x"`
	CenterY float32        `json:"center_y"`
}

// AddStop appends a stop, silently dropping it once MaxGradientStops is
// reached (a warning-class condition per §7, logged by the caller that
// owns a *Context to route it through the shared warning sink).
func (g *Gradient) AddStop(offset float32, c color.RGBA) bool {
	if len(g.Stops) >= MaxGradientStops {
		return false
	}
	g.Stops = append(g.Stops, GradientStop{Offset: offset, Color: c})
	return true
}

// Color is a tagged union over solid RGBA, transparent, gradient, and a
// 16-bit stylesheet variable reference (§3.2). Variable references are
// modeled as an id to resolve lazily against a stylesheet, never as an
// owning pointer (§9 "Cyclic style/gradient graphs").
type Color struct {
	Kind     ColorKind  `json:"kind"`
	Solid    color.RGBA `json:"solid,omitempty"`
	Gradient *Gradient  `json:"gradient,omitempty"`
	VarID    uint16     `json:"var_id,omitempty"`
}

// RGB builds a solid, fully-opaque Color using colors.FromRGB.
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorSolid, Solid: colors.FromRGB(r, g, b)}
}

// RGBA builds a solid Color with explicit alpha, via colors.AsRGBA so
// the alpha-premultiplication rules match the rest of the color stack.
func RGBA(r, g, b, a uint8) Color {
	return Color{Kind: ColorSolid, Solid: colors.AsRGBA(color.NRGBA{R: r, G: g, B: b, A: a})}
}

// Named builds a solid Color from a CSS standard color name (e.g.
// "cornflowerblue"), via colors.FromName. Returns false if the name is
// not recognized, leaving the zero Color.
func Named(name string) (Color, bool) {
	c, err := colors.FromName(name)
	if err != nil {
		return Color{}, false
	}
	return Color{Kind: ColorSolid, Solid: c}, true
}

// Transparent is the zero-alpha sentinel color.
func Transparent() Color { return Color{Kind: ColorTransparent} }

// VarColor builds a style-variable reference Color.
func VarColor(id uint16) Color { return Color{Kind: ColorVarRef, VarID: id} }

// IsZero reports whether c carries no color information (absent Style
// field default, §3.1).
func (c Color) IsZero() bool {
	return c.Kind == ColorSolid && c.Solid == (color.RGBA{})
}
