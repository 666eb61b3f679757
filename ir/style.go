// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

// Spacing is a top/right/bottom/left quadruple (§3.2), used for both
// margin and padding.
type Spacing struct {
	Top    float32 `json:"top"`
	Right  float32 `json:"right"`
	Bottom float32 `json:"bottom"`
	Left   float32 `json:"left"`
}

// Horizontal returns Left + Right.
func (s Spacing) Horizontal() float32 { return s.Left + s.Right }

// Vertical returns Top + Bottom.
func (s Spacing) Vertical() float32 { return s.Top + s.Bottom }

// TextAlign is the closed alignment set for Typography.
type TextAlign int8

const (
	TextAlignLeft TextAlign = iota
	TextAlignRight
	TextAlignCenter
	TextAlignJustify
)

// Decoration is a bitfield over text decorations.
type Decoration uint8

const (
	DecorationNone          Decoration = 0
	DecorationUnderline     Decoration = 1 << 0
	DecorationStrikethrough Decoration = 1 << 1
	DecorationOverline      Decoration = 1 << 2
)

// Typography aggregates font-related style (§3.2).
type Typography struct {
	Size          float32    `json:"size"`
	Color         Color      `json:"color"`
	Bold          bool       `json:"bold"`
	Italic        bool       `json:"italic"`
	Family        string     `json:"family,omitempty"`
	Weight        int16      `json:"weight"` // 100-900
	LineHeight    float32    `json:"line_height"`
	LetterSpacing float32    `json:"letter_spacing"`
	WordSpacing   float32    `json:"word_spacing"`
	Align         TextAlign  `json:"align"`
	Decoration    Decoration `json:"decoration"`
}

// PositionMode is the closed positioning-scheme set (§3.2).
type PositionMode int8

const (
	PositionRelative PositionMode = iota
	PositionAbsolute
	PositionFixed
)

// Overflow is the closed per-axis overflow behavior.
type Overflow int8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
)

// Transform bundles the translate/scale/rotate components (§3.2).
type Transform struct {
	TranslateX float32 `json:"translate_x"`
	TranslateY float32 `json:"translate_y"`
	ScaleX     float32 `json:"scale_x"`
	ScaleY     float32 `json:"scale_y"`
	RotateDeg  float32 `json:"rotate_deg"`
}

// IdentityTransform returns the no-op transform (scale 1, everything
// else 0), the correct zero value for a Style whose Transform was never
// set explicitly.
func IdentityTransform() Transform { return Transform{ScaleX: 1, ScaleY: 1} }

// FilterKind is the closed set of CSS-style filter operations (§3.2).
type FilterKind int8

const (
	FilterBlur FilterKind = iota
	FilterBrightness
	FilterContrast
	FilterGrayscale
	FilterHueRotate
	FilterInvert
	FilterOpacity
	FilterSaturate
	FilterSepia
)

// MaxFilters bounds Style.Filters per §3.2.
const MaxFilters = 8

// Filter is one filter operation and its amount.
type Filter struct {
	Kind   FilterKind `json:"kind"`
	Amount float32    `json:"amount"`
}

// Shadow is a box-shadow descriptor (§3.2).
type Shadow struct {
	OffsetX float32 `json:"offset_x"`
	OffsetY float32 `json:"offset_y"`
	Blur    float32 `json:"blur"`
	Spread  float32 `json:"spread"`
	Color   Color   `json:"color"`
	Inset   bool    `json:"inset"`
}

// PseudoClass is the closed set of pseudo-class override triggers (§3.2).
type PseudoClass int8

const (
	PseudoHover PseudoClass = iota
	PseudoActive
	PseudoFocus
	PseudoDisabled
	PseudoChecked
	PseudoFirstChild
	PseudoLastChild
	PseudoVisited
)

// MaxPseudoOverrides bounds Style.Pseudos per §3.2.
const MaxPseudoOverrides = 8

// PseudoOverride pairs a pseudo-class trigger with the Style to apply
// while it is active. Override is a pointer because it is a sparse,
// partial Style overlay (most fields remain "inherit from base"), not a
// fully-populated Style of its own.
type PseudoOverride struct {
	Class    PseudoClass `json:"class"`
	Override *Style      `json:"override"`
}

// MaxBreakpoints bounds Style.Breakpoints per §3.2.
const MaxBreakpoints = 4

// Breakpoint is a container/media-query condition plus the Style to
// apply when it holds.
type Breakpoint struct {
	MinWidth  float32 `json:"min_width,omitempty"`
	MaxWidth  float32 `json:"max_width,omitempty"`
	MinHeight float32 `json:"min_height,omitempty"`
	MaxHeight float32 `json:"max_height,omitempty"`
	Override  *Style  `json:"override"`
}

// ContainerQuery declares that this component establishes a
// container-query context for its descendants' Breakpoints to measure
// against, instead of the viewport.
type ContainerQuery struct {
	Enabled bool   `json:"enabled"`
	Name    string `json:"name,omitempty"`
}

// Style aggregates every visual property a Component may carry (§3.2).
// A nil *Style on a Component means "all defaults" per §3.1.
type Style struct {
	Width  Dimension `json:"width"`
	Height Dimension `json:"height"`

	Background Color `json:"background"`

	BorderColor  Color   `json:"border_color"`
	BorderWidth  float32 `json:"border_width"`
	BorderRadius float32 `json:"border_radius"`

	Margin  Spacing `json:"margin"`
	Padding Spacing `json:"padding"`

	Font Typography `json:"font"`

	Transform Transform `json:"transform"`
	Opacity   float32   `json:"opacity"`
	Visible   bool      `json:"visible"`
	ZIndex    int32     `json:"z_index"`

	Position  PositionMode `json:"position"`
	AbsoluteX float32      `json:"absolute_x,omitempty"`
	AbsoluteY float32      `json:"absolute_y,omitempty"`

	OverflowX Overflow `json:"overflow_x"`
	OverflowY Overflow `json:"overflow_y"`

	Shadow  *Shadow          `json:"shadow,omitempty"`
	Filters []Filter         `json:"filters,omitempty"`
	Pseudos []PseudoOverride `json:"pseudos,omitempty"`

	Breakpoints []Breakpoint `json:"breakpoints,omitempty"`

	Container ContainerQuery `json:"container,omitempty"`
}

// DefaultStyle returns a Style with the documented §3.1 defaults:
// fully opaque, visible, identity transform.
func DefaultStyle() *Style {
	return &Style{
		Opacity:   1,
		Visible:   true,
		Transform: IdentityTransform(),
	}
}

// AddFilter appends a filter, silently dropping it once MaxFilters is
// reached (warning-class per §7).
func (s *Style) AddFilter(f Filter) bool {
	if len(s.Filters) >= MaxFilters {
		return false
	}
	s.Filters = append(s.Filters, f)
	return true
}

// AddPseudo appends a pseudo-class override, silently dropping it once
// MaxPseudoOverrides is reached (warning-class per §7).
func (s *Style) AddPseudo(p PseudoOverride) bool {
	if len(s.Pseudos) >= MaxPseudoOverrides {
		return false
	}
	s.Pseudos = append(s.Pseudos, p)
	return true
}

// AddBreakpoint appends a breakpoint, silently dropping it once
// MaxBreakpoints is reached (warning-class per §7).
func (s *Style) AddBreakpoint(b Breakpoint) bool {
	if len(s.Breakpoints) >= MaxBreakpoints {
		return false
	}
	s.Breakpoints = append(s.Breakpoints, b)
	return true
}

// Clone deep-copies s, including owned slices and pointer fields, for use
// by Component.DeepCopy (§4.1).
func (s *Style) Clone() *Style {
	if s == nil {
		return nil
	}
	cp := *s
	if s.Shadow != nil {
		sh := *s.Shadow
		cp.Shadow = &sh
	}
	if s.Filters != nil {
		cp.Filters = append([]Filter(nil), s.Filters...)
	}
	if s.Pseudos != nil {
		cp.Pseudos = make([]PseudoOverride, len(s.Pseudos))
		for i, p := range s.Pseudos {
			cp.Pseudos[i] = PseudoOverride{Class: p.Class, Override: p.Override.Clone()}
		}
	}
	if s.Breakpoints != nil {
		cp.Breakpoints = make([]Breakpoint, len(s.Breakpoints))
		for i, b := range s.Breakpoints {
			nb := b
			nb.Override = b.Override.Clone()
			cp.Breakpoints[i] = nb
		}
	}
	return &cp
}
