// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

// LayoutMode is the closed set of layout algorithms a LayoutSpec selects
// between (§3.3).
type LayoutMode int8

const (
	LayoutFlex LayoutMode = iota
	LayoutGrid
	LayoutBlock
)

// FlexDirection is the main-axis orientation of a Flexbox (§3.3).
type FlexDirection int8

const (
	DirectionColumn FlexDirection = 0
	DirectionRow    FlexDirection = 1
)

// Align is the closed alignment policy set shared by main-axis
// justification, cross-axis alignment, and grid item alignment (§4.2.4,
// §4.2.5).
type Align int8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
	AlignSpaceBetween
	AlignSpaceAround
)

// Flexbox is the flex-mode layout block (§3.3).
type Flexbox struct {
	Direction     FlexDirection `json:"direction"`
	Wrap          bool          `json:"wrap"`
	Gap           float32       `json:"gap"`
	JustifyContent Align        `json:"justify_content"`
	CrossAxis     Align         `json:"cross_axis"`
	Grow          float32       `json:"grow"`
	Shrink        float32       `json:"shrink"`
}

// GridTrackKind is the closed set of grid track sizing functions (§3.3).
type GridTrackKind int8

const (
	TrackPX GridTrackKind = iota
	TrackPercent
	TrackFR
	TrackAuto
	TrackMinContent
	TrackMaxContent
)

// MaxGridTracks bounds Grid.Rows and Grid.Columns per §3.3.
const MaxGridTracks = 12

// GridTrack is one row or column track definition.
type GridTrack struct {
	Kind  GridTrackKind `json:"kind"`
	Value float32       `json:"value"`
}

// AutoFlow is the grid auto-placement traversal order (§3.3).
type AutoFlow int8

const (
	AutoFlowRow AutoFlow = iota
	AutoFlowColumn
)

// Grid is the grid-mode layout block (§3.3, §4.2.5).
type Grid struct {
	Rows    []GridTrack `json:"rows,omitempty"`
	Columns []GridTrack `json:"columns,omitempty"`

	RowGap    float32 `json:"row_gap"`
	ColumnGap float32 `json:"column_gap"`

	JustifyItems  Align `json:"justify_items"`
	AlignItems    Align `json:"align_items"`
	JustifyContent Align `json:"justify_content"`
	AlignContent  Align `json:"align_content"`

	AutoFlow      AutoFlow `json:"auto_flow"`
	AutoFlowDense bool     `json:"auto_flow_dense"` // declared, not implemented: §9 OQ2
}

// AddRow appends a row track, rejecting (silent no-op) once
// MaxGridTracks is reached.
func (g *Grid) AddRow(t GridTrack) bool {
	if len(g.Rows) >= MaxGridTracks {
		return false
	}
	g.Rows = append(g.Rows, t)
	return true
}

// AddColumn appends a column track, rejecting (silent no-op) once
// MaxGridTracks is reached.
func (g *Grid) AddColumn(t GridTrack) bool {
	if len(g.Columns) >= MaxGridTracks {
		return false
	}
	g.Columns = append(g.Columns, t)
	return true
}

// LayoutSpec is the per-Component layout specification (§3.3). A nil
// *LayoutSpec on a Component means "flex column, no constraints" (§3.1).
type LayoutSpec struct {
	Mode LayoutMode `json:"mode"`

	MinWidth  Dimension `json:"min_width"`
	MaxWidth  Dimension `json:"max_width"`
	MinHeight Dimension `json:"min_height"`
	MaxHeight Dimension `json:"max_height"`

	Margin  Spacing `json:"margin"`
	Padding Spacing `json:"padding"`

	AspectRatio float32 `json:"aspect_ratio,omitempty"` // 0 = none

	Flex *Flexbox `json:"flex,omitempty"`
	Grid *Grid    `json:"grid,omitempty"`
}

// DefaultLayoutSpec returns the §3.1 default: flex column, no
// constraints, grow/shrink disabled.
func DefaultLayoutSpec() *LayoutSpec {
	return &LayoutSpec{
		Mode: LayoutFlex,
		Flex: &Flexbox{Direction: DirectionColumn},
	}
}

// Clone deep-copies l for Component.DeepCopy (§4.1).
func (l *LayoutSpec) Clone() *LayoutSpec {
	if l == nil {
		return nil
	}
	cp := *l
	if l.Flex != nil {
		f := *l.Flex
		cp.Flex = &f
	}
	if l.Grid != nil {
		g := *l.Grid
		g.Rows = append([]GridTrack(nil), l.Grid.Rows...)
		g.Columns = append([]GridTrack(nil), l.Grid.Columns...)
		cp.Grid = &g
	}
	return &cp
}

// GridItem is the per-Component grid placement record (§3.3). Start
// values of -1 mean auto-place; End defaults to Start+1 when unset.
type GridItem struct {
	RowStart    int32 `json:"row_start"`
	RowEnd      int32 `json:"row_end"`
	ColumnStart int32 `json:"column_start"`
	ColumnEnd   int32 `json:"column_end"`

	JustifySelf *Align `json:"justify_self,omitempty"`
	AlignSelf   *Align `json:"align_self,omitempty"`
}

// DefaultGridItem returns the auto-place default (§3.1 invariant: -1 =
// auto-place).
func DefaultGridItem() GridItem {
	return GridItem{RowStart: -1, RowEnd: -1, ColumnStart: -1, ColumnEnd: -1}
}

// IsAutoPlaced reports whether the item uses grid auto-placement
// (§4.2.5 step 5).
func (g GridItem) IsAutoPlaced() bool {
	return g.RowStart < 0 || g.ColumnStart < 0
}
