// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

// DimensionUnit is the closed tag of a Dimension value, narrowed from
// cogentcore.org/core/styles/units' broader unit set to the ten units
// this specification names (§3.2).
type DimensionUnit int8

const (
	UnitPX DimensionUnit = iota
	UnitPercent
	UnitAuto
	UnitFlex
	UnitVW
	UnitVH
	UnitVMin
	UnitVMax
	UnitREM
	UnitEM
)

func (u DimensionUnit) String() string {
	switch u {
	case UnitPX:
		return "px"
	case UnitPercent:
		return "%"
	case UnitAuto:
		return "auto"
	case UnitFlex:
		return "flex"
	case UnitVW:
		return "vw"
	case UnitVH:
		return "vh"
	case UnitVMin:
		return "vmin"
	case UnitVMax:
		return "vmax"
	case UnitREM:
		return "rem"
	case UnitEM:
		return "em"
	default:
		return "px"
	}
}

// Dimension is a tagged {unit, value} pair (§3.2). AUTO and FLEX ignore
// Value for layout purposes but still carry it for round-trip fidelity.
type Dimension struct {
	Unit  DimensionUnit `json:"unit"`
	Value float32       `json:"value"`
}

// PX constructs a pixel Dimension.
func PX(v float32) Dimension { return Dimension{Unit: UnitPX, Value: v} }

// Percent constructs a percentage Dimension.
func Percent(v float32) Dimension { return Dimension{Unit: UnitPercent, Value: v} }

// Auto constructs the AUTO sentinel Dimension.
func Auto() Dimension { return Dimension{Unit: UnitAuto} }

// Flex constructs a FLEX Dimension with the given grow weight.
func Flex(v float32) Dimension { return Dimension{Unit: UnitFlex, Value: v} }

// IsAuto reports whether d is the AUTO tag.
func (d Dimension) IsAuto() bool { return d.Unit == UnitAuto }

// IsUnset reports whether d carries no meaningful constraint, i.e. is the
// zero value (PX 0) as produced by an absent Style field (§3.1: "absent
// means all defaults").
func (d Dimension) IsUnset() bool { return d.Unit == UnitPX && d.Value == 0 }

// Resolve computes d's pixel value against a parent/containing size,
// per §4.2.3 step 3: PX -> value; PERCENT -> parentSize * value/100;
// AUTO/FLEX -> 0 (filled later by the layout pass).
func (d Dimension) Resolve(parentSize float32) float32 {
	switch d.Unit {
	case UnitPX:
		return d.Value
	case UnitPercent:
		return parentSize * d.Value / 100
	case UnitVW, UnitVH, UnitVMin, UnitVMax:
		return parentSize * d.Value / 100
	case UnitREM, UnitEM:
		return d.Value * 16 // linear estimator, no real font metrics (§1 Non-goals)
	default: // AUTO, FLEX
		return 0
	}
}
