// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types holds the scalar, index and vector aliases shared by every
// other package in nsflow, plus the cell-type enumeration used by the
// staggered-grid geometry.
package types

import "fmt"

// Real is the floating point type used throughout the solver.
type Real = float64

// Index is the unsigned grid-position type used by iterators and offsets.
type Index = uint32

// Vec2 is an ordered pair with named component access. T is instantiated
// with Real (multi_real) or Index (multi_index).
type Vec2[T any] struct {
	X T
	Y T
}

// NewVec2 returns a Vec2 with both components set to v.
func NewVec2[T any](v T) Vec2[T] {
	return Vec2[T]{X: v, Y: v}
}

// NewVec2XY returns a Vec2 with independent x and y components.
func NewVec2XY[T any](x, y T) Vec2[T] {
	return Vec2[T]{X: x, Y: y}
}

// MultiReal is a 2-component real vector; used for mesh widths, domain
// lengths and offsets.
type MultiReal = Vec2[Real]

// MultiIndex is a 2-component index vector; used for grid sizes and
// subdomain indices/topology.
type MultiIndex = Vec2[Index]

// CellType enumerates the geometry tag of one grid cell. The byte values
// mirror the ASCII tags used in the scenario file so that a cell type can
// be read and written without a lookup table.
type CellType byte

// Cell type tags, one per ASCII byte accepted in a `geometry free` block.
const (
	Fluid    CellType = '.'
	Obstacle CellType = '#'
	Inflow   CellType = 'I'
	HInflow  CellType = 'H'
	VInflow  CellType = 'V'
	Outflow  CellType = 'O'
	VSlip    CellType = 'v'
	HSlip    CellType = 'h'
)

// String renders a human-readable cell type name, e.g. for error messages.
func (c CellType) String() string {
	switch c {
	case Fluid:
		return "Fluid"
	case Obstacle:
		return "Obstacle"
	case Inflow:
		return "Inflow"
	case HInflow:
		return "H_Inflow"
	case VInflow:
		return "V_Inflow"
	case Outflow:
		return "Outflow"
	case VSlip:
		return "V_Slip"
	case HSlip:
		return "H_Slip"
	default:
		return fmt.Sprintf("CellType(%q)", byte(c))
	}
}

// IsFluid reports whether c is the Fluid tag.
func (c CellType) IsFluid() bool { return c == Fluid }

// ParseCellType converts one ASCII byte of a `geometry free` row into a
// CellType, returning false if the byte is not one of the known tags.
func ParseCellType(b byte) (CellType, bool) {
	switch CellType(b) {
	case Fluid, Obstacle, Inflow, HInflow, VInflow, Outflow, VSlip, HSlip:
		return CellType(b), true
	default:
		return 0, false
	}
}

// BCKind distinguishes a Dirichlet boundary value from a Neumann one.
type BCKind byte

const (
	Dirichlet BCKind = iota
	Neumann
)

// BoundaryValue pairs a physical value with the kind of condition it is
// enforced under for one outer edge of one field.
type BoundaryValue struct {
	Value Real
	Kind  BCKind
}
