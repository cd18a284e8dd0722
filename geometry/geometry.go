// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geometry owns the domain sizing, the mesh width, the cell-type
// map and the per-edge boundary-condition descriptors for U, V, P and any
// number of substance fields. It is loaded once from a scenario file and
// is immutable after Recalculate bakes the mesh width and the interior
// obstacle neighbor codes.
package geometry

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nsflow/iterator"
	"github.com/cpmech/nsflow/types"
)

// EdgeBC holds the Dirichlet/Neumann descriptor of one field on one outer
// edge. Value may be driven by a time-varying Go closure: TimeFunc, when
// non-nil, overrides Value.
type EdgeBC struct {
	Value    types.Real
	Kind     types.BCKind
	TimeFunc func(t types.Real) types.Real

	// ProfileFunc, when non-nil, overrides Value/TimeFunc with a
	// position-dependent value (e.g. V_Inflow's parabolic profile). pos
	// ranges over 0..1 along the edge.
	ProfileFunc func(pos types.Real) types.Real
}

// At evaluates the boundary value at time t.
func (e EdgeBC) At(t types.Real) types.Real {
	if e.TimeFunc != nil {
		return e.TimeFunc(t)
	}
	return e.Value
}

// Edges holds the four-edge BC table for one scalar field (U, V, P, or one
// substance). Index 0=bottom,1=right,2=top,3=left, matching
// iterator.Edge{Bottom,Right,Top,Left}-1.
type Edges [4]EdgeBC

// ParticleSeed is one traced point's initial physical-space position.
type ParticleSeed struct {
	Pos types.MultiReal
}

// Geometry is the domain description: total size (including the ghost
// ring), physical length, mesh width, cell-type map and boundary
// descriptors.
type Geometry struct {
	S types.MultiIndex // total size in cells, ghost ring included
	L types.MultiReal  // domain length

	h    types.MultiReal // mesh width
	invh types.MultiReal // 1/h

	Cells []types.CellType // row-major cell-type map, length Sx*Sy
	tags  []byte           // optional per-cell obstacle island tag, length Sx*Sy (0 = untagged)

	U, V, P Edges // boundary descriptors for the three core fields
	C       []Edges // one Edges table per substance field, indexed like Substance's species

	// NeighborCode holds, for each interior non-Fluid cell, the 4-bit baked
	// code (down<<3 | right<<2 | up<<1 | left), 0 for every other cell.
	NeighborCode []byte

	Streaklines []ParticleSeed
	Traces      []ParticleSeed
}

// NewDefault returns a Geometry matching the driven-cavity benchmark: an
// empty box with a moving lid on top, no-slip elsewhere.
func NewDefault(nx, ny types.Index, lx, ly types.Real, lidSpeed types.Real) *Geometry {
	g := &Geometry{
		S: types.NewVec2XY(nx+2, ny+2),
		L: types.NewVec2XY(lx, ly),
	}
	g.Cells = make([]types.CellType, int(g.S.X)*int(g.S.Y))
	for i := range g.Cells {
		g.Cells[i] = types.Fluid
	}
	for e := 1; e <= 4; e++ {
		be := iterator.NewBoundary(g.S.X, g.S.Y, e)
		for be.First(); be.Valid(); be.Next() {
			g.Cells[be.Value()] = types.Obstacle
		}
	}
	g.U[2] = EdgeBC{Value: lidSpeed, Kind: types.Dirichlet} // top edge U = lid speed
	g.Recalculate()
	return g
}

// Recalculate computes h, invh and bakes the interior-obstacle neighbor
// codes from the current Cells map. Must be called after Load or after any
// direct mutation of S/L/Cells.
func (g *Geometry) Recalculate() {
	g.h = types.NewVec2XY(g.L.X/types.Real(g.S.X-2), g.L.Y/types.Real(g.S.Y-2))
	g.invh = types.NewVec2XY(1/g.h.X, 1/g.h.Y)
	g.bakeNeighborCodes()
}

// H returns the mesh width.
func (g *Geometry) H() types.MultiReal { return g.h }

// InvH returns the inverse mesh width.
func (g *Geometry) InvH() types.MultiReal { return g.invh }

// CellAt returns the cell type at row-major index i.
func (g *Geometry) CellAt(i types.Index) types.CellType { return g.Cells[i] }

// bakeNeighborCodes computes, for every interior Obstacle cell, the 4-bit
// code (down<<3|right<<2|up<<1|left) where a bit is 1 iff that neighbor is
// non-Fluid, so a cell with Fluid above only gets 13 (N).
func (g *Geometry) bakeNeighborCodes() {
	g.NeighborCode = make([]byte, len(g.Cells))
	it := iterator.NewObstacle(g.S.X, g.S.Y, g.Cells)
	for it.First(); it.Valid(); it.Next() {
		var code byte
		if !g.Cells[it.Top().Value()].IsFluid() {
			code |= 2
		}
		if !g.Cells[it.Right().Value()].IsFluid() {
			code |= 4
		}
		if !g.Cells[it.Down().Value()].IsFluid() {
			code |= 8
		}
		if !g.Cells[it.Left().Value()].IsFluid() {
			code |= 1
		}
		g.NeighborCode[it.Value()] = code
	}
}
