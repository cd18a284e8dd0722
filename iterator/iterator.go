// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package iterator implements the traversal abstractions used to walk a
// staggered grid: the full buffer, the interior Fluid-eligible region, the
// four outer edges (and their corners), and the set of Obstacle cells.
// Every iterator is a small value type; directional neighbor queries never
// fail, they clamp to the same cell at the domain edge so that stencil code
// can treat the outermost ghost ring uniformly.
package iterator

import "github.com/cpmech/nsflow/types"

// Kind distinguishes the traversal strategy of an Iterator.
type Kind int

const (
	KindFull Kind = iota
	KindInterior
	KindBoundary
	KindObstacle
)

// Edge numbers for BoundaryIterator, matching the scenario file's edge
// ordering: 1=bottom, 2=right, 3=top, 4=left.
const (
	EdgeBottom = 1
	EdgeRight  = 2
	EdgeTop    = 3
	EdgeLeft   = 4
)

// Iterator is a linear-index walker over an Sx*Sy row-major buffer.
// CellTypes, when non-nil, is consulted by ObstacleIterator to skip Fluid
// cells; it is otherwise unused.
type Iterator struct {
	sx, sy     types.Index
	value      types.Index
	itmin      types.Index
	itmax      types.Index
	kind       Kind
	edge       int
	cellTypes  []types.CellType
	okValue    bool
}

// New returns a Full iterator spanning the entire Sx*Sy buffer.
func New(sx, sy types.Index) Iterator {
	return Iterator{sx: sx, sy: sy, itmin: 0, itmax: sx*sy - 1, kind: KindFull}
}

// NewInterior returns an iterator over the interior cells, i.e. the buffer
// minus the single outer ghost ring.
func NewInterior(sx, sy types.Index) Iterator {
	return Iterator{sx: sx, sy: sy, itmin: sx + 1, itmax: sx*(sy-1) - 2, kind: KindInterior}
}

// NewBoundary returns an iterator over one outer edge, edge in {1,2,3,4}
// per the package's Edge* constants.
func NewBoundary(sx, sy types.Index, edge int) Iterator {
	it := Iterator{sx: sx, sy: sy, kind: KindBoundary, edge: edge}
	switch edge {
	case EdgeBottom:
		it.itmin, it.itmax = 0, sx-1
	case EdgeRight:
		it.itmin, it.itmax = sx-1, sx*sy-1
	case EdgeTop:
		it.itmin, it.itmax = sx*(sy-1), sx*sy-1
	case EdgeLeft:
		it.itmin, it.itmax = 0, sx*(sy-1)
	}
	return it
}

// NewObstacle returns an interior iterator filtered to cells whose type is
// not Fluid. cellTypes must be the geometry's row-major cell-type map.
func NewObstacle(sx, sy types.Index, cellTypes []types.CellType) Iterator {
	it := Iterator{sx: sx, sy: sy, itmin: sx + 1, itmax: sx*(sy-1) - 2, kind: KindObstacle, cellTypes: cellTypes}
	return it
}

// Corner returns the iterator positioned at one of the four grid corners.
// corner in {1:bottom-left, 2:bottom-right, 3:top-right, 4:top-left}.
func Corner(sx, sy types.Index, corner int) Iterator {
	it := Iterator{sx: sx, sy: sy, kind: KindBoundary}
	var v types.Index
	switch corner {
	case 1:
		v = 0
	case 2:
		v = sx - 1
	case 3:
		v = sx*sy - 1
	case 4:
		v = sx * (sy - 1)
	}
	it.value, it.itmin, it.itmax = v, v, v
	it.okValue = true
	return it
}

// First resets the iterator to its first valid position.
func (it *Iterator) First() {
	it.value = it.itmin
	if it.kind == KindObstacle {
		it.updateValid()
		it.skipFluid()
		return
	}
	it.updateValid()
}

// strideForEdge returns the step added by Next() for a BoundaryIterator.
func strideForEdge(sx types.Index, edge int) types.Index {
	switch edge {
	case EdgeBottom, EdgeTop:
		return 1
	case EdgeRight, EdgeLeft:
		return sx
	}
	return 1
}

// interiorStep advances value by one logical interior position, jumping
// over the right ghost column back into column 1 of the next row.
func (it *Iterator) interiorStep() {
	it.value++
	if (it.value+1)%it.sx == 0 {
		it.value += 2
	}
}

// Next advances the iterator by one logical position.
func (it *Iterator) Next() {
	switch it.kind {
	case KindInterior:
		it.interiorStep()
	case KindBoundary:
		it.value += strideForEdge(it.sx, it.edge)
	case KindObstacle:
		it.interiorStep()
		it.updateValid()
		it.skipFluid()
		return
	default:
		it.value++
	}
	it.updateValid()
}

// skipFluid advances value, using the interior stride, past every Fluid
// cell (used by ObstacleIterator after First/Next positions it).
func (it *Iterator) skipFluid() {
	for it.okValue {
		if it.cellTypes == nil || !it.cellTypes[it.value].IsFluid() {
			return
		}
		it.interiorStep()
		it.updateValid()
	}
}

// updateValid recomputes the okValue flag from itmin/itmax bounds.
func (it *Iterator) updateValid() {
	it.okValue = it.value >= it.itmin && it.value <= it.itmax
}

// Valid reports whether the iterator currently sits on an in-range cell.
func (it Iterator) Valid() bool { return it.okValue }

// Value returns the flat row-major index of the current position.
func (it Iterator) Value() types.Index { return it.value }

// X returns the column of the current position.
func (it Iterator) X() types.Index { return it.value % it.sx }

// Y returns the row of the current position.
func (it Iterator) Y() types.Index { return it.value / it.sx }

// Edge returns the boundary edge number (0 if this is not a BoundaryIterator).
func (it Iterator) Edge() int { return it.edge }

// at returns a copy of it repositioned to v and marked valid without
// checking its bounds (used by the clamped neighbor queries below, which
// index into the full Sx*Sy buffer regardless of the source iterator's kind).
func (it Iterator) at(v types.Index) Iterator {
	n := it
	n.value = v
	n.okValue = true
	return n
}

// Left returns the iterator for the cell one to the left, clamped to self
// at x==0.
func (it Iterator) Left() Iterator {
	if it.X() == 0 {
		return it
	}
	return it.at(it.value - 1)
}

// Right returns the iterator for the cell one to the right, clamped to
// self at x==sx-1.
func (it Iterator) Right() Iterator {
	if it.X() == it.sx-1 {
		return it
	}
	return it.at(it.value + 1)
}

// Top returns the iterator for the cell one row up, clamped to self at
// y==sy-1.
func (it Iterator) Top() Iterator {
	if it.Y() == it.sy-1 {
		return it
	}
	return it.at(it.value + it.sx)
}

// Down returns the iterator for the cell one row down, clamped to self at
// y==0.
func (it Iterator) Down() Iterator {
	if it.Y() == 0 {
		return it
	}
	return it.at(it.value - it.sx)
}

// Sx returns the total grid width in cells (including the ghost ring).
func (it Iterator) Sx() types.Index { return it.sx }

// Sy returns the total grid height in cells (including the ghost ring).
func (it Iterator) Sy() types.Index { return it.sy }
