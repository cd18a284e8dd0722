// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iterator

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/nsflow/types"
)

func TestIterator_clampIdempotence(tst *testing.T) {
	chk.PrintTitle("Iterator. neighbor clamp idempotence")
	it := NewInterior(6, 6)
	for it.First(); it.Valid(); it.Next() {
		if it.Left().Right().Value() != it.Value() {
			tst.Errorf("left().right() != self at %d", it.Value())
		}
		if it.Right().Left().Value() != it.Value() {
			tst.Errorf("right().left() != self at %d", it.Value())
		}
		if it.Top().Down().Value() != it.Value() {
			tst.Errorf("top().down() != self at %d", it.Value())
		}
		if it.Down().Top().Value() != it.Value() {
			tst.Errorf("down().top() != self at %d", it.Value())
		}
	}
}

func TestIterator_fullCount(tst *testing.T) {
	chk.PrintTitle("Iterator. full traversal visits every cell")
	sx, sy := types.Index(5), types.Index(4)
	it := New(sx, sy)
	n := 0
	for it.First(); it.Valid(); it.Next() {
		n++
	}
	if n != int(sx*sy) {
		tst.Errorf("expected %d cells, got %d", sx*sy, n)
	}
}

func TestIterator_interiorCount(tst *testing.T) {
	chk.PrintTitle("Iterator. interior traversal excludes the ghost ring")
	sx, sy := types.Index(6), types.Index(5)
	it := NewInterior(sx, sy)
	n := 0
	for it.First(); it.Valid(); it.Next() {
		n++
		if it.X() == 0 || it.X() == sx-1 || it.Y() == 0 || it.Y() == sy-1 {
			tst.Errorf("interior iterator visited ghost cell (%d,%d)", it.X(), it.Y())
		}
	}
	if n != int((sx-2)*(sy-2)) {
		tst.Errorf("expected %d interior cells, got %d", (sx-2)*(sy-2), n)
	}
}

func TestIterator_boundaryEdges(tst *testing.T) {
	chk.PrintTitle("Iterator. boundary edges walk exactly Sx or Sy cells")
	sx, sy := types.Index(5), types.Index(4)
	for _, e := range []int{EdgeBottom, EdgeTop} {
		it := NewBoundary(sx, sy, e)
		n := 0
		for it.First(); it.Valid(); it.Next() {
			n++
		}
		if n != int(sx) {
			tst.Errorf("edge %d: expected %d cells, got %d", e, sx, n)
		}
	}
	for _, e := range []int{EdgeLeft, EdgeRight} {
		it := NewBoundary(sx, sy, e)
		n := 0
		for it.First(); it.Valid(); it.Next() {
			n++
		}
		if n != int(sy) {
			tst.Errorf("edge %d: expected %d cells, got %d", e, sy, n)
		}
	}
}

func TestIterator_obstacleSkipsFluid(tst *testing.T) {
	chk.PrintTitle("Iterator. obstacle traversal visits only non-Fluid interior cells")
	sx, sy := types.Index(5), types.Index(5)
	cells := make([]types.CellType, int(sx*sy))
	for i := range cells {
		cells[i] = types.Fluid
	}
	cells[2*int(sx)+2] = types.Obstacle // interior cell (2,2)
	it := NewObstacle(sx, sy, cells)
	n := 0
	for it.First(); it.Valid(); it.Next() {
		n++
		if cells[it.Value()].IsFluid() {
			tst.Errorf("obstacle iterator visited a Fluid cell at %d", it.Value())
		}
	}
	if n != 1 {
		tst.Errorf("expected exactly 1 obstacle cell, got %d", n)
	}
}

func TestCorner(tst *testing.T) {
	chk.PrintTitle("Iterator. Corner positions")
	sx, sy := types.Index(4), types.Index(3)
	bl := Corner(sx, sy, 1)
	if bl.Value() != 0 {
		tst.Errorf("bottom-left corner should be 0, got %d", bl.Value())
	}
	tr := Corner(sx, sy, 3)
	if tr.Value() != sx*sy-1 {
		tst.Errorf("top-right corner should be %d, got %d", sx*sy-1, tr.Value())
	}
}
